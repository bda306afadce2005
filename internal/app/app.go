package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/parfive/fantasy-golf/external/golfdata"
	"github.com/parfive/fantasy-golf/internal/config"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/domain/settlement"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
	"github.com/parfive/fantasy-golf/internal/infrastructure/account/clubhouse"
	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/memory"
	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/postgres"
	"github.com/parfive/fantasy-golf/internal/interfaces/httpapi"
	idgen "github.com/parfive/fantasy-golf/internal/platform/id"
	"github.com/parfive/fantasy-golf/internal/platform/logging"
	"github.com/parfive/fantasy-golf/internal/platform/resilience"
	"github.com/parfive/fantasy-golf/internal/usecase"
)

type repositories struct {
	tournaments  tournament.Repository
	golfers      golfer.Repository
	competitions competition.Repository
	entries      entry.Repository
	results      scoring.Repository
	settlements  settlement.Repository
}

func newMemoryRepositories(rules competition.TimingRules) repositories {
	return repositories{
		tournaments:  memory.NewTournamentRepository(memory.SeedTournaments()),
		golfers:      memory.NewGolferRepository(memory.SeedGolfers()),
		competitions: memory.NewCompetitionRepository(memory.SeedCompetitions(rules)),
		entries:      memory.NewEntryRepository(),
		results:      memory.NewResultsRepository(),
		settlements:  memory.NewSettlementRepository(),
	}
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		tournaments:  postgres.NewTournamentRepository(db),
		golfers:      postgres.NewGolferRepository(db),
		competitions: postgres.NewCompetitionRepository(db),
		entries:      postgres.NewEntryRepository(db),
		results:      postgres.NewResultsRepository(db),
		settlements:  postgres.NewSettlementRepository(db),
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	timingRules := competition.DefaultTimingRules()

	var repos repositories
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		repos = newPostgresRepositories(db)
		logger.Info("storage backend", "backend", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL))
	default:
		repos = newMemoryRepositories(timingRules)
		logger.Info("storage backend", "backend", config.StorageMemory)
	}

	tournamentSvc := usecase.NewTournamentService(repos.tournaments, repos.golfers, logger)
	competitionSvc := usecase.NewCompetitionService(
		repos.competitions,
		repos.tournaments,
		repos.entries,
		timingRules,
		idgen.NewRandomGenerator(),
		logger,
	)
	entrySvc := usecase.NewEntryService(
		repos.competitions,
		repos.golfers,
		repos.entries,
		entry.DefaultRosterRules(),
		idgen.NewRandomGenerator(),
		logger,
	)
	scoringSvc := usecase.NewScoringService(repos.competitions, repos.entries, repos.results, logger)
	settlementSvc := usecase.NewSettlementService(repos.competitions, repos.entries, repos.settlements, logger)
	sweepSvc := usecase.NewSweepService(repos.competitions, repos.entries, logger)

	var syncSvc *usecase.SyncService
	if cfg.GolfDataEnabled {
		feed := golfdata.NewClient(golfdata.ClientConfig{
			BaseURL:     cfg.GolfDataBaseURL,
			Token:       cfg.GolfDataToken,
			Timeout:     cfg.GolfDataTimeout,
			MaxRetries:  cfg.GolfDataMaxRetries,
			SnapshotTTL: cfg.GolfDataSnapshotTTL,
			Logger:      logging.NewJSON(golfDataLogLevel(cfg.LogLevel)),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GolfDataCircuitEnabled,
				FailureThreshold: cfg.GolfDataCircuitFailureCount,
				OpenTimeout:      cfg.GolfDataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GolfDataCircuitHalfOpenMaxReq,
			},
		})
		syncSvc = usecase.NewSyncService(feed, repos.tournaments, repos.golfers, scoringSvc, logger)
		logger.Info("golf data feed enabled", "base_url", cfg.GolfDataBaseURL)
	}

	verifier := clubhouse.NewCachedVerifier(
		clubhouse.NewClient(
			&http.Client{Timeout: cfg.ClubhouseTimeout},
			cfg.ClubhouseBaseURL,
			cfg.ClubhouseIntrospectPath,
			logger,
		),
		cfg.ClubhousePrincipalTTL,
	)

	handler := httpapi.NewHandler(
		tournamentSvc,
		competitionSvc,
		entrySvc,
		scoringSvc,
		settlementSvc,
		sweepSvc,
		syncSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func golfDataLogLevel(level slog.Level) logging.Level {
	switch {
	case level <= slog.LevelDebug:
		return logging.LevelDebug
	case level <= slog.LevelInfo:
		return logging.LevelInfo
	case level <= slog.LevelWarn:
		return logging.LevelWarn
	default:
		return logging.LevelError
	}
}
