package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/competition"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

const competitionSelectColumns = `
    id,
    public_id,
    tournament_public_id,
    name,
    format,
    score_direction,
    entry_fee_pennies,
    entrants_cap,
    admin_fee_percent,
    guaranteed_pool_pennies,
    first_place_pennies,
    registration_open_at,
    registration_close_at,
    start_at,
    end_at,
    computed_status,
    manual_status,
    created_at,
    updated_at`

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query := `SELECT` + competitionSelectColumns + `
FROM competitions
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, competitionID); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) ListByTournament(ctx context.Context, tournamentID string) ([]competition.Competition, error) {
	query := `SELECT` + competitionSelectColumns + `
FROM competitions
WHERE tournament_public_id = $1
  AND deleted_at IS NULL
ORDER BY id`

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, tournamentID); err != nil {
		return nil, fmt.Errorf("list competitions by tournament: %w", err)
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) Upsert(ctx context.Context, item competition.Competition) error {
	const query = `
INSERT INTO competitions (
    public_id,
    tournament_public_id,
    name,
    format,
    score_direction,
    entry_fee_pennies,
    entrants_cap,
    admin_fee_percent,
    guaranteed_pool_pennies,
    first_place_pennies,
    registration_open_at,
    registration_close_at,
    start_at,
    end_at,
    computed_status,
    manual_status,
    created_at,
    updated_at
) VALUES (
    :public_id, :tournament_public_id, :name, :format, :score_direction,
    :entry_fee_pennies, :entrants_cap, :admin_fee_percent,
    :guaranteed_pool_pennies, :first_place_pennies,
    :registration_open_at, :registration_close_at, :start_at, :end_at,
    :computed_status, :manual_status, :created_at, :updated_at
)
ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    format = EXCLUDED.format,
    score_direction = EXCLUDED.score_direction,
    entry_fee_pennies = EXCLUDED.entry_fee_pennies,
    entrants_cap = EXCLUDED.entrants_cap,
    admin_fee_percent = EXCLUDED.admin_fee_percent,
    guaranteed_pool_pennies = EXCLUDED.guaranteed_pool_pennies,
    first_place_pennies = EXCLUDED.first_place_pennies,
    registration_open_at = EXCLUDED.registration_open_at,
    registration_close_at = EXCLUDED.registration_close_at,
    start_at = EXCLUDED.start_at,
    end_at = EXCLUDED.end_at,
    computed_status = EXCLUDED.computed_status,
    manual_status = EXCLUDED.manual_status,
    updated_at = EXCLUDED.updated_at`

	var manualStatus *string
	if item.ManualStatus != nil {
		status := string(*item.ManualStatus)
		manualStatus = &status
	}

	args := map[string]any{
		"public_id":               item.ID,
		"tournament_public_id":    item.TournamentID,
		"name":                    item.Name,
		"format":                  string(item.Format),
		"score_direction":         string(item.ScoreDirection),
		"entry_fee_pennies":       item.EntryFeePennies,
		"entrants_cap":            item.EntrantsCap,
		"admin_fee_percent":       item.AdminFeePercent,
		"guaranteed_pool_pennies": item.GuaranteedPoolPennies,
		"first_place_pennies":     item.FirstPlacePennies,
		"registration_open_at":    timeToUnix(item.RegistrationOpenAt),
		"registration_close_at":   timeToUnix(item.RegistrationCloseAt),
		"start_at":                timeToUnix(item.StartAt),
		"end_at":                  timeToUnix(item.EndAt),
		"computed_status":         string(item.ComputedStatus),
		"manual_status":           manualStatus,
		"created_at":              timeToUnix(item.CreatedAt),
		"updated_at":              timeToUnix(item.UpdatedAt),
	}

	boundSQL, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind upsert competition query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert competition: %w", err)
	}

	return nil
}
