package golfdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
	"github.com/parfive/fantasy-golf/internal/platform/cache"
	"github.com/parfive/fantasy-golf/internal/platform/logging"
	"github.com/parfive/fantasy-golf/internal/platform/resilience"
	"github.com/parfive/fantasy-golf/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL      = "https://api.golfdata.example.com/v2"
	defaultTimeout      = 15 * time.Second
	defaultSnapshotTTL  = 30 * time.Second
	responseBodyLogSize = 512
)

var errGolfDataTransient = crerr.New("golf data provider transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	SnapshotTTL    time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the golf results feed. Responses are deduplicated per
// URL while in flight and leaderboard snapshots are cached briefly so a
// burst of recomputes does not hammer the provider.
type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	snapshots      *cache.Store
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	snapshotTTL := cfg.SnapshotTTL
	if snapshotTTL <= 0 {
		snapshotTTL = defaultSnapshotTTL
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		snapshots:      cache.NewStore(snapshotTTL),
	}
}

type leaderboardEnvelope struct {
	TournamentID string `json:"tournament_id"`
	Version      int64  `json:"version"`
	Results      []struct {
		GolferID   string `json:"golfer_id"`
		Round      int    `json:"round"`
		Score      int    `json:"score"`
		RecordedAt int64  `json:"recorded_at"`
	} `json:"results"`
}

// FetchLeaderboard pulls the current round-by-round scores for a
// tournament. Short-lived snapshots are served from cache.
func (c *Client) FetchLeaderboard(ctx context.Context, tournamentID string) (scoring.ResultSet, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return scoring.ResultSet{}, fmt.Errorf("tournament id is required")
	}

	key := "leaderboard:" + tournamentID
	value, err := c.snapshots.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		var envelope leaderboardEnvelope
		if err := c.doJSON(ctx, "/tournaments/"+tournamentID+"/leaderboard", &envelope); err != nil {
			return nil, fmt.Errorf("fetch leaderboard tournament=%s: %w", tournamentID, err)
		}

		set := scoring.ResultSet{
			TournamentID: tournamentID,
			Version:      envelope.Version,
			Results:      make([]scoring.RoundResult, 0, len(envelope.Results)),
		}
		for _, item := range envelope.Results {
			set.Results = append(set.Results, scoring.RoundResult{
				TournamentID: tournamentID,
				GolferID:     item.GolferID,
				Round:        item.Round,
				Score:        item.Score,
				RecordedAt:   time.Unix(item.RecordedAt, 0).UTC(),
			})
		}
		return set, nil
	})
	if err != nil {
		return scoring.ResultSet{}, err
	}

	return value.(scoring.ResultSet), nil
}

type fieldEnvelope struct {
	TournamentID string `json:"tournament_id"`
	Golfers      []struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		WorldRanking *int   `json:"world_ranking"`
		Salary       int64  `json:"salary"`
		ImageURL     string `json:"image_url"`
	} `json:"golfers"`
}

// FetchField pulls the tournament's golfer pool with provider salaries.
func (c *Client) FetchField(ctx context.Context, tournamentID string) ([]golfer.Golfer, error) {
	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, fmt.Errorf("tournament id is required")
	}

	var envelope fieldEnvelope
	if err := c.doJSON(ctx, "/tournaments/"+tournamentID+"/field", &envelope); err != nil {
		return nil, fmt.Errorf("fetch field tournament=%s: %w", tournamentID, err)
	}

	out := make([]golfer.Golfer, 0, len(envelope.Golfers))
	for _, item := range envelope.Golfers {
		out = append(out, golfer.Golfer{
			ID:           item.ID,
			TournamentID: tournamentID,
			Name:         item.Name,
			WorldRanking: item.WorldRanking,
			Salary:       item.Salary,
			ImageURL:     item.ImageURL,
		})
	}

	return out, nil
}

type scheduleEnvelope struct {
	Tournaments []struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		CourseName    string  `json:"course_name"`
		RoundTeeTimes []int64 `json:"round_tee_times"`
		StartDate     int64   `json:"start_date"`
		EndDate       int64   `json:"end_date"`
		Status        string  `json:"status"`
		CurrentRound  int     `json:"current_round"`
	} `json:"tournaments"`
}

// FetchSchedule pulls the upcoming tournament calendar.
func (c *Client) FetchSchedule(ctx context.Context) ([]tournament.Tournament, error) {
	var envelope scheduleEnvelope
	if err := c.doJSON(ctx, "/schedule", &envelope); err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(envelope.Tournaments))
	for _, item := range envelope.Tournaments {
		tees := make([]time.Time, 0, len(item.RoundTeeTimes))
		for _, unix := range item.RoundTeeTimes {
			tees = append(tees, time.Unix(unix, 0).UTC())
		}
		out = append(out, tournament.Tournament{
			ID:            item.ID,
			Name:          item.Name,
			CourseName:    item.CourseName,
			RoundTeeTimes: tees,
			StartDate:     time.Unix(item.StartDate, 0).UTC(),
			EndDate:       time.Unix(item.EndDate, 0).UTC(),
			Status:        tournament.NormalizeStatus(item.Status),
			CurrentRound:  item.CurrentRound,
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "golf data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: golf data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.buildURL(path)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) buildURL(path string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	if c.token != "" {
		_, _ = buf.WriteString("?api_token=")
		_, _ = buf.WriteString(c.token)
	}

	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.sendOnce(fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "golf data request failed",
		"url", redactToken(fullURL, c.token),
		"error", lastErr,
	)
	return nil, lastErr
}

func (c *Client) sendOnce(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: send request: %s", errGolfDataTransient, redactToken(err.Error(), c.token))
	}

	status := resp.StatusCode()
	raw := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return raw, nil
	case isRetryableStatus(status):
		return nil, fmt.Errorf("%w: provider status=%d body=%s", errGolfDataTransient, status, abbreviateBody(raw))
	default:
		return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(raw))
	}
}

func isTransient(err error) bool {
	return stderrors.Is(err, errGolfDataTransient)
}

func isRetryableStatus(status int) bool {
	switch status {
	case fasthttp.StatusTooManyRequests,
		fasthttp.StatusInternalServerError,
		fasthttp.StatusBadGateway,
		fasthttp.StatusServiceUnavailable,
		fasthttp.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	if len(raw) <= responseBodyLogSize {
		return string(raw)
	}
	return string(raw[:responseBodyLogSize]) + "...(truncated)"
}

func redactToken(value, token string) string {
	if token == "" {
		return value
	}
	return strings.ReplaceAll(value, token, "REDACTED")
}
