package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
)

type ResultsRepository struct {
	db *sqlx.DB
}

func NewResultsRepository(db *sqlx.DB) *ResultsRepository {
	return &ResultsRepository{db: db}
}

type resultSetTableModel struct {
	TournamentID string `db:"tournament_public_id"`
	Version      int64  `db:"version"`
}

type roundResultTableModel struct {
	TournamentID string `db:"tournament_public_id"`
	GolferID     string `db:"golfer_public_id"`
	Round        int    `db:"round"`
	Score        int    `db:"score"`
	RecordedAt   int64  `db:"recorded_at"`
}

func (r *ResultsRepository) GetResultSet(ctx context.Context, tournamentID string) (scoring.ResultSet, bool, error) {
	const versionQuery = `
SELECT tournament_public_id, version
FROM result_set_versions
WHERE tournament_public_id = $1`

	var versionRow resultSetTableModel
	if err := r.db.GetContext(ctx, &versionRow, versionQuery, tournamentID); err != nil {
		if isNotFound(err) {
			return scoring.ResultSet{}, false, nil
		}
		return scoring.ResultSet{}, false, fmt.Errorf("get result set version: %w", err)
	}

	const resultsQuery = `
SELECT
    tournament_public_id,
    golfer_public_id,
    round,
    score,
    recorded_at
FROM round_results
WHERE tournament_public_id = $1
ORDER BY round, golfer_public_id`

	var resultRows []roundResultTableModel
	if err := r.db.SelectContext(ctx, &resultRows, resultsQuery, tournamentID); err != nil {
		return scoring.ResultSet{}, false, fmt.Errorf("select round results: %w", err)
	}

	set := scoring.ResultSet{
		TournamentID: versionRow.TournamentID,
		Version:      versionRow.Version,
		Results:      make([]scoring.RoundResult, 0, len(resultRows)),
	}
	for _, row := range resultRows {
		set.Results = append(set.Results, scoring.RoundResult{
			TournamentID: row.TournamentID,
			GolferID:     row.GolferID,
			Round:        row.Round,
			Score:        row.Score,
			RecordedAt:   unixToTime(row.RecordedAt),
		})
	}

	return set, true, nil
}

// UpsertResultSet replaces the stored snapshot wholesale. Version ordering
// is the caller's concern; the repository just persists what it is given.
func (r *ResultsRepository) UpsertResultSet(ctx context.Context, set scoring.ResultSet) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for result set upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const versionQuery = `
INSERT INTO result_set_versions (tournament_public_id, version)
VALUES ($1, $2)
ON CONFLICT (tournament_public_id)
DO UPDATE SET version = EXCLUDED.version`
	if _, err := tx.ExecContext(ctx, tx.Rebind(versionQuery), set.TournamentID, set.Version); err != nil {
		return fmt.Errorf("upsert result set version: %w", err)
	}

	const clearQuery = `DELETE FROM round_results WHERE tournament_public_id = $1`
	if _, err := tx.ExecContext(ctx, tx.Rebind(clearQuery), set.TournamentID); err != nil {
		return fmt.Errorf("clear round results: %w", err)
	}

	const insertQuery = `
INSERT INTO round_results (
    tournament_public_id,
    golfer_public_id,
    round,
    score,
    recorded_at
) VALUES (
    :tournament_public_id, :golfer_public_id, :round, :score, :recorded_at
)`

	for _, result := range set.Results {
		boundSQL, boundArgs, err := sqlx.Named(insertQuery, map[string]any{
			"tournament_public_id": set.TournamentID,
			"golfer_public_id":     result.GolferID,
			"round":                result.Round,
			"score":                result.Score,
			"recorded_at":          timeToUnix(result.RecordedAt),
		})
		if err != nil {
			return fmt.Errorf("bind insert round result golfer=%s query: %w", result.GolferID, err)
		}
		boundSQL = tx.Rebind(boundSQL)
		if _, err := tx.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
			return fmt.Errorf("insert round result golfer=%s: %w", result.GolferID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit result set upsert tx: %w", err)
	}

	return nil
}
