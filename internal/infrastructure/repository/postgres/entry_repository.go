package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
)

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entrySelectColumns = `
    id,
    public_id,
    competition_public_id,
    user_id,
    status,
    total_salary,
    total_score,
    scored_version,
    submitted_at,
    locked_at,
    created_at,
    updated_at`

const entryPickSelectQuery = `
SELECT
    entry_public_id,
    golfer_public_id,
    slot_position,
    salary_at_selection,
    is_captain
FROM entry_picks
WHERE entry_public_id = $1
  AND deleted_at IS NULL
ORDER BY slot_position, golfer_public_id`

func (r *EntryRepository) GetByID(ctx context.Context, entryID string) (entry.Entry, bool, error) {
	query := `SELECT` + entrySelectColumns + `
FROM entries
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, entryID); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry: %w", err)
	}

	return r.hydrateEntry(ctx, row)
}

// GetByUserAndCompetition prefers the user's active entry; when every entry
// is void it returns the newest one so retries can see the outcome.
func (r *EntryRepository) GetByUserAndCompetition(ctx context.Context, userID, competitionID string) (entry.Entry, bool, error) {
	query := `SELECT` + entrySelectColumns + `
FROM entries
WHERE user_id = $1
  AND competition_public_id = $2
  AND deleted_at IS NULL
ORDER BY (status = 'void'), id DESC
LIMIT 1`

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, userID, competitionID); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry by user and competition: %w", err)
	}

	return r.hydrateEntry(ctx, row)
}

func (r *EntryRepository) ListByCompetition(ctx context.Context, competitionID string) ([]entry.Entry, error) {
	query := `SELECT` + entrySelectColumns + `
FROM entries
WHERE competition_public_id = $1
  AND deleted_at IS NULL
ORDER BY id`

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, competitionID); err != nil {
		return nil, fmt.Errorf("list entries by competition: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		item, _, err := r.hydrateEntry(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *EntryRepository) Upsert(ctx context.Context, item entry.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for entry upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertEntryQuery = `
INSERT INTO entries (
    public_id,
    competition_public_id,
    user_id,
    status,
    total_salary,
    total_score,
    scored_version,
    submitted_at,
    locked_at,
    created_at,
    updated_at
) VALUES (
    :public_id, :competition_public_id, :user_id, :status,
    :total_salary, :total_score, :scored_version,
    :submitted_at, :locked_at, :created_at, :updated_at
)
ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    status = EXCLUDED.status,
    total_salary = EXCLUDED.total_salary,
    total_score = EXCLUDED.total_score,
    scored_version = EXCLUDED.scored_version,
    submitted_at = EXCLUDED.submitted_at,
    locked_at = EXCLUDED.locked_at,
    updated_at = EXCLUDED.updated_at`

	args := map[string]any{
		"public_id":             item.ID,
		"competition_public_id": item.CompetitionID,
		"user_id":               item.UserID,
		"status":                string(item.Status),
		"total_salary":          item.TotalSalary,
		"total_score":           item.TotalScore,
		"scored_version":        item.ScoredVersion,
		"submitted_at":          timePtrToUnix(item.SubmittedAt),
		"locked_at":             timePtrToUnix(item.LockedAt),
		"created_at":            timeToUnix(item.CreatedAt),
		"updated_at":            timeToUnix(item.UpdatedAt),
	}

	boundSQL, boundArgs, err := sqlx.Named(upsertEntryQuery, args)
	if err != nil {
		return fmt.Errorf("bind upsert entry query: %w", err)
	}
	boundSQL = tx.Rebind(boundSQL)
	if _, err := tx.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}

	const clearPicksQuery = `
UPDATE entry_picks
SET deleted_at = NOW()
WHERE entry_public_id = $1
  AND deleted_at IS NULL`
	if _, err := tx.ExecContext(ctx, tx.Rebind(clearPicksQuery), item.ID); err != nil {
		return fmt.Errorf("soft delete existing entry picks: %w", err)
	}

	const upsertPickQuery = `
INSERT INTO entry_picks (
    entry_public_id,
    golfer_public_id,
    slot_position,
    salary_at_selection,
    is_captain
) VALUES (
    :entry_public_id, :golfer_public_id, :slot_position,
    :salary_at_selection, :is_captain
)
ON CONFLICT (entry_public_id, golfer_public_id, slot_position) WHERE deleted_at IS NULL
DO UPDATE SET
    salary_at_selection = EXCLUDED.salary_at_selection,
    is_captain = EXCLUDED.is_captain,
    deleted_at = NULL`

	for _, pick := range item.Picks {
		pickSQL, pickArgs, err := sqlx.Named(upsertPickQuery, map[string]any{
			"entry_public_id":     item.ID,
			"golfer_public_id":    pick.GolferID,
			"slot_position":       pick.SlotPosition,
			"salary_at_selection": pick.SalaryAtSelection,
			"is_captain":          pick.IsCaptain,
		})
		if err != nil {
			return fmt.Errorf("bind upsert entry pick golfer=%s query: %w", pick.GolferID, err)
		}
		pickSQL = tx.Rebind(pickSQL)
		if _, err := tx.ExecContext(ctx, pickSQL, pickArgs...); err != nil {
			return fmt.Errorf("upsert entry pick golfer=%s: %w", pick.GolferID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit entry upsert tx: %w", err)
	}

	return nil
}

func (r *EntryRepository) hydrateEntry(ctx context.Context, row entryTableModel) (entry.Entry, bool, error) {
	var pickRows []entryPickTableModel
	if err := r.db.SelectContext(ctx, &pickRows, entryPickSelectQuery, row.PublicID); err != nil {
		return entry.Entry{}, false, fmt.Errorf("select entry picks: %w", err)
	}

	return entryFromRows(row, pickRows), true, nil
}
