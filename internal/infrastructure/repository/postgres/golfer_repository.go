package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
)

type GolferRepository struct {
	db *sqlx.DB
}

func NewGolferRepository(db *sqlx.DB) *GolferRepository {
	return &GolferRepository{db: db}
}

const golferSelectColumns = `
    id,
    public_id,
    tournament_public_id,
    name,
    world_ranking,
    salary,
    image_url`

func (r *GolferRepository) GetByIDs(ctx context.Context, tournamentID string, golferIDs []string) ([]golfer.Golfer, error) {
	if len(golferIDs) == 0 {
		return []golfer.Golfer{}, nil
	}

	query := `SELECT` + golferSelectColumns + `
FROM golfers
WHERE tournament_public_id = ?
  AND public_id IN (?)
  AND deleted_at IS NULL
ORDER BY id`

	query, args, err := sqlx.In(query, tournamentID, golferIDs)
	if err != nil {
		return nil, fmt.Errorf("bind select golfers by ids query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []golferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select golfers by ids: %w", err)
	}

	out := make([]golfer.Golfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, golferFromRow(row))
	}

	return out, nil
}

func (r *GolferRepository) ListByTournament(ctx context.Context, tournamentID string) ([]golfer.Golfer, error) {
	query := `SELECT` + golferSelectColumns + `
FROM golfers
WHERE tournament_public_id = $1
  AND deleted_at IS NULL
ORDER BY salary DESC, id`

	var rows []golferTableModel
	if err := r.db.SelectContext(ctx, &rows, query, tournamentID); err != nil {
		return nil, fmt.Errorf("list golfers by tournament: %w", err)
	}

	out := make([]golfer.Golfer, 0, len(rows))
	for _, row := range rows {
		out = append(out, golferFromRow(row))
	}

	return out, nil
}

func (r *GolferRepository) UpsertGolfers(ctx context.Context, items []golfer.Golfer) error {
	if len(items) == 0 {
		return nil
	}

	const query = `
INSERT INTO golfers (
    public_id,
    tournament_public_id,
    name,
    world_ranking,
    salary,
    image_url
) VALUES (
    :public_id, :tournament_public_id, :name, :world_ranking, :salary, :image_url
)
ON CONFLICT (tournament_public_id, public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    world_ranking = EXCLUDED.world_ranking,
    salary = EXCLUDED.salary,
    image_url = EXCLUDED.image_url,
    updated_at = NOW()`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for golfer upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		args := map[string]any{
			"public_id":            item.ID,
			"tournament_public_id": item.TournamentID,
			"name":                 item.Name,
			"world_ranking":        item.WorldRanking,
			"salary":               item.Salary,
			"image_url":            item.ImageURL,
		}

		boundSQL, boundArgs, err := sqlx.Named(query, args)
		if err != nil {
			return fmt.Errorf("bind upsert golfer %s query: %w", item.ID, err)
		}
		boundSQL = tx.Rebind(boundSQL)
		if _, err := tx.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
			return fmt.Errorf("upsert golfer %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit golfer upsert tx: %w", err)
	}

	return nil
}
