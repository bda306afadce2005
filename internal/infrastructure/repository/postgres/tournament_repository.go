package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentSelectColumns = `
    id,
    public_id,
    name,
    course_name,
    round_tee_times,
    start_date,
    end_date,
    status,
    current_round,
    created_at,
    updated_at`

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	query := `SELECT` + tournamentSelectColumns + `
FROM tournaments
WHERE public_id = $1
  AND deleted_at IS NULL`

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, tournamentID); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}

	return tournamentFromRow(row), true, nil
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	query := `SELECT` + tournamentSelectColumns + `
FROM tournaments
WHERE deleted_at IS NULL
ORDER BY start_date, id`

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, tournamentFromRow(row))
	}

	return out, nil
}

func (r *TournamentRepository) Upsert(ctx context.Context, item tournament.Tournament) error {
	const query = `
INSERT INTO tournaments (
    public_id,
    name,
    course_name,
    round_tee_times,
    start_date,
    end_date,
    status,
    current_round,
    created_at,
    updated_at
) VALUES (
    :public_id, :name, :course_name, :round_tee_times,
    :start_date, :end_date, :status, :current_round,
    :created_at, :updated_at
)
ON CONFLICT (public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    course_name = EXCLUDED.course_name,
    round_tee_times = EXCLUDED.round_tee_times,
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    status = EXCLUDED.status,
    current_round = EXCLUDED.current_round,
    updated_at = EXCLUDED.updated_at`

	args := map[string]any{
		"public_id":       item.ID,
		"name":            item.Name,
		"course_name":     item.CourseName,
		"round_tee_times": teeTimesToArray(item.RoundTeeTimes),
		"start_date":      timeToUnix(item.StartDate),
		"end_date":        timeToUnix(item.EndDate),
		"status":          tournament.NormalizeStatus(item.Status),
		"current_round":   item.CurrentRound,
		"created_at":      timeToUnix(item.CreatedAt),
		"updated_at":      timeToUnix(item.UpdatedAt),
	}

	boundSQL, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		return fmt.Errorf("bind upsert tournament query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert tournament: %w", err)
	}

	return nil
}
