package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/parfive/fantasy-golf/internal/domain/settlement"
)

type SettlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

type settlementTableModel struct {
	CompetitionID string `db:"competition_public_id"`
	WinnerEntryID string `db:"winner_entry_public_id"`
	LoserEntryID  string `db:"loser_entry_public_id"`
	Tie           bool   `db:"tie"`
	Margin        int    `db:"margin"`
}

func (r *SettlementRepository) GetByCompetition(ctx context.Context, competitionID string) (settlement.Result, bool, error) {
	const query = `
SELECT
    competition_public_id,
    winner_entry_public_id,
    loser_entry_public_id,
    tie,
    margin
FROM settlements
WHERE competition_public_id = $1`

	var row settlementTableModel
	if err := r.db.GetContext(ctx, &row, query, competitionID); err != nil {
		if isNotFound(err) {
			return settlement.Result{}, false, nil
		}
		return settlement.Result{}, false, fmt.Errorf("get settlement: %w", err)
	}

	return settlement.Result{
		CompetitionID: row.CompetitionID,
		WinnerEntryID: row.WinnerEntryID,
		LoserEntryID:  row.LoserEntryID,
		Tie:           row.Tie,
		Margin:        row.Margin,
	}, true, nil
}

func (r *SettlementRepository) Upsert(ctx context.Context, result settlement.Result) error {
	const query = `
INSERT INTO settlements (
    competition_public_id,
    winner_entry_public_id,
    loser_entry_public_id,
    tie,
    margin
) VALUES (
    :competition_public_id, :winner_entry_public_id, :loser_entry_public_id,
    :tie, :margin
)
ON CONFLICT (competition_public_id)
DO UPDATE SET
    winner_entry_public_id = EXCLUDED.winner_entry_public_id,
    loser_entry_public_id = EXCLUDED.loser_entry_public_id,
    tie = EXCLUDED.tie,
    margin = EXCLUDED.margin`

	boundSQL, boundArgs, err := sqlx.Named(query, map[string]any{
		"competition_public_id":  result.CompetitionID,
		"winner_entry_public_id": result.WinnerEntryID,
		"loser_entry_public_id":  result.LoserEntryID,
		"tie":                    result.Tie,
		"margin":                 result.Margin,
	})
	if err != nil {
		return fmt.Errorf("bind upsert settlement query: %w", err)
	}
	boundSQL = r.db.Rebind(boundSQL)
	if _, err := r.db.ExecContext(ctx, boundSQL, boundArgs...); err != nil {
		return fmt.Errorf("upsert settlement: %w", err)
	}

	return nil
}
