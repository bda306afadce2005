package postgres

import "github.com/parfive/fantasy-golf/internal/domain/entry"

type entryTableModel struct {
	ID            int64  `db:"id"`
	PublicID      string `db:"public_id"`
	CompetitionID string `db:"competition_public_id"`
	UserID        string `db:"user_id"`
	Status        string `db:"status"`
	TotalSalary   int64  `db:"total_salary"`
	TotalScore    *int   `db:"total_score"`
	ScoredVersion int64  `db:"scored_version"`
	SubmittedAt   *int64 `db:"submitted_at"`
	LockedAt      *int64 `db:"locked_at"`
	CreatedAt     int64  `db:"created_at"`
	UpdatedAt     int64  `db:"updated_at"`
}

type entryPickTableModel struct {
	EntryPublicID     string `db:"entry_public_id"`
	GolferPublicID    string `db:"golfer_public_id"`
	SlotPosition      int    `db:"slot_position"`
	SalaryAtSelection int64  `db:"salary_at_selection"`
	IsCaptain         bool   `db:"is_captain"`
}

func entryFromRows(row entryTableModel, pickRows []entryPickTableModel) entry.Entry {
	picks := make([]entry.Pick, 0, len(pickRows))
	for _, pick := range pickRows {
		picks = append(picks, entry.Pick{
			GolferID:          pick.GolferPublicID,
			SlotPosition:      pick.SlotPosition,
			SalaryAtSelection: pick.SalaryAtSelection,
			IsCaptain:         pick.IsCaptain,
		})
	}

	return entry.Entry{
		ID:            row.PublicID,
		CompetitionID: row.CompetitionID,
		UserID:        row.UserID,
		Status:        entry.Status(row.Status),
		Picks:         picks,
		TotalSalary:   row.TotalSalary,
		TotalScore:    row.TotalScore,
		ScoredVersion: row.ScoredVersion,
		SubmittedAt:   unixPtrToTime(row.SubmittedAt),
		LockedAt:      unixPtrToTime(row.LockedAt),
		CreatedAt:     unixToTime(row.CreatedAt),
		UpdatedAt:     unixToTime(row.UpdatedAt),
	}
}
