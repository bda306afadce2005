package postgres

import (
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
)

type competitionTableModel struct {
	ID             int64   `db:"id"`
	PublicID       string  `db:"public_id"`
	TournamentID   string  `db:"tournament_public_id"`
	Name           string  `db:"name"`
	Format         string  `db:"format"`
	ScoreDirection string  `db:"score_direction"`
	EntryFee       int64   `db:"entry_fee_pennies"`
	EntrantsCap    int     `db:"entrants_cap"`
	AdminFee       int     `db:"admin_fee_percent"`
	GuaranteedPool *int64  `db:"guaranteed_pool_pennies"`
	FirstPlace     *int64  `db:"first_place_pennies"`
	RegOpenAt      int64   `db:"registration_open_at"`
	RegCloseAt     int64   `db:"registration_close_at"`
	StartAt        int64   `db:"start_at"`
	EndAt          int64   `db:"end_at"`
	ComputedStatus string  `db:"computed_status"`
	ManualStatus   *string `db:"manual_status"`
	CreatedAt      int64   `db:"created_at"`
	UpdatedAt      int64   `db:"updated_at"`
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	item := competition.Competition{
		ID:             row.PublicID,
		TournamentID:   row.TournamentID,
		Name:           row.Name,
		Format:         competition.Format(row.Format),
		ScoreDirection: competition.ScoreDirection(row.ScoreDirection),

		EntryFeePennies:       row.EntryFee,
		EntrantsCap:           row.EntrantsCap,
		AdminFeePercent:       row.AdminFee,
		GuaranteedPoolPennies: row.GuaranteedPool,
		FirstPlacePennies:     row.FirstPlace,

		RegistrationOpenAt:  unixToTime(row.RegOpenAt),
		RegistrationCloseAt: unixToTime(row.RegCloseAt),
		StartAt:             unixToTime(row.StartAt),
		EndAt:               unixToTime(row.EndAt),

		ComputedStatus: competition.Status(row.ComputedStatus),

		CreatedAt: unixToTime(row.CreatedAt),
		UpdatedAt: unixToTime(row.UpdatedAt),
	}
	if row.ManualStatus != nil {
		status := competition.Status(*row.ManualStatus)
		item.ManualStatus = &status
	}
	return item
}

func unixToTime(value int64) time.Time {
	if value == 0 {
		return time.Time{}
	}
	return time.Unix(value, 0).UTC()
}

func timeToUnix(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.Unix()
}

func timePtrToUnix(value *time.Time) *int64 {
	if value == nil {
		return nil
	}
	unix := value.Unix()
	return &unix
}

func unixPtrToTime(value *int64) *time.Time {
	if value == nil {
		return nil
	}
	at := time.Unix(*value, 0).UTC()
	return &at
}
