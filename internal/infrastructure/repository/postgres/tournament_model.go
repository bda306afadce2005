package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID            int64         `db:"id"`
	PublicID      string        `db:"public_id"`
	Name          string        `db:"name"`
	CourseName    string        `db:"course_name"`
	RoundTeeTimes pq.Int64Array `db:"round_tee_times"`
	StartDate     int64         `db:"start_date"`
	EndDate       int64         `db:"end_date"`
	Status        string        `db:"status"`
	CurrentRound  int           `db:"current_round"`
	CreatedAt     int64         `db:"created_at"`
	UpdatedAt     int64         `db:"updated_at"`
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	tees := make([]time.Time, 0, len(row.RoundTeeTimes))
	for _, unix := range row.RoundTeeTimes {
		tees = append(tees, unixToTime(unix))
	}

	return tournament.Tournament{
		ID:            row.PublicID,
		Name:          row.Name,
		CourseName:    row.CourseName,
		RoundTeeTimes: tees,
		StartDate:     unixToTime(row.StartDate),
		EndDate:       unixToTime(row.EndDate),
		Status:        tournament.NormalizeStatus(row.Status),
		CurrentRound:  row.CurrentRound,
		CreatedAt:     unixToTime(row.CreatedAt),
		UpdatedAt:     unixToTime(row.UpdatedAt),
	}
}

func teeTimesToArray(tees []time.Time) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(tees))
	for _, tee := range tees {
		out = append(out, timeToUnix(tee))
	}
	return out
}
