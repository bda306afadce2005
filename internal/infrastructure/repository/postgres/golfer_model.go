package postgres

import "github.com/parfive/fantasy-golf/internal/domain/golfer"

type golferTableModel struct {
	ID           int64  `db:"id"`
	PublicID     string `db:"public_id"`
	TournamentID string `db:"tournament_public_id"`
	Name         string `db:"name"`
	WorldRanking *int   `db:"world_ranking"`
	Salary       int64  `db:"salary"`
	ImageURL     string `db:"image_url"`
}

func golferFromRow(row golferTableModel) golfer.Golfer {
	return golfer.Golfer{
		ID:           row.PublicID,
		TournamentID: row.TournamentID,
		Name:         row.Name,
		WorldRanking: row.WorldRanking,
		Salary:       row.Salary,
		ImageURL:     row.ImageURL,
	}
}
