package memory

import (
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/golfer"
	"github.com/parfive/fantasy-golf/internal/domain/tournament"
)

const (
	TournamentIDAugustaInvitational = "augusta-invitational-2026"
	TournamentIDLinksOpen           = "links-open-2026"

	CompetitionIDAugustaH2H   = "augusta-h2h-2026"
	CompetitionIDAugustaField = "augusta-field-2026"
)

func SeedTournaments() []tournament.Tournament {
	return []tournament.Tournament{
		{
			ID:         TournamentIDAugustaInvitational,
			Name:       "Augusta Invitational",
			CourseName: "Augusta National",
			RoundTeeTimes: []time.Time{
				time.Date(2026, time.April, 9, 8, 0, 0, 0, time.UTC),
				time.Date(2026, time.April, 10, 8, 0, 0, 0, time.UTC),
				time.Date(2026, time.April, 11, 8, 30, 0, 0, time.UTC),
				time.Date(2026, time.April, 12, 9, 0, 0, 0, time.UTC),
			},
			StartDate: time.Date(2026, time.April, 9, 8, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, time.April, 12, 23, 0, 0, 0, time.UTC),
			Status:    tournament.StatusScheduled,
		},
		{
			ID:         TournamentIDLinksOpen,
			Name:       "Links Open Championship",
			CourseName: "Royal Dunmore",
			StartDate:  time.Date(2026, time.July, 16, 7, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, time.July, 19, 22, 0, 0, 0, time.UTC),
			Status:     tournament.StatusScheduled,
		},
	}
}

func SeedGolfers() []golfer.Golfer {
	ranking := func(n int) *int { return &n }

	return []golfer.Golfer{
		{ID: "aug-g01", TournamentID: TournamentIDAugustaInvitational, Name: "Scottie Scheffler", WorldRanking: ranking(1), Salary: 11_500},
		{ID: "aug-g02", TournamentID: TournamentIDAugustaInvitational, Name: "Rory McIlroy", WorldRanking: ranking(2), Salary: 11_000},
		{ID: "aug-g03", TournamentID: TournamentIDAugustaInvitational, Name: "Jon Rahm", WorldRanking: ranking(3), Salary: 10_500},
		{ID: "aug-g04", TournamentID: TournamentIDAugustaInvitational, Name: "Xander Schauffele", WorldRanking: ranking(4), Salary: 9_800},
		{ID: "aug-g05", TournamentID: TournamentIDAugustaInvitational, Name: "Ludvig Aberg", WorldRanking: ranking(5), Salary: 9_200},
		{ID: "aug-g06", TournamentID: TournamentIDAugustaInvitational, Name: "Collin Morikawa", WorldRanking: ranking(6), Salary: 8_700},
		{ID: "aug-g07", TournamentID: TournamentIDAugustaInvitational, Name: "Viktor Hovland", WorldRanking: ranking(7), Salary: 8_300},
		{ID: "aug-g08", TournamentID: TournamentIDAugustaInvitational, Name: "Tommy Fleetwood", WorldRanking: ranking(9), Salary: 7_800},
		{ID: "aug-g09", TournamentID: TournamentIDAugustaInvitational, Name: "Justin Thomas", WorldRanking: ranking(11), Salary: 7_400},
		{ID: "aug-g10", TournamentID: TournamentIDAugustaInvitational, Name: "Shane Lowry", WorldRanking: ranking(14), Salary: 6_900},
		{ID: "aug-g11", TournamentID: TournamentIDAugustaInvitational, Name: "Min Woo Lee", WorldRanking: ranking(19), Salary: 6_300},
		{ID: "aug-g12", TournamentID: TournamentIDAugustaInvitational, Name: "Sahith Theegala", WorldRanking: ranking(24), Salary: 5_800},
	}
}

func SeedCompetitions(rules competition.TimingRules) []competition.Competition {
	tournaments := SeedTournaments()
	augusta := tournaments[0]

	schedule, err := competition.BuildSchedule(rules, augusta.RoundTeeTimes, augusta.StartDate, augusta.EndDate)
	if err != nil {
		// Seed data is static; a broken schedule here is a programming error.
		panic(err)
	}

	guaranteed := int64(200_000)
	base := competition.Competition{
		TournamentID:        augusta.ID,
		ScoreDirection:      competition.LowerScoreWins,
		EntryFeePennies:     1_000,
		AdminFeePercent:     10,
		RegistrationOpenAt:  schedule.RegistrationOpenAt,
		RegistrationCloseAt: schedule.RegistrationCloseAt,
		StartAt:             schedule.StartAt,
		EndAt:               schedule.EndAt,
		ComputedStatus:      competition.StatusUpcoming,
	}

	h2h := base
	h2h.ID = CompetitionIDAugustaH2H
	h2h.Name = "Augusta Head-to-Head"
	h2h.Format = competition.FormatHeadToHead
	h2h.EntrantsCap = 2

	field := base
	field.ID = CompetitionIDAugustaField
	field.Name = "Augusta Open Field"
	field.Format = competition.FormatField
	field.EntrantsCap = 100
	field.GuaranteedPoolPennies = &guaranteed

	return []competition.Competition{h2h, field}
}
