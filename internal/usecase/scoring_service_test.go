package usecase

import (
	"testing"
	"time"

	"github.com/parfive/fantasy-golf/internal/domain/competition"
	"github.com/parfive/fantasy-golf/internal/domain/entry"
	"github.com/parfive/fantasy-golf/internal/domain/scoring"
	"github.com/parfive/fantasy-golf/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockedEntry(id, userID string, captainID string, golferIDs []string) entry.Entry {
	created := time.Date(2026, 4, 5, 12, 0, 0, 0, time.UTC)
	lockedAt := time.Date(2026, 4, 9, 7, 45, 0, 0, time.UTC)

	picks := make([]entry.Pick, 0, len(golferIDs))
	for i, golferID := range golferIDs {
		picks = append(picks, entry.Pick{
			GolferID:          golferID,
			SlotPosition:      i + 1,
			SalaryAtSelection: 7_000,
			IsCaptain:         golferID == captainID,
		})
	}

	return entry.Entry{
		ID:            id,
		CompetitionID: memory.CompetitionIDAugustaH2H,
		UserID:        userID,
		Status:        entry.StatusLocked,
		Picks:         picks,
		TotalSalary:   int64(len(picks)) * 7_000,
		LockedAt:      &lockedAt,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
}

func augustaResultSet(version int64) scoring.ResultSet {
	scores := map[string]int{
		"aug-g04": -2,
		"aug-g06": -1,
		"aug-g08": 0,
		"aug-g09": 1,
		"aug-g10": 3,
		"aug-g11": -4,
	}

	set := scoring.ResultSet{TournamentID: memory.TournamentIDAugustaInvitational, Version: version}
	for golferID, score := range scores {
		set.Results = append(set.Results, scoring.RoundResult{
			TournamentID: set.TournamentID,
			GolferID:     golferID,
			Round:        1,
			Score:        score,
		})
	}
	return set
}

func newScoringServiceForTest(t *testing.T, completed bool) (*ScoringService, *memory.EntryRepository, *memory.ResultsRepository) {
	t.Helper()

	competitions := memory.SeedCompetitions(competition.DefaultTimingRules())
	if completed {
		done := competition.StatusCompleted
		for i := range competitions {
			competitions[i].ManualStatus = &done
		}
	}

	entryRepo := memory.NewEntryRepository()
	resultsRepo := memory.NewResultsRepository()
	service := NewScoringService(
		memory.NewCompetitionRepository(competitions),
		entryRepo,
		resultsRepo,
		discardLogger(),
	)

	return service, entryRepo, resultsRepo
}

func TestScoringService_LiveTotalsCaptainDoubles(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, false)

	// Captain on the -2 golfer doubles it: -2*2 -1 +0 +1 +3 -4 = -5.
	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", affordableRoster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(1)))

	totals, err := service.LiveTotals(t.Context(), memory.CompetitionIDAugustaH2H)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, -5, totals[0].Total)
}

func TestScoringService_LiveTotalsOrderedByDirection(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, false)

	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", affordableRoster)))
	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-2", "user-2", "aug-g10", affordableRoster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(1)))

	totals, err := service.LiveTotals(t.Context(), memory.CompetitionIDAugustaH2H)
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// Lower wins: the -5 entry leads the 0 entry.
	assert.Equal(t, "e-1", totals[0].EntryID)
	assert.Equal(t, -5, totals[0].Total)
	assert.Equal(t, "e-2", totals[1].EntryID)
	assert.Equal(t, 0, totals[1].Total)
}

func TestScoringService_LiveTotalsMissingGolferFails(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, false)

	roster := append(append([]string(nil), affordableRoster[:5]...), "aug-g12")
	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", roster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(1)))

	_, err := service.LiveTotals(t.Context(), memory.CompetitionIDAugustaH2H)
	require.ErrorIs(t, err, scoring.ErrMissingResult)
}

func TestScoringService_FinalizeRequiresCompletedCompetition(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, false)

	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", affordableRoster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(1)))

	_, err := service.FinalizeCompetition(t.Context(), memory.CompetitionIDAugustaH2H)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoringService_FinalizeMarksEntriesScored(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, true)

	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", affordableRoster)))
	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-2", "user-2", "aug-g10", affordableRoster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(3)))

	result, err := service.FinalizeCompetition(t.Context(), memory.CompetitionIDAugustaH2H)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ScoredCount)
	assert.Equal(t, int64(3), result.ResultsVersion)

	scored, found, err := entryRepo.GetByID(t.Context(), "e-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry.StatusScored, scored.Status)
	require.NotNil(t, scored.TotalScore)
	assert.Equal(t, -5, *scored.TotalScore)
	assert.Equal(t, int64(3), scored.ScoredVersion)
}

func TestScoringService_FinalizeIsRecomputableOnNewVersion(t *testing.T) {
	service, entryRepo, resultsRepo := newScoringServiceForTest(t, true)

	require.NoError(t, entryRepo.Upsert(t.Context(), lockedEntry("e-1", "user-1", "aug-g04", affordableRoster)))
	require.NoError(t, resultsRepo.UpsertResultSet(t.Context(), augustaResultSet(3)))

	_, err := service.FinalizeCompetition(t.Context(), memory.CompetitionIDAugustaH2H)
	require.NoError(t, err)

	// A corrected snapshot with a newer version overwrites the totals.
	corrected := augustaResultSet(4)
	for i := range corrected.Results {
		if corrected.Results[i].GolferID == "aug-g10" {
			corrected.Results[i].Score = 5
		}
	}
	require.NoError(t, service.IngestResults(t.Context(), corrected))

	result, err := service.FinalizeCompetition(t.Context(), memory.CompetitionIDAugustaH2H)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.ResultsVersion)

	scored, _, err := entryRepo.GetByID(t.Context(), "e-1")
	require.NoError(t, err)
	require.NotNil(t, scored.TotalScore)
	assert.Equal(t, -3, *scored.TotalScore)
}

func TestScoringService_IngestDropsStaleVersions(t *testing.T) {
	service, _, resultsRepo := newScoringServiceForTest(t, false)

	require.NoError(t, service.IngestResults(t.Context(), augustaResultSet(5)))

	stale := augustaResultSet(4)
	require.NoError(t, service.IngestResults(t.Context(), stale))

	stored, found, err := resultsRepo.GetResultSet(t.Context(), memory.TournamentIDAugustaInvitational)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(5), stored.Version)
}

func TestScoringService_IngestValidatesPayload(t *testing.T) {
	service, _, _ := newScoringServiceForTest(t, false)

	err := service.IngestResults(t.Context(), scoring.ResultSet{TournamentID: "", Version: 1})
	require.ErrorIs(t, err, ErrInvalidInput)

	bad := augustaResultSet(1)
	bad.Results[0].Round = 5
	err = service.IngestResults(t.Context(), bad)
	require.ErrorIs(t, err, ErrInvalidInput)
}
