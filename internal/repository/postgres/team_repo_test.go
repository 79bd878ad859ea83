package postgres_test

import (
	"context"
	"testing"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/repository/postgres"
	"github.com/dom/esports-stats-ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTeamRepository_AddSubtractStats(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTeamRepository(testDB.DB)
	ctx := context.Background()

	team := testutil.NewTeamBuilder().
		WithStats(domain.TeamStats{Wins: 1, Losses: 1, TotalGames: 2, PointsScored: 40, PointsConceded: 30}).
		Build(t, testDB.DB)

	delta := domain.TeamStats{Wins: 1, TotalGames: 1, PointsScored: 37, PointsConceded: 29}
	require.NoError(t, repo.AddStats(ctx, team.ID, delta))
	assert.Equal(t,
		domain.TeamStats{Wins: 2, Losses: 1, TotalGames: 3, PointsScored: 77, PointsConceded: 59},
		testutil.ReloadTeam(t, testDB.DB, team))

	require.NoError(t, repo.SubtractStats(ctx, team.ID, delta))
	assert.Equal(t,
		domain.TeamStats{Wins: 1, Losses: 1, TotalGames: 2, PointsScored: 40, PointsConceded: 30},
		testutil.ReloadTeam(t, testDB.DB, team))

	// Subtracting more than stored floors at zero.
	require.NoError(t, repo.SubtractStats(ctx, team.ID, domain.TeamStats{Wins: 5, Losses: 5, TotalGames: 10, PointsScored: 100}))
	assert.Equal(t,
		domain.TeamStats{PointsConceded: 30},
		testutil.ReloadTeam(t, testDB.DB, team))
}

func TestTeamRepository_GetWithPlayers(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTeamRepository(testDB.DB)
	ctx := context.Background()

	team, players := testutil.BuildRoster(t, testDB.DB, "Sentinels", 3)
	testutil.NewPlayerBuilder().Build(t, testDB.DB) // free agent

	got, err := repo.GetWithPlayers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, got.Players, 3)
	for i, p := range players {
		assert.Equal(t, p.ID, got.Players[i].ID)
	}

	_, err = repo.GetWithPlayers(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTeamRepository_ListTopByWins(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTeamRepository(testDB.DB)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		testutil.NewTeamBuilder().
			WithStats(domain.TeamStats{Wins: i % 6, TotalGames: i % 6}).
			Build(t, testDB.DB)
	}

	teams, err := repo.ListTopByWins(ctx, 10)
	require.NoError(t, err)
	require.Len(t, teams, 10)
	for i := 1; i < len(teams); i++ {
		prev, cur := teams[i-1], teams[i]
		assert.GreaterOrEqual(t, prev.Stats.Wins, cur.Stats.Wins)
		if prev.Stats.Wins == cur.Stats.Wins {
			assert.True(t, domain.LessID(prev.ID, cur.ID), "ties must be ordered by id")
		}
	}
}

func TestTeamRepository_DeleteUnassignsPlayers(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTeamRepository(testDB.DB)
	players := postgres.NewPlayerRepository(testDB.DB)
	ctx := context.Background()

	team, roster := testutil.BuildRoster(t, testDB.DB, "Fnatic", 2)

	require.NoError(t, repo.Delete(ctx, team.ID))

	p, err := players.GetByID(ctx, roster[0].ID)
	require.NoError(t, err)
	assert.Nil(t, p.TeamID)

	assert.ErrorIs(t, repo.Delete(ctx, team.ID), gorm.ErrRecordNotFound)
}

func TestTeamRepository_DuplicateName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewTeamRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewTeamBuilder().WithName("LOUD").Build(t, testDB.DB)

	err := repo.Create(ctx, &domain.Team{ID: uuid.New(), Name: "LOUD"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestTeamRepository_GetByIDsForUpdate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	first := testutil.NewTeamBuilder().WithName("First").Build(t, testDB.DB)
	second := testutil.NewTeamBuilder().WithName("Second").Build(t, testDB.DB)
	want := []uuid.UUID{first.ID, second.ID}
	if domain.LessID(second.ID, first.ID) {
		want = []uuid.UUID{second.ID, first.ID}
	}

	err := testDB.DB.Transaction(func(tx *gorm.DB) error {
		got, err := postgres.NewTeamRepository(tx).GetByIDsForUpdate(ctx, []uuid.UUID{first.ID, uuid.New(), second.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, want, []uuid.UUID{got[0].ID, got[1].ID})

		// A second writer cannot take the same rows while this one holds them.
		blocked := testDB.DB.Transaction(func(other *gorm.DB) error {
			if err := other.Exec("SET LOCAL lock_timeout = '100ms'").Error; err != nil {
				return err
			}
			_, err := postgres.NewTeamRepository(other).GetByIDsForUpdate(ctx, []uuid.UUID{first.ID})
			return err
		})
		assert.Error(t, blocked)
		return nil
	})
	require.NoError(t, err)

	got, err := postgres.NewTeamRepository(testDB.DB).GetByIDsForUpdate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
