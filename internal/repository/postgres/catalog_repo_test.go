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

func TestAgentRepository_CreateAndUpdate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAgentRepository(testDB.DB)
	ctx := context.Background()

	agent := &domain.Agent{ID: uuid.New(), Name: "Sova", Icon: "sova.png"}

	// Create
	require.NoError(t, repo.Create(ctx, agent))

	got, err := repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sova", got.Name)
	assert.Equal(t, "sova.png", got.Icon)

	// Update
	agent.Icon = "sova-v2.png"
	require.NoError(t, repo.Update(ctx, agent))

	got, err = repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "sova-v2.png", got.Icon)

	// Duplicate name
	err = repo.Create(ctx, &domain.Agent{ID: uuid.New(), Name: "Sova", Icon: "x.png"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Missing row
	err = repo.Update(ctx, &domain.Agent{ID: uuid.New(), Name: "Ghost"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAgentRepository_GetByIDs(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAgentRepository(testDB.DB)
	ctx := context.Background()

	jett := testutil.NewAgent(t, testDB.DB, "Jett")
	sage := testutil.NewAgent(t, testDB.DB, "Sage")
	testutil.NewAgent(t, testDB.DB, "Omen")

	tests := []struct {
		name    string
		ids     []uuid.UUID
		wantLen int
	}{
		{name: "empty ids", ids: nil, wantLen: 0},
		{name: "two known", ids: []uuid.UUID{jett.ID, sage.ID}, wantLen: 2},
		{name: "one unknown", ids: []uuid.UUID{jett.ID, uuid.New()}, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByIDs(ctx, tt.ids)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestMapRepository_ListSortedByName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewMapRepository(testDB.DB)
	ctx := context.Background()

	testutil.NewMap(t, testDB.DB, "Sunset")
	testutil.NewMap(t, testDB.DB, "Abyss")
	split := testutil.NewMap(t, testDB.DB, "Split")

	maps, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, maps, 3)
	assert.Equal(t, "Abyss", maps[0].Name)
	assert.Equal(t, "Split", maps[1].Name)
	assert.Equal(t, "Sunset", maps[2].Name)

	require.NoError(t, repo.Delete(ctx, split.ID))
	_, err = repo.GetByID(ctx, split.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, split.ID), gorm.ErrRecordNotFound)
}
