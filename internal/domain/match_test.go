package domain_test

import (
	"testing"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamWithPlayers(name string, n int) *domain.Team {
	team := &domain.Team{ID: uuid.New(), Name: name}
	for i := 0; i < n; i++ {
		team.Players = append(team.Players, domain.Player{ID: uuid.New(), TeamID: &team.ID})
	}
	return team
}

func threeMaps(stats map[uuid.UUID]domain.StatInput) []domain.MapInput {
	return []domain.MapInput{
		{MapID: uuid.New(), Team1Score: 13, Team2Score: 10, Stats: stats},
		{MapID: uuid.New(), Team1Score: 8, Team2Score: 13},
		{MapID: uuid.New(), Team1Score: 13, Team2Score: 11},
	}
}

func TestBuildMapResults(t *testing.T) {
	teamA := teamWithPlayers("A", 2)
	teamB := teamWithPlayers("B", 2)
	agent := uuid.New()
	p1 := teamA.Players[0].ID

	results, err := domain.BuildMapResults(teamA, teamB, threeMaps(map[uuid.UUID]domain.StatInput{
		p1: {AgentID: &agent, Kills: 20, Deaths: 10, Assists: 5},
	}))
	require.NoError(t, err)
	require.Len(t, results, domain.MapsPerMatch)

	first := results[0]
	require.Len(t, first.Stats, 4)
	assert.Equal(t, p1, first.Stats[0].PlayerID)
	assert.Equal(t, teamA.ID, first.Stats[0].TeamID)
	assert.Equal(t, &agent, first.Stats[0].AgentID)
	assert.Equal(t, 20, first.Stats[0].Kills)

	// Roster players missing from the payload get a zero line.
	assert.Equal(t, teamB.ID, first.Stats[3].TeamID)
	assert.Nil(t, first.Stats[3].AgentID)
	assert.Zero(t, first.Stats[3].Kills)

	assert.Len(t, results[1].Stats, 4)
}

func TestBuildMapResults_Rejects(t *testing.T) {
	teamA := teamWithPlayers("A", 2)
	teamB := teamWithPlayers("B", 1)
	empty := teamWithPlayers("Empty", 0)

	tests := []struct {
		name    string
		team1   *domain.Team
		team2   *domain.Team
		inputs  []domain.MapInput
		wantErr error
	}{
		{name: "two maps", team1: teamA, team2: teamB, inputs: threeMaps(nil)[:2], wantErr: domain.ErrInvalidMapCount},
		{name: "four maps", team1: teamA, team2: teamB, inputs: append(threeMaps(nil), domain.MapInput{}), wantErr: domain.ErrInvalidMapCount},
		{name: "missing team", team1: teamA, team2: nil, inputs: threeMaps(nil), wantErr: domain.ErrInvalidTeams},
		{name: "same team", team1: teamA, team2: teamA, inputs: threeMaps(nil), wantErr: domain.ErrSameTeam},
		{name: "empty roster", team1: teamA, team2: empty, inputs: threeMaps(nil), wantErr: domain.ErrEmptyRoster},
		{
			name:    "stranger in stats",
			team1:   teamA,
			team2:   teamB,
			inputs:  threeMaps(map[uuid.UUID]domain.StatInput{uuid.New(): {Kills: 1}}),
			wantErr: domain.ErrUnknownPlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.BuildMapResults(tt.team1, tt.team2, tt.inputs)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestMatch_Validate(t *testing.T) {
	valid := func() *domain.Match {
		return &domain.Match{
			Team1ID: uuid.New(),
			Team2ID: uuid.New(),
			Maps: []domain.MapResult{
				{Team1Score: 13, Team2Score: 2},
				{Team1Score: 13, Team2Score: 2, Stats: []domain.PlayerStatLine{{Kills: 3}}},
				{Team1Score: 2, Team2Score: 13},
			},
		}
	}

	assert.NoError(t, valid().Validate())

	m := valid()
	m.Maps = m.Maps[:2]
	assert.ErrorIs(t, m.Validate(), domain.ErrInvalidMapCount)

	m = valid()
	m.Team2ID = m.Team1ID
	assert.ErrorIs(t, m.Validate(), domain.ErrSameTeam)

	m = valid()
	m.Maps[0].Team1Score = -1
	assert.ErrorIs(t, m.Validate(), domain.ErrNegativeValue)

	m = valid()
	m.Maps[1].Stats[0].Deaths = -4
	assert.ErrorIs(t, m.Validate(), domain.ErrNegativeValue)
}

func TestMatch_LoserID(t *testing.T) {
	m := &domain.Match{Team1ID: uuid.New(), Team2ID: uuid.New()}
	m.WinnerID = m.Team2ID
	assert.Equal(t, m.Team1ID, m.LoserID())
	m.WinnerID = m.Team1ID
	assert.Equal(t, m.Team2ID, m.LoserID())
}
