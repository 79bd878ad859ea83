package analytics_test

import (
	"testing"
	"time"

	"github.com/dom/esports-stats-ledger/internal/analytics"
	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	teamA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	teamB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	teamC = uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	p1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	p2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	p3 = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	p5 = uuid.MustParse("00000000-0000-0000-0000-000000000005")

	ascent = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	bind   = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	haven  = uuid.MustParse("00000000-0000-0000-0000-0000000000a3")

	jett = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	sova = uuid.MustParse("00000000-0000-0000-0000-0000000000f2")
)

func line(player, team uuid.UUID, agent *uuid.UUID, k, d, a int) domain.PlayerStatLine {
	return domain.PlayerStatLine{PlayerID: player, TeamID: team, AgentID: agent, Kills: k, Deaths: d, Assists: a}
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

// history holds two matches: A (P1,P2) vs B (P3) and C (P5) vs A.
func history() []domain.Match {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Match{
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-0000000000d2"),
			Team1ID:   teamC,
			Team2ID:   teamA,
			WinnerID:  teamA,
			CreatedAt: base.Add(time.Hour),
			Maps: []domain.MapResult{
				{MapID: ascent, Team1Score: 13, Team2Score: 11, Stats: []domain.PlayerStatLine{
					line(p5, teamC, ptr(jett), 25, 10, 5),
					line(p1, teamA, ptr(sova), 10, 10, 10),
				}},
				{MapID: haven, Team1Score: 5, Team2Score: 13, Stats: []domain.PlayerStatLine{
					line(p5, teamC, ptr(jett), 8, 15, 1),
					line(p1, teamA, nil, 18, 6, 0),
				}},
				{MapID: bind, Team1Score: 9, Team2Score: 13, Stats: []domain.PlayerStatLine{
					line(p5, teamC, ptr(jett), 10, 12, 2),
					line(p1, teamA, ptr(jett), 16, 8, 4),
				}},
			},
		},
		{
			ID:        uuid.MustParse("00000000-0000-0000-0000-0000000000d1"),
			Team1ID:   teamA,
			Team2ID:   teamB,
			WinnerID:  teamA,
			CreatedAt: base,
			Maps: []domain.MapResult{
				{MapID: ascent, Team1Score: 13, Team2Score: 7, Stats: []domain.PlayerStatLine{
					line(p1, teamA, ptr(jett), 20, 10, 5),
					line(p2, teamA, ptr(sova), 12, 12, 8),
					line(p3, teamB, ptr(jett), 9, 14, 3),
				}},
				{MapID: bind, Team1Score: 10, Team2Score: 13, Stats: []domain.PlayerStatLine{
					line(p1, teamA, ptr(jett), 14, 14, 2),
					line(p2, teamA, ptr(sova), 11, 13, 6),
					line(p3, teamB, ptr(jett), 19, 10, 4),
				}},
				{MapID: ascent, Team1Score: 13, Team2Score: 3, Stats: []domain.PlayerStatLine{
					line(p1, teamA, ptr(jett), 18, 4, 2),
					line(p2, teamA, ptr(sova), 10, 5, 9),
					line(p3, teamB, ptr(jett), 5, 13, 1),
				}},
			},
		},
	}
}

func TestAccumulateByPlayer(t *testing.T) {
	totals := analytics.AccumulateByPlayer(history(), analytics.OnMap(bind))

	assert.Equal(t, domain.PlayerStats{Kills: 30, Deaths: 22, Assists: 6}, totals[p1])
	assert.Equal(t, domain.PlayerStats{Kills: 19, Deaths: 10, Assists: 4}, totals[p3])
	assert.Len(t, totals, 4)

	all := analytics.AccumulateByPlayer(history(), nil)
	assert.Equal(t, domain.PlayerStats{Kills: 96, Deaths: 52, Assists: 23}, all[p1])
}

func TestBestPlayerForAgent(t *testing.T) {
	best, ok := analytics.BestPlayerForAgent(history(), jett)
	require.True(t, ok)

	// p1 on jett: 68 kills, 36 deaths, 13 assists.
	assert.Equal(t, p1, best.PlayerID)
	assert.Equal(t, domain.PlayerStats{Kills: 68, Deaths: 36, Assists: 13}, best.PlayerStats)
	assert.InDelta(t, 81.0/36.0, best.KDA, 1e-9)
}

func TestBestPlayerForAgent_LinesWithoutAgentExcluded(t *testing.T) {
	totals := analytics.AccumulateByPlayer(history(), analytics.WithAgent(sova))
	assert.Equal(t, domain.PlayerStats{Kills: 10, Deaths: 10, Assists: 10}, totals[p1])
}

func TestBestPlayer_NoLines(t *testing.T) {
	_, ok := analytics.BestPlayerForMap(history(), uuid.New())
	assert.False(t, ok)

	_, ok = analytics.BestPlayer(nil)
	assert.False(t, ok)
}

func TestBestPlayer_TieGoesToLowerID(t *testing.T) {
	totals := map[uuid.UUID]domain.PlayerStats{
		p3: {Kills: 10, Deaths: 5},
		p2: {Kills: 4, Deaths: 2},
		p5: {Kills: 1, Deaths: 1},
	}
	for i := 0; i < 10; i++ {
		best, ok := analytics.BestPlayer(totals)
		require.True(t, ok)
		assert.Equal(t, p2, best.PlayerID)
	}
}

func TestCompareTeamsOnMap(t *testing.T) {
	result := analytics.CompareTeamsOnMap(history(), teamA, teamB, ascent)

	// A played ascent in both matches, once as team2.
	assert.Equal(t, 2, result.Team1.Matches)
	assert.Equal(t, domain.PlayerStats{Kills: 70, Deaths: 41, Assists: 34}, result.Team1.Stats)
	assert.InDelta(t, 35.0, result.Team1.AvgKills, 1e-9)
	assert.InDelta(t, 104.0/41.0, result.Team1.KDA, 1e-9)

	assert.Equal(t, 1, result.Team2.Matches)
	assert.Equal(t, domain.PlayerStats{Kills: 14, Deaths: 27, Assists: 4}, result.Team2.Stats)
	assert.InDelta(t, 14.0, result.Team2.AvgKills, 1e-9)
}

func TestCompareTeamsOnMap_NoMatches(t *testing.T) {
	result := analytics.CompareTeamsOnMap(history(), teamB, teamC, haven)

	assert.Zero(t, result.Team1.Matches)
	assert.Zero(t, result.Team1.AvgKills)
	assert.Zero(t, result.Team1.KDA)
	assert.Equal(t, 1, result.Team2.Matches)
}

func TestPlayerLeaderboard(t *testing.T) {
	var players []domain.Player
	for i := 0; i < 15; i++ {
		players = append(players, domain.Player{
			ID:    uuid.New(),
			Name:  "p",
			Stats: domain.PlayerStats{Kills: i, Deaths: 1},
		})
	}
	// Same KDA as the top player; must sort by id.
	players = append(players, domain.Player{ID: uuid.Nil, Stats: domain.PlayerStats{Kills: 14, Deaths: 1}})

	board := analytics.PlayerLeaderboard(players, 10)
	require.Len(t, board, 10)
	assert.Equal(t, uuid.Nil, board[0].PlayerID)
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].KDA, board[i].KDA)
	}
	assert.Equal(t, "p", board[1].Name)

	assert.Len(t, analytics.PlayerLeaderboard(players[:3], 10), 3)
	assert.Empty(t, analytics.PlayerLeaderboard(nil, 10))
}

func TestPerformanceTrend(t *testing.T) {
	points := analytics.PerformanceTrend(history(), p1)
	require.Len(t, points, 2)

	// Chronological even though history lists the later match first.
	assert.Equal(t, uuid.MustParse("00000000-0000-0000-0000-0000000000d1"), points[0].MatchID)
	assert.Equal(t, domain.PlayerStats{Kills: 52, Deaths: 28, Assists: 9}, points[0].PlayerStats)
	assert.InDelta(t, 61.0/28.0, points[0].KDA, 1e-9)
	assert.True(t, points[0].PlayedAt.Before(points[1].PlayedAt))

	assert.Len(t, analytics.PerformanceTrend(history(), p3), 1)
	assert.Empty(t, analytics.PerformanceTrend(history(), uuid.New()))
}

func TestBestAgents(t *testing.T) {
	agents := analytics.BestAgents(history(), p1)
	require.Len(t, agents, 2)

	assert.Equal(t, jett, agents[0].AgentID)
	assert.Equal(t, 2, agents[0].Matches)
	assert.Equal(t, 4, agents[0].MapsPlayed)
	assert.Equal(t, domain.PlayerStats{Kills: 68, Deaths: 36, Assists: 13}, agents[0].PlayerStats)

	assert.Equal(t, sova, agents[1].AgentID)
	assert.Equal(t, 1, agents[1].Matches)
	assert.InDelta(t, 2.0, agents[1].KDA, 1e-9)
}

func TestTeamMapPerformance(t *testing.T) {
	perf := analytics.TeamMapPerformance(history(), teamA)
	require.Len(t, perf, 3)

	byMap := make(map[uuid.UUID]analytics.MapPerformance)
	for _, p := range perf {
		byMap[p.MapID] = p
	}

	asc := byMap[ascent]
	assert.Equal(t, 2, asc.Matches)
	assert.Equal(t, 3, asc.MapsPlayed)
	assert.Equal(t, 2, asc.Wins)
	assert.Equal(t, 1, asc.Losses)
	assert.Equal(t, domain.PlayerStats{Kills: 70, Deaths: 41, Assists: 34}, asc.PlayerStats)

	b := byMap[bind]
	assert.Equal(t, 1, b.Wins)
	assert.Equal(t, 1, b.Losses)
	assert.Equal(t, 2, b.Matches)

	for i := 1; i < len(perf); i++ {
		assert.GreaterOrEqual(t, perf[i-1].KDA, perf[i].KDA)
	}

	assert.Empty(t, analytics.TeamMapPerformance(history(), uuid.New()))
}
