package domain

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// AggregateEffect is what one match contributes to team and player running
// totals. Apply adds it; revert subtracts it with a zero floor.
type AggregateEffect struct {
	Teams   map[uuid.UUID]TeamStats
	Players map[uuid.UUID]PlayerStats
}

// EffectOf derives the effect from the match's stored winner and lines.
func EffectOf(m *Match) AggregateEffect {
	effect := AggregateEffect{
		Teams:   make(map[uuid.UUID]TeamStats, 2),
		Players: make(map[uuid.UUID]PlayerStats),
	}

	var team1Points, team2Points int
	for _, mr := range m.Maps {
		team1Points += mr.Team1Score
		team2Points += mr.Team2Score
		for _, line := range mr.Stats {
			effect.Players[line.PlayerID] = effect.Players[line.PlayerID].Add(line.Stats())
		}
	}

	effect.Teams[m.Team1ID] = TeamStats{TotalGames: 1, PointsScored: team1Points, PointsConceded: team2Points}
	effect.Teams[m.Team2ID] = TeamStats{TotalGames: 1, PointsScored: team2Points, PointsConceded: team1Points}

	for id, stats := range effect.Teams {
		switch id {
		case m.WinnerID:
			stats.Wins = 1
		case m.LoserID():
			stats.Losses = 1
		}
		effect.Teams[id] = stats
	}

	return effect
}

// TeamIDs returns the affected teams in ascending order, the order row locks
// are taken in.
func (e AggregateEffect) TeamIDs() []uuid.UUID {
	return sortedIDs(e.Teams)
}

// PlayerIDs returns the affected players in ascending order.
func (e AggregateEffect) PlayerIDs() []uuid.UUID {
	return sortedIDs(e.Players)
}

// LockOrder returns every team and player any of the effects touches, each
// list in ascending id order. Writers lock teams before players.
func LockOrder(effects ...AggregateEffect) (teamIDs, playerIDs []uuid.UUID) {
	teams := make(map[uuid.UUID]struct{})
	players := make(map[uuid.UUID]struct{})
	for _, e := range effects {
		for id := range e.Teams {
			teams[id] = struct{}{}
		}
		for id := range e.Players {
			players[id] = struct{}{}
		}
	}
	return sortedIDs(teams), sortedIDs(players)
}

// ApplyTo adds the effect to in-memory totals. Missing entries are ignored, the
// same way a persisted apply skips deleted rows.
func (e AggregateEffect) ApplyTo(teams map[uuid.UUID]TeamStats, players map[uuid.UUID]PlayerStats) {
	for id, d := range e.Teams {
		if cur, ok := teams[id]; ok {
			teams[id] = cur.Add(d)
		}
	}
	for id, d := range e.Players {
		if cur, ok := players[id]; ok {
			players[id] = cur.Add(d)
		}
	}
}

// RevertFrom subtracts the effect from in-memory totals, flooring at zero.
func (e AggregateEffect) RevertFrom(teams map[uuid.UUID]TeamStats, players map[uuid.UUID]PlayerStats) {
	for id, d := range e.Teams {
		if cur, ok := teams[id]; ok {
			teams[id] = cur.Sub(d)
		}
	}
	for id, d := range e.Players {
		if cur, ok := players[id]; ok {
			players[id] = cur.Sub(d)
		}
	}
}

func sortedIDs[V any](m map[uuid.UUID]V) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return LessID(ids[i], ids[j]) })
	return ids
}

// LessID orders ids by their bytes; the deterministic tie-break for rankings.
func LessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
