package analytics

import (
	"sort"
	"time"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
)

type TrendPoint struct {
	MatchID  uuid.UUID `json:"matchId"`
	PlayedAt time.Time `json:"playedAt"`
	domain.PlayerStats
	KDA float64 `json:"kda"`
}

// PerformanceTrend returns one point per match the player has lines in, in
// chronological order.
func PerformanceTrend(matches []domain.Match, playerID uuid.UUID) []TrendPoint {
	ordered := Chronological(matches)

	points := make([]TrendPoint, 0, len(ordered))
	for _, m := range ordered {
		var (
			stats domain.PlayerStats
			found bool
		)
		for _, mr := range m.Maps {
			for _, line := range mr.Stats {
				if line.PlayerID == playerID {
					stats = stats.Add(line.Stats())
					found = true
				}
			}
		}
		if !found {
			continue
		}
		points = append(points, TrendPoint{
			MatchID:     m.ID,
			PlayedAt:    m.CreatedAt,
			PlayerStats: stats,
			KDA:         stats.KDA(),
		})
	}
	return points
}

type AgentPerformance struct {
	AgentID uuid.UUID `json:"agentId"`
	Name    string    `json:"name,omitempty"`
	domain.PlayerStats
	Matches    int     `json:"matches"`
	MapsPlayed int     `json:"mapsPlayed"`
	KDA        float64 `json:"kda"`
}

// BestAgents groups the player's lines by agent, sorted by KDA descending then
// agent id. Lines without an agent are left out.
func BestAgents(matches []domain.Match, playerID uuid.UUID) []AgentPerformance {
	byAgent := make(map[uuid.UUID]*AgentPerformance)
	for i := range matches {
		seen := make(map[uuid.UUID]bool)
		for _, mr := range matches[i].Maps {
			for _, line := range mr.Stats {
				if line.PlayerID != playerID || line.AgentID == nil {
					continue
				}
				agentID := *line.AgentID
				perf, ok := byAgent[agentID]
				if !ok {
					perf = &AgentPerformance{AgentID: agentID}
					byAgent[agentID] = perf
				}
				if !seen[agentID] {
					seen[agentID] = true
					perf.Matches++
				}
				perf.MapsPlayed++
				perf.PlayerStats = perf.PlayerStats.Add(line.Stats())
			}
		}
	}

	out := make([]AgentPerformance, 0, len(byAgent))
	for _, perf := range byAgent {
		perf.KDA = perf.PlayerStats.KDA()
		out = append(out, *perf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KDA != out[j].KDA {
			return out[i].KDA > out[j].KDA
		}
		return domain.LessID(out[i].AgentID, out[j].AgentID)
	})
	return out
}

// Chronological returns the matches ordered by creation time then id, leaving
// the input untouched.
func Chronological(matches []domain.Match) []domain.Match {
	ordered := append([]domain.Match(nil), matches...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return domain.LessID(ordered[i].ID, ordered[j].ID)
	})
	return ordered
}
