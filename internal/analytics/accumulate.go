// Package analytics derives read-time views from match history. Every function
// here is pure: callers load the matches, these functions only fold them.
package analytics

import (
	"sort"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
)

// LineFilter selects the stat lines that take part in an accumulation.
type LineFilter func(mr *domain.MapResult, line *domain.PlayerStatLine) bool

func OnMap(mapID uuid.UUID) LineFilter {
	return func(mr *domain.MapResult, _ *domain.PlayerStatLine) bool {
		return mr.MapID == mapID
	}
}

func WithAgent(agentID uuid.UUID) LineFilter {
	return func(_ *domain.MapResult, line *domain.PlayerStatLine) bool {
		return line.AgentID != nil && *line.AgentID == agentID
	}
}

// AccumulateByPlayer sums every selected line per player.
func AccumulateByPlayer(matches []domain.Match, keep LineFilter) map[uuid.UUID]domain.PlayerStats {
	totals := make(map[uuid.UUID]domain.PlayerStats)
	for i := range matches {
		for j := range matches[i].Maps {
			mr := &matches[i].Maps[j]
			for k := range mr.Stats {
				line := &mr.Stats[k]
				if keep != nil && !keep(mr, line) {
					continue
				}
				totals[line.PlayerID] = totals[line.PlayerID].Add(line.Stats())
			}
		}
	}
	return totals
}

// PlayerScore is a player's totals within some scope together with the KDA
// over those totals.
type PlayerScore struct {
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name,omitempty"`
	domain.PlayerStats
	KDA float64 `json:"kda"`
}

func NewPlayerScore(playerID uuid.UUID, stats domain.PlayerStats) PlayerScore {
	return PlayerScore{PlayerID: playerID, PlayerStats: stats, KDA: stats.KDA()}
}

// BestPlayer returns the highest KDA among the totals, the lower player id
// winning ties. ok is false when there is nothing to choose from.
func BestPlayer(totals map[uuid.UUID]domain.PlayerStats) (best PlayerScore, ok bool) {
	for id, stats := range totals {
		candidate := NewPlayerScore(id, stats)
		if !ok || ranksAbove(candidate, best) {
			best, ok = candidate, true
		}
	}
	return best, ok
}

func BestPlayerForAgent(matches []domain.Match, agentID uuid.UUID) (PlayerScore, bool) {
	return BestPlayer(AccumulateByPlayer(matches, WithAgent(agentID)))
}

func BestPlayerForMap(matches []domain.Match, mapID uuid.UUID) (PlayerScore, bool) {
	return BestPlayer(AccumulateByPlayer(matches, OnMap(mapID)))
}

// PlayerLeaderboard ranks players by the KDA of their aggregate stats and
// returns at most limit entries.
func PlayerLeaderboard(players []domain.Player, limit int) []PlayerScore {
	scores := make([]PlayerScore, len(players))
	for i, p := range players {
		scores[i] = NewPlayerScore(p.ID, p.Stats)
		scores[i].Name = p.Name
	}
	sort.Slice(scores, func(i, j int) bool { return ranksAbove(scores[i], scores[j]) })

	if limit >= 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

func ranksAbove(a, b PlayerScore) bool {
	if a.KDA != b.KDA {
		return a.KDA > b.KDA
	}
	return domain.LessID(a.PlayerID, b.PlayerID)
}
