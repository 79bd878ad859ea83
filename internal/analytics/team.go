package analytics

import (
	"sort"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
)

// TeamOnMap is one team's own lines on a map, summed over every match in which
// the team played it.
type TeamOnMap struct {
	TeamID   uuid.UUID          `json:"teamId"`
	Name     string             `json:"name,omitempty"`
	Stats    domain.PlayerStats `json:"stats"`
	Matches  int                `json:"matches"`
	AvgKills float64            `json:"avgKills"`
	KDA      float64            `json:"kda"`
}

type TeamMapComparison struct {
	MapID uuid.UUID `json:"mapId"`
	Team1 TeamOnMap `json:"team1"`
	Team2 TeamOnMap `json:"team2"`
}

// CompareTeamsOnMap sums each team's lines on the map regardless of which side
// it played. AvgKills is per match the team played the map in, zero if none.
func CompareTeamsOnMap(matches []domain.Match, team1ID, team2ID, mapID uuid.UUID) TeamMapComparison {
	return TeamMapComparison{
		MapID: mapID,
		Team1: teamOnMap(matches, team1ID, mapID),
		Team2: teamOnMap(matches, team2ID, mapID),
	}
}

func teamOnMap(matches []domain.Match, teamID, mapID uuid.UUID) TeamOnMap {
	out := TeamOnMap{TeamID: teamID}
	for i := range matches {
		if !matches[i].Involves(teamID) {
			continue
		}
		played := false
		for _, mr := range matches[i].Maps {
			if mr.MapID != mapID {
				continue
			}
			played = true
			for _, line := range mr.Stats {
				if line.TeamID == teamID {
					out.Stats = out.Stats.Add(line.Stats())
				}
			}
		}
		if played {
			out.Matches++
		}
	}

	if out.Matches > 0 {
		out.AvgKills = float64(out.Stats.Kills) / float64(out.Matches)
	}
	out.KDA = out.Stats.KDA()
	return out
}

// MapPerformance is a team's record and own-line totals on one map.
type MapPerformance struct {
	MapID uuid.UUID `json:"mapId"`
	Name  string    `json:"name,omitempty"`
	domain.PlayerStats
	Matches    int     `json:"matches"`
	MapsPlayed int     `json:"mapsPlayed"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	KDA        float64 `json:"kda"`
}

// TeamMapPerformance groups the team's lines by map, sorted by KDA descending
// then map id.
func TeamMapPerformance(matches []domain.Match, teamID uuid.UUID) []MapPerformance {
	byMap := make(map[uuid.UUID]*MapPerformance)
	for i := range matches {
		m := &matches[i]
		if !m.Involves(teamID) {
			continue
		}
		seen := make(map[uuid.UUID]bool)
		for _, mr := range m.Maps {
			perf, ok := byMap[mr.MapID]
			if !ok {
				perf = &MapPerformance{MapID: mr.MapID}
				byMap[mr.MapID] = perf
			}
			if !seen[mr.MapID] {
				seen[mr.MapID] = true
				perf.Matches++
			}
			perf.MapsPlayed++

			own, other := mr.Team1Score, mr.Team2Score
			if m.Team2ID == teamID {
				own, other = other, own
			}
			switch {
			case own > other:
				perf.Wins++
			case other > own:
				perf.Losses++
			}

			for _, line := range mr.Stats {
				if line.TeamID == teamID {
					perf.PlayerStats = perf.PlayerStats.Add(line.Stats())
				}
			}
		}
	}

	out := make([]MapPerformance, 0, len(byMap))
	for _, perf := range byMap {
		perf.KDA = perf.PlayerStats.KDA()
		out = append(out, *perf)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KDA != out[j].KDA {
			return out[i].KDA > out[j].KDA
		}
		return domain.LessID(out[i].MapID, out[j].MapID)
	})
	return out
}
