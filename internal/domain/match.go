package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MapsPerMatch is the fixed best-of-three series length.
const MapsPerMatch = 3

// Match is a best-of-three series. It exclusively owns its map results and stat
// lines, which are stored inline and addressed only by position.
type Match struct {
	ID        uuid.UUID                      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Team1ID   uuid.UUID                      `json:"team1Id" gorm:"type:uuid;not null;index"`
	Team2ID   uuid.UUID                      `json:"team2Id" gorm:"type:uuid;not null;index"`
	WinnerID  uuid.UUID                      `json:"winnerId" gorm:"type:uuid;not null"`
	Scores    SeriesScore                    `json:"scores" gorm:"embedded;embeddedPrefix:score_"`
	Maps      datatypes.JSONSlice[MapResult] `json:"maps" gorm:"type:jsonb;not null"`
	CreatedAt time.Time                      `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time                      `json:"updatedAt"`

	// Relations
	Team1  *Team `json:"team1,omitempty" gorm:"foreignKey:Team1ID"`
	Team2  *Team `json:"team2,omitempty" gorm:"foreignKey:Team2ID"`
	Winner *Team `json:"winner,omitempty" gorm:"foreignKey:WinnerID"`
}

// SeriesScore counts maps won by each side.
type SeriesScore struct {
	Team1Score int `json:"team1Score" gorm:"not null;default:0"`
	Team2Score int `json:"team2Score" gorm:"not null;default:0"`
}

// MapResult is one played map of a series.
type MapResult struct {
	MapID      uuid.UUID        `json:"mapId"`
	Team1Score int              `json:"team1Score"`
	Team2Score int              `json:"team2Score"`
	Stats      []PlayerStatLine `json:"stats"`
}

// PlayerStatLine is one player's line for a single map. TeamID is the roster the
// line was built from.
type PlayerStatLine struct {
	PlayerID uuid.UUID  `json:"playerId"`
	TeamID   uuid.UUID  `json:"teamId"`
	AgentID  *uuid.UUID `json:"agentId,omitempty"`
	Kills    int        `json:"kills"`
	Deaths   int        `json:"deaths"`
	Assists  int        `json:"assists"`
}

func (l PlayerStatLine) Stats() PlayerStats {
	return PlayerStats{Kills: l.Kills, Deaths: l.Deaths, Assists: l.Assists}
}

// Involves reports whether the team played either side of the match.
func (m *Match) Involves(teamID uuid.UUID) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// LoserID is the side that is not the stored winner.
func (m *Match) LoserID() uuid.UUID {
	if m.WinnerID == m.Team1ID {
		return m.Team2ID
	}
	return m.Team1ID
}

// Validate checks the structural invariants every persisted match holds.
func (m *Match) Validate() error {
	if len(m.Maps) != MapsPerMatch {
		return ErrInvalidMapCount
	}
	if m.Team1ID == m.Team2ID {
		return ErrSameTeam
	}
	for _, mr := range m.Maps {
		if mr.Team1Score < 0 || mr.Team2Score < 0 {
			return ErrNegativeValue
		}
		for _, line := range mr.Stats {
			if line.Kills < 0 || line.Deaths < 0 || line.Assists < 0 {
				return ErrNegativeValue
			}
		}
	}
	return nil
}

// MapInput is the caller-supplied result of one map, stats keyed by player.
type MapInput struct {
	MapID      uuid.UUID
	Team1Score int
	Team2Score int
	Stats      map[uuid.UUID]StatInput
}

type StatInput struct {
	AgentID *uuid.UUID
	Kills   int
	Deaths  int
	Assists int
}

// BuildMapResults expands map inputs into map results carrying one stat line per
// roster player, team1's roster first. Players absent from an input get a zero
// line; input entries for players on neither roster are rejected.
func BuildMapResults(team1, team2 *Team, inputs []MapInput) ([]MapResult, error) {
	if len(inputs) != MapsPerMatch {
		return nil, ErrInvalidMapCount
	}
	if team1 == nil || team2 == nil {
		return nil, ErrInvalidTeams
	}
	if team1.ID == team2.ID {
		return nil, ErrSameTeam
	}
	if len(team1.Players) == 0 || len(team2.Players) == 0 {
		return nil, ErrEmptyRoster
	}

	roster := make(map[uuid.UUID]uuid.UUID, len(team1.Players)+len(team2.Players))
	for _, p := range team1.Players {
		roster[p.ID] = team1.ID
	}
	for _, p := range team2.Players {
		roster[p.ID] = team2.ID
	}

	results := make([]MapResult, 0, len(inputs))
	for _, in := range inputs {
		for playerID := range in.Stats {
			if _, ok := roster[playerID]; !ok {
				return nil, ErrUnknownPlayer
			}
		}

		mr := MapResult{
			MapID:      in.MapID,
			Team1Score: in.Team1Score,
			Team2Score: in.Team2Score,
			Stats:      make([]PlayerStatLine, 0, len(roster)),
		}
		for _, team := range []*Team{team1, team2} {
			for _, p := range team.Players {
				line := PlayerStatLine{PlayerID: p.ID, TeamID: team.ID}
				if s, ok := in.Stats[p.ID]; ok {
					line.AgentID = s.AgentID
					line.Kills = s.Kills
					line.Deaths = s.Deaths
					line.Assists = s.Assists
				}
				mr.Stats = append(mr.Stats, line)
			}
		}
		results = append(results, mr)
	}
	return results, nil
}
