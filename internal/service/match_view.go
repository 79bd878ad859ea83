package service

import (
	"context"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
)

// MatchView is a stored match with every map, player and agent reference
// resolved to its current name.
type MatchView struct {
	*domain.Match
	Maps []MapView `json:"maps"`
}

type MapView struct {
	domain.MapResult
	MapName string         `json:"mapName"`
	Stats   []StatLineView `json:"stats"`
}

// StatLineView names are empty when the player or agent has since been
// deleted.
type StatLineView struct {
	domain.PlayerStatLine
	PlayerName string `json:"playerName,omitempty"`
	AgentName  string `json:"agentName,omitempty"`
}

// Describe resolves names for the given matches with one lookup per
// catalog table.
func (s *LedgerService) Describe(ctx context.Context, matches ...*domain.Match) ([]MatchView, error) {
	mapIDs := make(map[uuid.UUID]struct{})
	playerIDs := make(map[uuid.UUID]struct{})
	agentIDs := make(map[uuid.UUID]struct{})
	for _, m := range matches {
		for _, mr := range m.Maps {
			mapIDs[mr.MapID] = struct{}{}
			for _, line := range mr.Stats {
				playerIDs[line.PlayerID] = struct{}{}
				if line.AgentID != nil {
					agentIDs[*line.AgentID] = struct{}{}
				}
			}
		}
	}

	mapNames := make(map[uuid.UUID]string, len(mapIDs))
	maps, err := s.repos.Map.GetByIDs(ctx, keys(mapIDs))
	if err != nil {
		return nil, err
	}
	for _, m := range maps {
		mapNames[m.ID] = m.Name
	}

	playerNames := make(map[uuid.UUID]string, len(playerIDs))
	players, err := s.repos.Player.GetByIDs(ctx, keys(playerIDs))
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		playerNames[p.ID] = p.Name
	}

	agentNames := make(map[uuid.UUID]string, len(agentIDs))
	agents, err := s.repos.Agent.GetByIDs(ctx, keys(agentIDs))
	if err != nil {
		return nil, err
	}
	for _, a := range agents {
		agentNames[a.ID] = a.Name
	}

	views := make([]MatchView, len(matches))
	for i, m := range matches {
		view := MatchView{Match: m, Maps: make([]MapView, len(m.Maps))}
		for j, mr := range m.Maps {
			mv := MapView{
				MapResult: mr,
				MapName:   mapNames[mr.MapID],
				Stats:     make([]StatLineView, len(mr.Stats)),
			}
			for k, line := range mr.Stats {
				lv := StatLineView{PlayerStatLine: line, PlayerName: playerNames[line.PlayerID]}
				if line.AgentID != nil {
					lv.AgentName = agentNames[*line.AgentID]
				}
				mv.Stats[k] = lv
			}
			view.Maps[j] = mv
		}
		views[i] = view
	}
	return views, nil
}
