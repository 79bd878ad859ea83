package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/esports-stats-ledger/internal/analytics"
	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ComparisonService loads match history and hands it to the analytics
// package. It never writes.
type ComparisonService struct {
	repos           *repository.Repositories
	leaderboardSize int
}

func NewComparisonService(repos *repository.Repositories, leaderboardSize int) *ComparisonService {
	return &ComparisonService{
		repos:           repos,
		leaderboardSize: leaderboardSize,
	}
}

type PlayerSummary struct {
	ID    uuid.UUID          `json:"id"`
	Name  string             `json:"name"`
	Stats domain.PlayerStats `json:"stats"`
	KDA   float64            `json:"kda"`
}

type PlayerComparison struct {
	Player1 PlayerSummary `json:"player1"`
	Player2 PlayerSummary `json:"player2"`
}

func (s *ComparisonService) ComparePlayers(ctx context.Context, player1ID, player2ID uuid.UUID) (*PlayerComparison, error) {
	defer observeQuery("compare_players", time.Now())

	var p1, p2 *domain.Player
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p1, err = s.repos.Player.GetByID(gctx, player1ID)
		return notFound(err, domain.ErrPlayerNotFound)
	})
	g.Go(func() error {
		var err error
		p2, err = s.repos.Player.GetByID(gctx, player2ID)
		return notFound(err, domain.ErrPlayerNotFound)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &PlayerComparison{
		Player1: summarize(p1),
		Player2: summarize(p2),
	}, nil
}

func summarize(p *domain.Player) PlayerSummary {
	return PlayerSummary{ID: p.ID, Name: p.Name, Stats: p.Stats, KDA: p.Stats.KDA()}
}

// BestPlayerForAgent returns nil when no stat line used the agent.
func (s *ComparisonService) BestPlayerForAgent(ctx context.Context, agentID uuid.UUID) (*analytics.PlayerScore, error) {
	defer observeQuery("best_player_agent", time.Now())

	if _, err := s.repos.Agent.GetByID(ctx, agentID); err != nil {
		return nil, notFound(err, domain.ErrAgentNotFound)
	}
	matches, err := s.repos.Match.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	best, ok := analytics.BestPlayerForAgent(matches, agentID)
	if !ok {
		return nil, nil
	}
	return s.withPlayerName(ctx, best)
}

// BestPlayerForMap returns nil when the map was never played.
func (s *ComparisonService) BestPlayerForMap(ctx context.Context, mapID uuid.UUID) (*analytics.PlayerScore, error) {
	defer observeQuery("best_player_map", time.Now())

	if _, err := s.repos.Map.GetByID(ctx, mapID); err != nil {
		return nil, notFound(err, domain.ErrMapNotFound)
	}
	matches, err := s.repos.Match.ListByMap(ctx, mapID)
	if err != nil {
		return nil, err
	}

	best, ok := analytics.BestPlayerForMap(matches, mapID)
	if !ok {
		return nil, nil
	}
	return s.withPlayerName(ctx, best)
}

func (s *ComparisonService) withPlayerName(ctx context.Context, score analytics.PlayerScore) (*analytics.PlayerScore, error) {
	player, err := s.repos.Player.GetByID(ctx, score.PlayerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if player != nil {
		score.Name = player.Name
	}
	return &score, nil
}

func (s *ComparisonService) CompareTeamsOnMap(ctx context.Context, team1ID, team2ID, mapID uuid.UUID) (*analytics.TeamMapComparison, error) {
	defer observeQuery("compare_teams_map", time.Now())

	var (
		team1, team2 *domain.Team
		matches      []domain.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team1, err = s.repos.Team.GetByID(gctx, team1ID)
		return notFound(err, domain.ErrTeamNotFound)
	})
	g.Go(func() error {
		var err error
		team2, err = s.repos.Team.GetByID(gctx, team2ID)
		return notFound(err, domain.ErrTeamNotFound)
	})
	g.Go(func() error {
		_, err := s.repos.Map.GetByID(gctx, mapID)
		return notFound(err, domain.ErrMapNotFound)
	})
	g.Go(func() error {
		var err error
		matches, err = s.repos.Match.ListByMap(gctx, mapID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := analytics.CompareTeamsOnMap(matches, team1ID, team2ID, mapID)
	result.Team1.Name = team1.Name
	result.Team2.Name = team2.Name
	return &result, nil
}

func (s *ComparisonService) PlayerLeaderboard(ctx context.Context) ([]analytics.PlayerScore, error) {
	defer observeQuery("leaderboard", time.Now())

	players, err := s.repos.Player.List(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]domain.Player, len(players))
	for i, p := range players {
		values[i] = *p
	}
	return analytics.PlayerLeaderboard(values, s.leaderboardSize), nil
}

func (s *ComparisonService) TeamLeaderboard(ctx context.Context) ([]*domain.Team, error) {
	defer observeQuery("leaderboard_teams", time.Now())
	return s.repos.Team.ListTopByWins(ctx, s.leaderboardSize)
}

func (s *ComparisonService) PlayerPerformanceTrend(ctx context.Context, playerID uuid.UUID) ([]analytics.TrendPoint, error) {
	defer observeQuery("player_performance_trend", time.Now())

	if _, err := s.repos.Player.GetByID(ctx, playerID); err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound)
	}
	matches, err := s.repos.Match.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return analytics.PerformanceTrend(matches, playerID), nil
}

func (s *ComparisonService) PlayerBestAgents(ctx context.Context, playerID uuid.UUID) ([]analytics.AgentPerformance, error) {
	defer observeQuery("player_best_agents", time.Now())

	if _, err := s.repos.Player.GetByID(ctx, playerID); err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound)
	}
	matches, err := s.repos.Match.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	agents := analytics.BestAgents(matches, playerID)
	ids := make([]uuid.UUID, len(agents))
	for i, a := range agents {
		ids[i] = a.AgentID
	}
	found, err := s.repos.Agent.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(found))
	for _, a := range found {
		names[a.ID] = a.Name
	}
	for i := range agents {
		agents[i].Name = names[agents[i].AgentID]
	}
	return agents, nil
}

func (s *ComparisonService) TeamMapPerformance(ctx context.Context, teamID uuid.UUID) ([]analytics.MapPerformance, error) {
	defer observeQuery("team_map_performance", time.Now())

	if _, err := s.repos.Team.GetByID(ctx, teamID); err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}
	matches, err := s.repos.Match.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	perf := analytics.TeamMapPerformance(matches, teamID)
	ids := make([]uuid.UUID, len(perf))
	for i, p := range perf {
		ids[i] = p.MapID
	}
	found, err := s.repos.Map.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(found))
	for _, m := range found {
		names[m.ID] = m.Name
	}
	for i := range perf {
		perf[i].Name = names[perf[i].MapID]
	}
	return perf, nil
}
