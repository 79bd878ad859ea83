package service

import (
	"context"
	"errors"
	"time"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// LedgerService owns every write to match history and keeps team and player
// aggregates equal to the sum of the stored matches' effects. Each operation
// runs in one transaction; update and delete hold the match row lock.
type LedgerService struct {
	repos *repository.Repositories
	tx    repository.Transactor
	log   zerolog.Logger
}

func NewLedgerService(repos *repository.Repositories, tx repository.Transactor, log zerolog.Logger) *LedgerService {
	return &LedgerService{
		repos: repos,
		tx:    tx,
		log:   log.With().Str("component", "ledger").Logger(),
	}
}

type MatchInput struct {
	Team1ID uuid.UUID
	Team2ID uuid.UUID
	Maps    []domain.MapInput
}

func (s *LedgerService) CreateMatch(ctx context.Context, input MatchInput) (*domain.Match, error) {
	var matchID uuid.UUID
	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		match, err := buildMatch(ctx, repos, input)
		if err != nil {
			return err
		}
		match.ID = uuid.New()
		match.CreatedAt = time.Now()
		match.UpdatedAt = match.CreatedAt

		effect := domain.EffectOf(match)
		if err := lockRows(ctx, repos, effect); err != nil {
			return err
		}
		if err := repos.Match.Create(ctx, match); err != nil {
			return err
		}
		if err := applyEffect(ctx, repos, effect); err != nil {
			return err
		}
		matchID = match.ID
		return nil
	})
	recordWrite("create", err)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("match_id", matchID.String()).
		Str("team1_id", input.Team1ID.String()).
		Str("team2_id", input.Team2ID.String()).
		Msg("match created")
	return s.GetMatch(ctx, matchID)
}

// UpdateMatch replaces a match's teams and maps: the stored effect is reverted,
// the winner recomputed and the new effect applied.
func (s *LedgerService) UpdateMatch(ctx context.Context, id uuid.UUID, input MatchInput) (*domain.Match, error) {
	if len(input.Maps) != domain.MapsPerMatch {
		recordWrite("update", domain.ErrInvalidMapCount)
		return nil, domain.ErrInvalidMapCount
	}

	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		old, err := repos.Match.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrMatchNotFound)
		}
		match, err := buildMatch(ctx, repos, input)
		if err != nil {
			return err
		}
		match.ID = old.ID
		match.CreatedAt = old.CreatedAt
		match.UpdatedAt = time.Now()

		// Old and new sides are locked together so an edit that swaps teams
		// takes rows in the same order as every other writer.
		oldEffect, newEffect := domain.EffectOf(old), domain.EffectOf(match)
		if err := lockRows(ctx, repos, oldEffect, newEffect); err != nil {
			return err
		}
		if err := revertEffect(ctx, repos, oldEffect); err != nil {
			return err
		}
		if err := repos.Match.Update(ctx, match); err != nil {
			return err
		}
		return applyEffect(ctx, repos, newEffect)
	})
	recordWrite("update", err)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("match_id", id.String()).Msg("match updated")
	return s.GetMatch(ctx, id)
}

func (s *LedgerService) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		match, err := repos.Match.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFound(err, domain.ErrMatchNotFound)
		}
		effect := domain.EffectOf(match)
		if err := lockRows(ctx, repos, effect); err != nil {
			return err
		}
		if err := revertEffect(ctx, repos, effect); err != nil {
			return err
		}
		return notFound(repos.Match.Delete(ctx, id), domain.ErrMatchNotFound)
	})
	recordWrite("delete", err)
	if err != nil {
		return err
	}

	s.log.Info().Str("match_id", id.String()).Msg("match deleted")
	return nil
}

func (s *LedgerService) GetMatch(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	match, err := s.repos.Match.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrMatchNotFound)
	}
	return match, nil
}

func (s *LedgerService) ListMatches(ctx context.Context) ([]domain.Match, error) {
	return s.repos.Match.List(ctx)
}

// ResetPlayerStats zeroes every player's kills, deaths and assists.
func (s *LedgerService) ResetPlayerStats(ctx context.Context) (int64, error) {
	n, err := s.repos.Player.ResetAllStats(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn().Int64("players", n).Msg("player stats reset")
	return n, nil
}

type RebuildResult struct {
	Matches         int `json:"matches"`
	TeamsChecked    int `json:"teamsChecked"`
	TeamsRepaired   int `json:"teamsRepaired"`
	PlayersChecked  int `json:"playersChecked"`
	PlayersRepaired int `json:"playersRepaired"`
}

// RebuildAggregates recomputes every team and player total from stored match
// history and overwrites the ones that drifted.
func (s *LedgerService) RebuildAggregates(ctx context.Context) (*RebuildResult, error) {
	result := &RebuildResult{}
	err := s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		teams, err := repos.Team.List(ctx)
		if err != nil {
			return err
		}
		players, err := repos.Player.List(ctx)
		if err != nil {
			return err
		}
		matches, err := repos.Match.List(ctx)
		if err != nil {
			return err
		}

		teamTotals := make(map[uuid.UUID]domain.TeamStats, len(teams))
		for _, t := range teams {
			teamTotals[t.ID] = domain.TeamStats{}
		}
		playerTotals := make(map[uuid.UUID]domain.PlayerStats, len(players))
		for _, p := range players {
			playerTotals[p.ID] = domain.PlayerStats{}
		}
		for i := range matches {
			domain.EffectOf(&matches[i]).ApplyTo(teamTotals, playerTotals)
		}

		result.Matches = len(matches)
		result.TeamsChecked = len(teams)
		result.PlayersChecked = len(players)

		for _, t := range teams {
			want := teamTotals[t.ID]
			if t.Stats == want {
				continue
			}
			s.log.Warn().
				Str("team_id", t.ID.String()).
				Interface("stored", t.Stats).
				Interface("derived", want).
				Msg("team aggregate drift repaired")
			if err := repos.Team.SetStats(ctx, t.ID, want); err != nil {
				return err
			}
			result.TeamsRepaired++
		}
		for _, p := range players {
			want := playerTotals[p.ID]
			if p.Stats == want {
				continue
			}
			s.log.Warn().
				Str("player_id", p.ID.String()).
				Interface("stored", p.Stats).
				Interface("derived", want).
				Msg("player aggregate drift repaired")
			if err := repos.Player.SetStats(ctx, p.ID, want); err != nil {
				return err
			}
			result.PlayersRepaired++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("matches", result.Matches).
		Int("teams_repaired", result.TeamsRepaired).
		Int("players_repaired", result.PlayersRepaired).
		Msg("aggregates rebuilt")
	return result, nil
}

// buildMatch validates input against the current catalog and returns an unsaved
// match with its winner resolved.
func buildMatch(ctx context.Context, repos *repository.Repositories, input MatchInput) (*domain.Match, error) {
	if len(input.Maps) != domain.MapsPerMatch {
		return nil, domain.ErrInvalidMapCount
	}
	if input.Team1ID == input.Team2ID {
		return nil, domain.ErrSameTeam
	}

	team1, err := loadRoster(ctx, repos, input.Team1ID)
	if err != nil {
		return nil, err
	}
	team2, err := loadRoster(ctx, repos, input.Team2ID)
	if err != nil {
		return nil, err
	}

	if err := checkReferences(ctx, repos, input.Maps); err != nil {
		return nil, err
	}

	maps, err := domain.BuildMapResults(team1, team2, input.Maps)
	if err != nil {
		return nil, err
	}

	match := &domain.Match{
		Team1ID: team1.ID,
		Team2ID: team2.ID,
		Maps:    maps,
	}
	if err := match.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ResolveWinner(match); err != nil {
		return nil, err
	}
	return match, nil
}

func loadRoster(ctx context.Context, repos *repository.Repositories, teamID uuid.UUID) (*domain.Team, error) {
	team, err := repos.Team.GetWithPlayers(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidTeams
		}
		return nil, err
	}
	return team, nil
}

// checkReferences rejects maps and agents that do not exist.
func checkReferences(ctx context.Context, repos *repository.Repositories, inputs []domain.MapInput) error {
	mapIDs := make(map[uuid.UUID]struct{})
	agentIDs := make(map[uuid.UUID]struct{})
	for _, in := range inputs {
		mapIDs[in.MapID] = struct{}{}
		for _, stat := range in.Stats {
			if stat.AgentID != nil {
				agentIDs[*stat.AgentID] = struct{}{}
			}
		}
	}

	maps, err := repos.Map.GetByIDs(ctx, keys(mapIDs))
	if err != nil {
		return err
	}
	if len(maps) != len(mapIDs) {
		return domain.ErrUnknownMap
	}

	agents, err := repos.Agent.GetByIDs(ctx, keys(agentIDs))
	if err != nil {
		return err
	}
	if len(agents) != len(agentIDs) {
		return domain.ErrUnknownAgent
	}
	return nil
}

// lockRows takes the row locks for every team and player the effects touch:
// teams first, then players, each in ascending id order. Team deletion follows
// the same order. A team that vanished since the roster was read is reported
// as ErrInvalidTeams; missing players are skipped like any other update.
func lockRows(ctx context.Context, repos *repository.Repositories, effects ...domain.AggregateEffect) error {
	teamIDs, playerIDs := domain.LockOrder(effects...)
	teams, err := repos.Team.GetByIDsForUpdate(ctx, teamIDs)
	if err != nil {
		return err
	}
	if len(teams) != len(teamIDs) {
		return domain.ErrInvalidTeams
	}
	_, err = repos.Player.GetByIDsForUpdate(ctx, playerIDs)
	return err
}

// applyEffect adds the effect to stored totals in ascending id order.
func applyEffect(ctx context.Context, repos *repository.Repositories, effect domain.AggregateEffect) error {
	for _, id := range effect.TeamIDs() {
		if err := repos.Team.AddStats(ctx, id, effect.Teams[id]); err != nil {
			return err
		}
	}
	for _, id := range effect.PlayerIDs() {
		if err := repos.Player.AddStats(ctx, id, effect.Players[id]); err != nil {
			return err
		}
	}
	aggregateEffects.WithLabelValues("apply").Inc()
	return nil
}

func revertEffect(ctx context.Context, repos *repository.Repositories, effect domain.AggregateEffect) error {
	for _, id := range effect.TeamIDs() {
		if err := repos.Team.SubtractStats(ctx, id, effect.Teams[id]); err != nil {
			return err
		}
	}
	for _, id := range effect.PlayerIDs() {
		if err := repos.Player.SubtractStats(ctx, id, effect.Players[id]); err != nil {
			return err
		}
	}
	aggregateEffects.WithLabelValues("revert").Inc()
	return nil
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
