package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/dom/esports-stats-ledger/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages the records the ledger refers to. Aggregate stats are
// never written here.
type CatalogService struct {
	teamRepo   repository.TeamRepository
	playerRepo repository.PlayerRepository
	agentRepo  repository.AgentRepository
	mapRepo    repository.MapRepository
	matchRepo  repository.MatchRepository
	tx         repository.Transactor
}

func NewCatalogService(repos *repository.Repositories, tx repository.Transactor) *CatalogService {
	return &CatalogService{
		tx:         tx,
		teamRepo:   repos.Team,
		playerRepo: repos.Player,
		agentRepo:  repos.Agent,
		mapRepo:    repos.Map,
		matchRepo:  repos.Match,
	}
}

// Teams

func (s *CatalogService) CreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	team := &domain.Team{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, translateWriteError(err)
	}
	return team, nil
}

func (s *CatalogService) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetWithPlayers(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrTeamNotFound)
	}
	return team, nil
}

func (s *CatalogService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx)
}

func (s *CatalogService) RenameTeam(ctx context.Context, id uuid.UUID, name string) (*domain.Team, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, translateWriteError(err)
	}
	return s.GetTeam(ctx, id)
}

// DeleteTeam refuses teams that appear in any match; their players are left
// without a team. The team row is locked before the match count, the same
// row a match write locks before it inserts.
func (s *CatalogService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(repos *repository.Repositories) error {
		locked, err := repos.Team.GetByIDsForUpdate(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return domain.ErrTeamNotFound
		}

		count, err := repos.Match.CountByTeam(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrTeamHasMatches
		}
		return notFound(repos.Team.Delete(ctx, id), domain.ErrTeamNotFound)
	})
}

// Players

type PlayerInput struct {
	Name   string
	TeamID *uuid.UUID
}

func (s *CatalogService) CreatePlayer(ctx context.Context, input PlayerInput) (*domain.Player, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	player := &domain.Player{
		ID:        uuid.New(),
		Name:      name,
		TeamID:    input.TeamID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, player.ID)
}

func (s *CatalogService) GetPlayer(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound)
	}
	return player, nil
}

func (s *CatalogService) ListPlayers(ctx context.Context) ([]*domain.Player, error) {
	return s.playerRepo.List(ctx)
}

// UpdatePlayer renames and reassigns a player. Moving a player between teams is
// a single write to Player.TeamID.
func (s *CatalogService) UpdatePlayer(ctx context.Context, id uuid.UUID, input PlayerInput) (*domain.Player, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := s.checkTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	player := &domain.Player{ID: id, Name: name, TeamID: input.TeamID}
	if err := s.playerRepo.UpdateProfile(ctx, player); err != nil {
		return nil, notFound(err, domain.ErrPlayerNotFound)
	}
	return s.GetPlayer(ctx, id)
}

func (s *CatalogService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		return notFound(err, domain.ErrPlayerNotFound)
	}
	return nil
}

func (s *CatalogService) checkTeam(ctx context.Context, teamID *uuid.UUID) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.teamRepo.GetByID(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInvalidTeams
		}
		return err
	}
	return nil
}

// Agents

func (s *CatalogService) CreateAgent(ctx context.Context, name, icon string) (*domain.Agent, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	agent := &domain.Agent{
		ID:        uuid.New(),
		Name:      name,
		Icon:      icon,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, translateWriteError(err)
	}
	return agent, nil
}

func (s *CatalogService) GetAgent(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrAgentNotFound)
	}
	return agent, nil
}

func (s *CatalogService) ListAgents(ctx context.Context) ([]*domain.Agent, error) {
	return s.agentRepo.List(ctx)
}

func (s *CatalogService) UpdateAgent(ctx context.Context, id uuid.UUID, name, icon string) (*domain.Agent, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.agentRepo.Update(ctx, &domain.Agent{ID: id, Name: name, Icon: icon}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, translateWriteError(err)
	}
	return s.GetAgent(ctx, id)
}

func (s *CatalogService) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	matches, err := s.matchRepo.ListByAgent(ctx, id)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		return domain.ErrAgentInUse
	}
	if err := s.agentRepo.Delete(ctx, id); err != nil {
		return notFound(err, domain.ErrAgentNotFound)
	}
	return nil
}

// Maps

func (s *CatalogService) CreateMap(ctx context.Context, name string) (*domain.Map, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	m := &domain.Map{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.mapRepo.Create(ctx, m); err != nil {
		return nil, translateWriteError(err)
	}
	return m, nil
}

func (s *CatalogService) GetMap(ctx context.Context, id uuid.UUID) (*domain.Map, error) {
	m, err := s.mapRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrMapNotFound)
	}
	return m, nil
}

func (s *CatalogService) ListMaps(ctx context.Context) ([]*domain.Map, error) {
	return s.mapRepo.List(ctx)
}

func (s *CatalogService) UpdateMap(ctx context.Context, id uuid.UUID, name string) (*domain.Map, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.mapRepo.Update(ctx, &domain.Map{ID: id, Name: name}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMapNotFound
		}
		return nil, translateWriteError(err)
	}
	return s.GetMap(ctx, id)
}

func (s *CatalogService) DeleteMap(ctx context.Context, id uuid.UUID) error {
	matches, err := s.matchRepo.ListByMap(ctx, id)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		return domain.ErrMapInUse
	}
	if err := s.mapRepo.Delete(ctx, id); err != nil {
		return notFound(err, domain.ErrMapNotFound)
	}
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

// notFound maps gorm's missing-row error onto the entity's domain error.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrNameTaken
	}
	return err
}
