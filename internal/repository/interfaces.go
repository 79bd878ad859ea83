package repository

import (
	"context"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	// GetWithPlayers loads the team together with its current roster.
	GetWithPlayers(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	// GetByIDsForUpdate row-locks the teams in ascending id order.
	GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	ListTopByWins(ctx context.Context, limit int) ([]*domain.Team, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddStats(ctx context.Context, id uuid.UUID, delta domain.TeamStats) error
	SubtractStats(ctx context.Context, id uuid.UUID, delta domain.TeamStats) error
	SetStats(ctx context.Context, id uuid.UUID, stats domain.TeamStats) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error)
	GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error)
	List(ctx context.Context) ([]*domain.Player, error)
	// UpdateProfile writes name and team membership, never stats.
	UpdateProfile(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddStats(ctx context.Context, id uuid.UUID, delta domain.PlayerStats) error
	SubtractStats(ctx context.Context, id uuid.UUID, delta domain.PlayerStats) error
	SetStats(ctx context.Context, id uuid.UUID, stats domain.PlayerStats) error
	ResetAllStats(ctx context.Context) (int64, error)
}

type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MapRepository interface {
	Create(ctx context.Context, m *domain.Map) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Map, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Map, error)
	List(ctx context.Context) ([]*domain.Map, error)
	Update(ctx context.Context, m *domain.Map) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MatchRepository lists matches in chronological order: created_at, then id.
type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	// GetByIDForUpdate locks the match row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	Update(ctx context.Context, match *domain.Match) error
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context) ([]domain.Match, error)
	ListByMap(ctx context.Context, mapID uuid.UUID) ([]domain.Match, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]domain.Match, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]domain.Match, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Match, error)
	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
}

type Repositories struct {
	User   UserRepository
	Team   TeamRepository
	Player PlayerRepository
	Agent  AgentRepository
	Map    MapRepository
	Match  MatchRepository
}

// Transactor runs fn against repositories bound to a single database
// transaction. A returned error rolls the transaction back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos *Repositories) error) error
}
