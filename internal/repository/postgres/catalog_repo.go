package postgres

import (
	"context"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type agentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *agentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *agentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	var agent domain.Agent
	err := r.db.WithContext(ctx).First(&agent, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *agentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	if len(ids) == 0 {
		return agents, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *agentRepository) List(ctx context.Context) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	err := r.db.WithContext(ctx).Order("name ASC").Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	result := r.db.WithContext(ctx).Model(&domain.Agent{}).Where("id = ?", agent.ID).Updates(map[string]interface{}{
		"name": agent.Name,
		"icon": agent.Icon,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *agentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Agent{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type mapRepository struct {
	db *gorm.DB
}

func NewMapRepository(db *gorm.DB) *mapRepository {
	return &mapRepository{db: db}
}

func (r *mapRepository) Create(ctx context.Context, m *domain.Map) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mapRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Map, error) {
	var m domain.Map
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mapRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Map, error) {
	var maps []*domain.Map
	if len(ids) == 0 {
		return maps, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&maps).Error
	if err != nil {
		return nil, err
	}
	return maps, nil
}

func (r *mapRepository) List(ctx context.Context) ([]*domain.Map, error) {
	var maps []*domain.Map
	err := r.db.WithContext(ctx).Order("name ASC").Find(&maps).Error
	if err != nil {
		return nil, err
	}
	return maps, nil
}

func (r *mapRepository) Update(ctx context.Context, m *domain.Map) error {
	result := r.db.WithContext(ctx).Model(&domain.Map{}).Where("id = ?", m.ID).Update("name", m.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mapRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Map{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
