package postgres

import (
	"context"
	"encoding/json"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const chronological = "created_at ASC, id ASC"

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *matchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(match).Error
}

func (r *matchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Preload("Team1").
		Preload("Team2").
		Preload("Winner").
		First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	var match domain.Match
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&match, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(match).Error
}

func (r *matchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Match{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *matchRepository) List(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Preload("Team1").
		Preload("Team2").
		Preload("Winner").
		Order(chronological).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) ListByMap(ctx context.Context, mapID uuid.UUID) ([]domain.Match, error) {
	return r.listContaining(ctx, []map[string]interface{}{
		{"mapId": mapID},
	})
}

func (r *matchRepository) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]domain.Match, error) {
	return r.listContaining(ctx, []map[string]interface{}{
		{"stats": []map[string]interface{}{{"agentId": agentID}}},
	})
}

func (r *matchRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]domain.Match, error) {
	return r.listContaining(ctx, []map[string]interface{}{
		{"stats": []map[string]interface{}{{"playerId": playerID}}},
	})
}

func (r *matchRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Match, error) {
	var matches []domain.Match
	err := r.db.WithContext(ctx).
		Where("team1_id = ? OR team2_id = ?", teamID, teamID).
		Order(chronological).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Match{}).
		Where("team1_id = ? OR team2_id = ?", teamID, teamID).
		Count(&count).Error
	return count, err
}

// listContaining selects matches whose maps column contains the given jsonb
// fragment.
func (r *matchRepository) listContaining(ctx context.Context, fragment interface{}) ([]domain.Match, error) {
	raw, err := json.Marshal(fragment)
	if err != nil {
		return nil, err
	}

	var matches []domain.Match
	err = r.db.WithContext(ctx).
		Where("maps @> ?::jsonb", string(raw)).
		Order(chronological).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}
