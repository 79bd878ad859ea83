package postgres

import (
	"context"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type playerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *playerRepository {
	return &playerRepository{db: db}
}

func (r *playerRepository) Create(ctx context.Context, player *domain.Player) error {
	return r.db.WithContext(ctx).Omit("Team").Create(player).Error
}

func (r *playerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	var player domain.Player
	err := r.db.WithContext(ctx).Preload("Team").First(&player, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (r *playerRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error) {
	var players []*domain.Player
	if len(ids) == 0 {
		return players, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) List(ctx context.Context) ([]*domain.Player, error) {
	var players []*domain.Player
	err := r.db.WithContext(ctx).Preload("Team").Order("name ASC, id ASC").Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*domain.Player, error) {
	var players []*domain.Player
	if len(ids) == 0 {
		return players, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (r *playerRepository) UpdateProfile(ctx context.Context, player *domain.Player) error {
	result := r.db.WithContext(ctx).Model(&domain.Player{}).Where("id = ?", player.ID).Updates(map[string]interface{}{
		"name":    player.Name,
		"team_id": player.TeamID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *playerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Player{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *playerRepository) AddStats(ctx context.Context, id uuid.UUID, delta domain.PlayerStats) error {
	return r.db.WithContext(ctx).Model(&domain.Player{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_kills":   gorm.Expr("stats_kills + ?", delta.Kills),
		"stats_deaths":  gorm.Expr("stats_deaths + ?", delta.Deaths),
		"stats_assists": gorm.Expr("stats_assists + ?", delta.Assists),
	}).Error
}

// SubtractStats decrements the counters, flooring each at zero.
func (r *playerRepository) SubtractStats(ctx context.Context, id uuid.UUID, delta domain.PlayerStats) error {
	return r.db.WithContext(ctx).Model(&domain.Player{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_kills":   gorm.Expr("GREATEST(stats_kills - ?, 0)", delta.Kills),
		"stats_deaths":  gorm.Expr("GREATEST(stats_deaths - ?, 0)", delta.Deaths),
		"stats_assists": gorm.Expr("GREATEST(stats_assists - ?, 0)", delta.Assists),
	}).Error
}

func (r *playerRepository) SetStats(ctx context.Context, id uuid.UUID, stats domain.PlayerStats) error {
	return r.db.WithContext(ctx).Model(&domain.Player{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_kills":   stats.Kills,
		"stats_deaths":  stats.Deaths,
		"stats_assists": stats.Assists,
	}).Error
}

func (r *playerRepository) ResetAllStats(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Player{}).Where("1 = 1").Updates(map[string]interface{}{
		"stats_kills":   0,
		"stats_deaths":  0,
		"stats_assists": 0,
	})
	return result.RowsAffected, result.Error
}
