package postgres

import (
	"context"

	"github.com/dom/esports-stats-ledger/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *teamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Omit("Players").Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) GetWithPlayers(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	err := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetByIDsForUpdate locks the rows in ascending id order. Missing ids are
// skipped, so callers compare lengths.
func (r *teamRepository) GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]*domain.Team, error) {
	var teams []*domain.Team
	if len(ids) == 0 {
		return teams, nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	var teams []*domain.Team
	err := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("name ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) ListTopByWins(ctx context.Context, limit int) ([]*domain.Team, error) {
	var teams []*domain.Team
	err := r.db.WithContext(ctx).
		Order("stats_wins DESC, id ASC").
		Limit(limit).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	result := r.db.WithContext(ctx).Model(&domain.Team{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete unassigns the team's players and removes the team.
func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Player{}).Where("team_id = ?", id).Update("team_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Team{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddStats increments the counters in place so concurrent writers never lose
// each other's updates.
func (r *teamRepository) AddStats(ctx context.Context, id uuid.UUID, delta domain.TeamStats) error {
	return r.db.WithContext(ctx).Model(&domain.Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_wins":            gorm.Expr("stats_wins + ?", delta.Wins),
		"stats_losses":          gorm.Expr("stats_losses + ?", delta.Losses),
		"stats_total_games":     gorm.Expr("stats_total_games + ?", delta.TotalGames),
		"stats_points_scored":   gorm.Expr("stats_points_scored + ?", delta.PointsScored),
		"stats_points_conceded": gorm.Expr("stats_points_conceded + ?", delta.PointsConceded),
	}).Error
}

// SubtractStats decrements the counters, flooring each at zero.
func (r *teamRepository) SubtractStats(ctx context.Context, id uuid.UUID, delta domain.TeamStats) error {
	return r.db.WithContext(ctx).Model(&domain.Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_wins":            gorm.Expr("GREATEST(stats_wins - ?, 0)", delta.Wins),
		"stats_losses":          gorm.Expr("GREATEST(stats_losses - ?, 0)", delta.Losses),
		"stats_total_games":     gorm.Expr("GREATEST(stats_total_games - ?, 0)", delta.TotalGames),
		"stats_points_scored":   gorm.Expr("GREATEST(stats_points_scored - ?, 0)", delta.PointsScored),
		"stats_points_conceded": gorm.Expr("GREATEST(stats_points_conceded - ?, 0)", delta.PointsConceded),
	}).Error
}

func (r *teamRepository) SetStats(ctx context.Context, id uuid.UUID, stats domain.TeamStats) error {
	return r.db.WithContext(ctx).Model(&domain.Team{}).Where("id = ?", id).Updates(map[string]interface{}{
		"stats_wins":            stats.Wins,
		"stats_losses":          stats.Losses,
		"stats_total_games":     stats.TotalGames,
		"stats_points_scored":   stats.PointsScored,
		"stats_points_conceded": stats.PointsConceded,
	}).Error
}
