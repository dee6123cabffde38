package repository

import (
	"context"
	"time"

	"MarketLens/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WatchRepository 关注列表与提醒规则的持久化接口
type WatchRepository interface {
	ListWatchlist(ctx context.Context) ([]model.WatchlistItem, error)
	AddWatchlist(ctx context.Context, item *model.WatchlistItem) error
	RemoveWatchlist(ctx context.Context, marketID string) error

	ListAlerts(ctx context.Context) ([]model.AlertRule, error)
	ListPendingAlerts(ctx context.Context) ([]model.AlertRule, error)
	AddAlert(ctx context.Context, rule *model.AlertRule) error
	RemoveAlert(ctx context.Context, ruleUUID string) error
	MarkTriggered(ctx context.Context, ruleID uint64, snapshot datatypes.JSON) error
}

type watchRepository struct {
	db *gorm.DB
}

// NewWatchRepository 创建基于gorm的WatchRepository
func NewWatchRepository(db *gorm.DB) WatchRepository {
	return &watchRepository{db: db}
}

// ListWatchlist 按创建时间倒序返回全部关注条目
func (r *watchRepository) ListWatchlist(ctx context.Context) ([]model.WatchlistItem, error) {
	var items []model.WatchlistItem
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

// AddWatchlist 新增关注；同market_id重复收藏静默忽略
func (r *watchRepository) AddWatchlist(ctx context.Context, item *model.WatchlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "market_id"}}, DoNothing: true}).
		Create(item).Error
}

// RemoveWatchlist 按market_id删除关注
func (r *watchRepository) RemoveWatchlist(ctx context.Context, marketID string) error {
	return r.db.WithContext(ctx).Where("market_id = ?", marketID).Delete(&model.WatchlistItem{}).Error
}

// ListAlerts 按创建时间倒序返回全部提醒规则
func (r *watchRepository) ListAlerts(ctx context.Context) ([]model.AlertRule, error) {
	var rules []model.AlertRule
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rules).Error
	return rules, err
}

// ListPendingAlerts 返回尚未触发的提醒规则
func (r *watchRepository) ListPendingAlerts(ctx context.Context) ([]model.AlertRule, error) {
	var rules []model.AlertRule
	err := r.db.WithContext(ctx).Where("triggered = ?", false).Find(&rules).Error
	return rules, err
}

// AddAlert 新增提醒规则
func (r *watchRepository) AddAlert(ctx context.Context, rule *model.AlertRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// RemoveAlert 按rule_uuid删除提醒规则
func (r *watchRepository) RemoveAlert(ctx context.Context, ruleUUID string) error {
	return r.db.WithContext(ctx).Where("rule_uuid = ?", ruleUUID).Delete(&model.AlertRule{}).Error
}

// MarkTriggered 把规则标记为已触发并记录触发时的市场快照
func (r *watchRepository) MarkTriggered(ctx context.Context, ruleID uint64, snapshot datatypes.JSON) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.AlertRule{}).
		Where("id = ?", ruleID).
		Updates(map[string]interface{}{
			"triggered":    true,
			"triggered_at": &now,
			"snapshot":     &snapshot,
			"updated_at":   now,
		}).Error
}
