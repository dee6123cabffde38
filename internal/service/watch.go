package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"MarketLens/internal/model"
	"MarketLens/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const (
	WatchEventWatchlistChanged = "watchlist_changed" // 自选列表变更
	WatchEventAlertChanged     = "alert_changed"     // 提醒规则变更
	WatchEventAlertTriggered   = "alert_triggered"   // 提醒触发
)

// WatchEvent 关注/提醒存储的变更或触发通知
type WatchEvent struct {
	Kind   string               `json:"kind"` // 见上方事件常量
	Rule   *model.AlertRule     `json:"rule,omitempty"`
	Market *model.UnifiedMarket `json:"market,omitempty"`
}

// WatchService 关注列表与价格提醒：可观察的外部存储（核心聚合逻辑不依赖它）。
// 订阅者在每次变更与每次规则触发时收到回调
type WatchService struct {
	repo   repository.WatchRepository
	logger *logrus.Logger

	mu          sync.RWMutex
	subscribers []func(WatchEvent)
}

// NewWatchService 创建 WatchService
func NewWatchService(repo repository.WatchRepository, logger *logrus.Logger) *WatchService {
	return &WatchService{
		repo:   repo,
		logger: logger,
	}
}

// Subscribe 注册变更回调（进程内通知，订阅不持久化）
func (s *WatchService) Subscribe(fn func(WatchEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *WatchService) notify(ev WatchEvent) {
	s.mu.RLock()
	subs := make([]func(WatchEvent), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

// ListWatchlist 全部关注条目
func (s *WatchService) ListWatchlist(ctx context.Context) ([]model.WatchlistItem, error) {
	return s.repo.ListWatchlist(ctx)
}

// AddWatchlist 收藏一个统一市场
func (s *WatchService) AddWatchlist(ctx context.Context, market model.UnifiedMarket) (*model.WatchlistItem, error) {
	item := &model.WatchlistItem{
		ItemUUID: uuid.New().String(),
		MarketID: market.ID,
		Platform: string(market.Platform),
		Question: market.Question,
	}
	if err := s.repo.AddWatchlist(ctx, item); err != nil {
		return nil, fmt.Errorf("新增关注失败: %w", err)
	}
	s.notify(WatchEvent{Kind: WatchEventWatchlistChanged})
	return item, nil
}

// RemoveWatchlist 取消关注
func (s *WatchService) RemoveWatchlist(ctx context.Context, marketID string) error {
	if err := s.repo.RemoveWatchlist(ctx, marketID); err != nil {
		return fmt.Errorf("删除关注失败: %w", err)
	}
	s.notify(WatchEvent{Kind: WatchEventWatchlistChanged})
	return nil
}

// ListAlerts 全部提醒规则
func (s *WatchService) ListAlerts(ctx context.Context) ([]model.AlertRule, error) {
	return s.repo.ListAlerts(ctx)
}

// AddAlert 对某市场新增价格提醒（condition为above/below）
func (s *WatchService) AddAlert(ctx context.Context, market model.UnifiedMarket, condition string, targetPrice float64) (*model.AlertRule, error) {
	if condition != "above" && condition != "below" {
		return nil, fmt.Errorf("不支持的触发条件: %s", condition)
	}
	rule := &model.AlertRule{
		RuleUUID:    uuid.New().String(),
		MarketID:    market.ID,
		Platform:    string(market.Platform),
		Question:    market.Question,
		Condition:   condition,
		TargetPrice: targetPrice,
	}
	if err := s.repo.AddAlert(ctx, rule); err != nil {
		return nil, fmt.Errorf("新增提醒失败: %w", err)
	}
	s.notify(WatchEvent{Kind: WatchEventAlertChanged})
	return rule, nil
}

// RemoveAlert 删除提醒规则
func (s *WatchService) RemoveAlert(ctx context.Context, ruleUUID string) error {
	if err := s.repo.RemoveAlert(ctx, ruleUUID); err != nil {
		return fmt.Errorf("删除提醒失败: %w", err)
	}
	s.notify(WatchEvent{Kind: WatchEventAlertChanged})
	return nil
}

// EvaluateAlerts 用最新快照评估所有未触发规则；越过阈值的标记为已触发并通知订阅者。
// 单条规则的失败只记日志，不影响同批其它规则
func (s *WatchService) EvaluateAlerts(ctx context.Context, snapshot *Snapshot) {
	rules, err := s.repo.ListPendingAlerts(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("拉取未触发提醒规则失败")
		return
	}
	if len(rules) == 0 {
		return
	}

	marketByID := make(map[string]model.UnifiedMarket, len(snapshot.Markets))
	for _, m := range snapshot.Markets {
		marketByID[m.ID] = m
	}

	triggered := 0
	for i := range rules {
		rule := rules[i]
		market, ok := marketByID[rule.MarketID]
		if !ok {
			continue // 本轮快照中没有该市场（平台断连或已下架），下轮再看
		}

		hit := (rule.Condition == "above" && market.YesPrice >= rule.TargetPrice) ||
			(rule.Condition == "below" && market.YesPrice <= rule.TargetPrice)
		if !hit {
			continue
		}

		raw, err := json.Marshal(market)
		if err != nil {
			s.logger.WithError(err).WithField("rule", rule.RuleUUID).Warn("序列化触发快照失败")
			continue
		}
		if err := s.repo.MarkTriggered(ctx, rule.ID, datatypes.JSON(raw)); err != nil {
			s.logger.WithError(err).WithField("rule", rule.RuleUUID).Warn("标记提醒触发失败")
			continue
		}
		triggered++
		s.notify(WatchEvent{Kind: WatchEventAlertTriggered, Rule: &rule, Market: &market})
	}

	if triggered > 0 {
		s.logger.WithField("triggered", triggered).Info("本轮提醒评估完成")
	}
}
