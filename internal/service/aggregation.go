package service

import (
	"context"
	"sync"
	"time"

	"MarketLens/internal/adapter"
	"MarketLens/internal/model"

	"github.com/sirupsen/logrus"
)

// Snapshot 一轮聚合抓取的不可变结果：成功平台市场的并集+每平台一条状态（恒4条）
type Snapshot struct {
	Markets   []model.UnifiedMarket  `json:"markets"`
	Statuses  []model.PlatformStatus `json:"statuses"`
	FetchedAt time.Time              `json:"fetchedAt"`
}

// AggregationService 聚合编排：4个平台并发抓取，单平台失败彼此隔离（all-settle），
// 最新快照缓存在内存中、整轮完成后原子替换
type AggregationService struct {
	registry *adapter.PlatformRegistry
	logger   *logrus.Logger

	mu     sync.RWMutex
	latest *Snapshot
}

// NewAggregationService 创建聚合服务
func NewAggregationService(registry *adapter.PlatformRegistry, logger *logrus.Logger) *AggregationService {
	return &AggregationService{
		registry: registry,
		logger:   logger,
	}
}

// platformResult 单平台抓取结果（markets与err二选一）
type platformResult struct {
	platform model.PlatformType
	markets  []model.UnifiedMarket
	err      error
}

// Refresh 执行一轮抓取并替换缓存快照。
// 每个平台的失败只体现为一条断连状态，不中断也不污染其它平台的结果
func (s *AggregationService) Refresh(ctx context.Context) *Snapshot {
	results := make([]platformResult, len(model.AllPlatforms))

	var wg sync.WaitGroup
	for i, platform := range model.AllPlatforms {
		wg.Add(1)
		go func(idx int, p model.PlatformType) {
			defer wg.Done()
			adapterIns, err := s.registry.GetAdapter(p)
			if err != nil {
				results[idx] = platformResult{platform: p, err: err}
				return
			}
			markets, err := adapterIns.FetchMarkets(ctx)
			results[idx] = platformResult{platform: p, markets: markets, err: err}
		}(i, platform)
	}
	wg.Wait()

	now := time.Now()
	checked := model.ISOTime(now)
	snapshot := &Snapshot{FetchedAt: now}

	for _, r := range results {
		if r.err != nil {
			s.logger.WithError(r.err).WithField("platform", r.platform).Warn("平台抓取失败，标记为断连")
			snapshot.Statuses = append(snapshot.Statuses, model.PlatformStatus{
				Platform:    r.platform,
				Connected:   false,
				LastChecked: checked,
				Error:       r.err.Error(),
			})
			continue
		}

		totalVolume := 0.0
		for _, m := range r.markets {
			totalVolume += m.Volume
		}
		snapshot.Markets = append(snapshot.Markets, r.markets...)
		snapshot.Statuses = append(snapshot.Statuses, model.PlatformStatus{
			Platform:    r.platform,
			Connected:   true,
			MarketCount: len(r.markets),
			TotalVolume: totalVolume,
			LastChecked: checked,
		})
	}

	s.mu.Lock()
	s.latest = snapshot
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"markets":   len(snapshot.Markets),
		"platforms": len(snapshot.Statuses),
	}).Info("聚合刷新完成")
	return snapshot
}

// Snapshot 返回最新快照；刷新进行中返回上一轮结果，从未刷新过返回空快照
func (s *AggregationService) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return &Snapshot{}
	}
	return s.latest
}
