package service

import (
	"sort"
	"strings"

	"MarketLens/internal/model"

	"github.com/sirupsen/logrus"
)

// MarketFilter 市场列表过滤条件（零值字段不过滤）
type MarketFilter struct {
	Platform  string  `form:"platform"`   // 平台名
	Status    string  `form:"status"`     // active/closed/resolved
	Search    string  `form:"search"`     // 问题文本子串（不区分大小写）
	MinVolume float64 `form:"min_volume"` // 最低总交易量
	MinPrice  float64 `form:"min_price"`  // YES价下界
	MaxPrice  float64 `form:"max_price"`  // YES价上界（0表示不限）
}

// MarketService 基于内存快照的市场视图服务（过滤/热门/多样化/异动/汇总）
type MarketService struct {
	aggregation *AggregationService
	logger      *logrus.Logger
}

// NewMarketService 创建 MarketService
func NewMarketService(aggregation *AggregationService, logger *logrus.Logger) *MarketService {
	return &MarketService{
		aggregation: aggregation,
		logger:      logger,
	}
}

// ListMarkets 按条件过滤当前快照中的市场
func (s *MarketService) ListMarkets(filter MarketFilter) []model.UnifiedMarket {
	snapshot := s.aggregation.Snapshot()
	result := make([]model.UnifiedMarket, 0, len(snapshot.Markets))
	search := strings.ToLower(filter.Search)

	for _, m := range snapshot.Markets {
		if filter.Platform != "" && string(m.Platform) != filter.Platform {
			continue
		}
		if filter.Status != "" && string(m.Status) != filter.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Question), search) {
			continue
		}
		if m.Volume < filter.MinVolume {
			continue
		}
		if m.YesPrice < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && m.YesPrice > filter.MaxPrice {
			continue
		}
		result = append(result, m)
	}
	return result
}

// GetMarket 按统一ID取单个市场；不存在返回false
func (s *MarketService) GetMarket(id string) (model.UnifiedMarket, bool) {
	for _, m := range s.aggregation.Snapshot().Markets {
		if m.ID == id {
			return m, true
		}
	}
	return model.UnifiedMarket{}, false
}

// HotMarkets 按24小时量降序取前limit个（可按平台过滤）
func (s *MarketService) HotMarkets(platform string, limit int) []model.UnifiedMarket {
	if limit <= 0 {
		limit = 5
	}
	snapshot := s.aggregation.Snapshot()

	filtered := make([]model.UnifiedMarket, 0, len(snapshot.Markets))
	for _, m := range snapshot.Markets {
		if platform != "" && string(m.Platform) != platform {
			continue
		}
		filtered = append(filtered, m)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Volume24h > filtered[j].Volume24h
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// DiverseMarkets 跨平台多样化组合：先保证每个活跃平台至少minPerPlatform个，
// 剩余名额按24小时量补齐，整体按24小时量降序
func (s *MarketService) DiverseMarkets(limit, minPerPlatform int) []model.UnifiedMarket {
	if limit <= 0 {
		limit = 5
	}
	if minPerPlatform <= 0 {
		minPerPlatform = 1
	}
	markets := s.aggregation.Snapshot().Markets

	byPlatform := make(map[model.PlatformType][]model.UnifiedMarket)
	var platformOrder []model.PlatformType
	for _, m := range markets {
		if m.Volume24h <= 0 {
			continue
		}
		if _, ok := byPlatform[m.Platform]; !ok {
			platformOrder = append(platformOrder, m.Platform)
		}
		byPlatform[m.Platform] = append(byPlatform[m.Platform], m)
	}

	var result []model.UnifiedMarket
	used := make(map[string]struct{})

	// 第一轮：每个平台取24小时量最高的minPerPlatform个
	for _, p := range platformOrder {
		top := byPlatform[p]
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].Volume24h > top[j].Volume24h
		})
		for i := 0; i < minPerPlatform && i < len(top); i++ {
			result = append(result, top[i])
			used[top[i].ID] = struct{}{}
		}
	}

	// 第二轮：剩余名额按24小时量补齐
	var rest []model.UnifiedMarket
	for _, m := range markets {
		if m.Volume24h <= 0 {
			continue
		}
		if _, ok := used[m.ID]; ok {
			continue
		}
		rest = append(rest, m)
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Volume24h > rest[j].Volume24h
	})
	for _, m := range rest {
		if len(result) >= limit {
			break
		}
		result = append(result, m)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Volume24h > result[j].Volume24h
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// MarketMovers 24小时量>0的市场按24小时量降序取前limit个
func (s *MarketService) MarketMovers(limit int) []model.UnifiedMarket {
	if limit <= 0 {
		limit = 10
	}
	var movers []model.UnifiedMarket
	for _, m := range s.aggregation.Snapshot().Markets {
		if m.Volume24h > 0 {
			movers = append(movers, m)
		}
	}
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].Volume24h > movers[j].Volume24h
	})
	if len(movers) > limit {
		movers = movers[:limit]
	}
	return movers
}

// Stats 全平台汇总统计
func (s *MarketService) Stats() model.AggregateStats {
	markets := s.aggregation.Snapshot().Markets
	stats := model.AggregateStats{
		TotalMarkets:      len(markets),
		PlatformBreakdown: make(map[model.PlatformType]int),
	}

	spreadSum := 0.0
	for _, m := range markets {
		stats.TotalVolume += m.Volume
		spreadSum += m.Spread
		stats.PlatformBreakdown[m.Platform]++
	}
	if len(markets) > 0 {
		stats.AvgSpread = spreadSum / float64(len(markets))
	}
	return stats
}
