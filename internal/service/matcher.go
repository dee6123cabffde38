package service

import (
	"sort"

	"MarketLens/internal/model"
	"MarketLens/internal/utils/similarity"

	"github.com/sirupsen/logrus"
)

// similarityThreshold 判定"同一个现实问题"的相似度阈值
const similarityThreshold = 0.6

// MatchService 跨平台匹配：把不同平台上问同一件事的市场归成簇
type MatchService struct {
	logger *logrus.Logger
}

// NewMatchService 创建匹配服务
func NewMatchService(logger *logrus.Logger) *MatchService {
	return &MatchService{logger: logger}
}

// MatchAcrossPlatforms 种子星型聚类。按交易量降序取种子（流动性最好的措辞作锚点），
// 未分配的异平台候选与种子相似度≥阈值即入簇并标记已分配；簇规模≥2才输出。
// 候选只与种子比较、不与簇内其它成员比较，因此非种子成员彼此可能不相似；
// 每个市场至多归属一个簇
func (s *MatchService) MatchAcrossPlatforms(markets []model.UnifiedMarket) []model.MatchedMarket {
	sorted := make([]model.UnifiedMarket, len(markets))
	copy(sorted, markets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Volume > sorted[j].Volume
	})

	assigned := make(map[string]struct{}, len(sorted))
	var matched []model.MatchedMarket

	for i := range sorted {
		seed := &sorted[i]
		if _, ok := assigned[seed.ID]; ok {
			continue
		}

		group := []model.UnifiedMarket{*seed}
		assigned[seed.ID] = struct{}{}

		for j := range sorted {
			candidate := &sorted[j]
			if _, ok := assigned[candidate.ID]; ok {
				continue
			}
			if candidate.Platform == seed.Platform {
				continue
			}
			if similarity.Score(seed.Question, candidate.Question) >= similarityThreshold {
				group = append(group, *candidate)
				assigned[candidate.ID] = struct{}{}
			}
		}

		if len(group) < 2 {
			continue
		}

		minPrice, maxPrice := group[0].YesPrice, group[0].YesPrice
		for _, m := range group[1:] {
			if m.YesPrice < minPrice {
				minPrice = m.YesPrice
			}
			if m.YesPrice > maxPrice {
				maxPrice = m.YesPrice
			}
		}

		matched = append(matched, model.MatchedMarket{
			Question:     seed.Question,
			Markets:      group,
			Similarity:   similarity.Score(group[0].Question, group[1].Question),
			MaxPriceDiff: maxPrice - minPrice,
		})
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"markets": len(markets),
			"matches": len(matched),
		}).Info("跨平台匹配完成")
	}
	return matched
}
