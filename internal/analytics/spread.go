package analytics

import (
	"math"
	"sort"

	"MarketLens/internal/model"
)

// AnalyzeSpread 单市场隐含价差。|1-(yes+no)|即补数缺口（yes+no=1的平台下约为0）；
// 缺口可忽略时用 min(yes,no)×(1-min(liquidity/volume,1))×0.1 估算——
// 量大而流动性薄的市场实际摩擦更大
func AnalyzeSpread(market model.UnifiedMarket) model.SpreadAnalysis {
	complementGap := math.Abs(1 - (market.YesPrice + market.NoPrice))

	liquidityRatio := 0.0
	if market.Volume > 0 {
		liquidityRatio = market.Liquidity / market.Volume
	}
	if liquidityRatio > 1 {
		liquidityRatio = 1
	}

	impliedSpread := complementGap
	if complementGap <= 0.001 {
		impliedSpread = math.Min(market.YesPrice, market.NoPrice) * (1 - liquidityRatio) * 0.1
	}

	spreadPercent := 0.0
	if market.YesPrice > 0 {
		spreadPercent = impliedSpread / market.YesPrice
	}

	return model.SpreadAnalysis{
		Market:        market,
		BidAskSpread:  impliedSpread,
		SpreadPercent: spreadPercent,
	}
}

// RankBySpread 按隐含价差降序排名（rank从1开始）
func RankBySpread(markets []model.UnifiedMarket) []model.SpreadAnalysis {
	analyses := make([]model.SpreadAnalysis, 0, len(markets))
	for _, m := range markets {
		analyses = append(analyses, AnalyzeSpread(m))
	}
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].BidAskSpread > analyses[j].BidAskSpread
	})
	for i := range analyses {
		analyses[i].Rank = i + 1
	}
	return analyses
}
