package service

import (
	"fmt"
	"sort"

	"MarketLens/internal/model"
)

// minArbPriceDiff 低于该YES价差的平台对不值得比较
const minArbPriceDiff = 0.02

// FindArbitrageOpportunities 在每个匹配簇内枚举全部异平台两两组合，产出定价差机会，
// 按价差降序返回。套利成本=低价侧YES+对面实际NO（用实际NO而非1-yes理论补数，以计入真实价差）
func (s *MatchService) FindArbitrageOpportunities(matched []model.MatchedMarket) []model.ArbitrageOpportunity {
	var opportunities []model.ArbitrageOpportunity

	for _, match := range matched {
		for i := 0; i < len(match.Markets); i++ {
			for j := i + 1; j < len(match.Markets); j++ {
				a := match.Markets[i]
				b := match.Markets[j]
				if a.Platform == b.Platform {
					continue
				}

				diff := a.YesPrice - b.YesPrice
				if diff < 0 {
					diff = -diff
				}
				if diff <= minArbPriceDiff {
					continue
				}

				avgPrice := (a.YesPrice + b.YesPrice) / 2
				diffPercent := 0.0
				if avgPrice > 0 {
					diffPercent = diff / avgPrice
				}

				cheaper, other := a, b
				if b.YesPrice < a.YesPrice {
					cheaper, other = b, a
				}
				arbCost := cheaper.YesPrice + other.NoPrice
				hasArb := arbCost < 1
				arbROI := 0.0
				if hasArb {
					arbROI = (1 - arbCost) / arbCost
				}

				opportunities = append(opportunities, model.ArbitrageOpportunity{
					MarketA:          a,
					MarketB:          b,
					PriceDiff:        diff,
					PriceDiffPercent: diffPercent,
					GapSize:          gapSize(diffPercent),
					Direction:        fmt.Sprintf("%s → %s", cheaper.Platform, other.Platform),
					ArbCost:          arbCost,
					ArbROI:           arbROI,
					HasArb:           hasArb,
				})
			}
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].PriceDiff > opportunities[j].PriceDiff
	})
	return opportunities
}

// gapSize 按相对价差分档：<5%小、<10%中、其余大
func gapSize(diffPercent float64) model.GapSize {
	switch {
	case diffPercent < 0.05:
		return model.GapSmall
	case diffPercent < 0.1:
		return model.GapMedium
	default:
		return model.GapLarge
	}
}
