package analytics

import (
	"math"

	"MarketLens/internal/model"
)

// HedgeMethod 对冲分配方式
type HedgeMethod string

const (
	HedgeEqual       HedgeMethod = "equal"       // 预算均分
	HedgeProbability HedgeMethod = "probability" // 按(1-yes)归一化加权
)

// EqualWeightHedge 预算均分到每个选中市场（全部买YES侧）；空选集返回零值结果
func EqualWeightHedge(markets []model.UnifiedMarket, totalBudget float64) model.HedgeResult {
	if len(markets) == 0 {
		return model.HedgeResult{}
	}

	perMarket := totalBudget / float64(len(markets))
	positions := make([]model.HedgePosition, 0, len(markets))
	for _, m := range markets {
		positions = append(positions, model.HedgePosition{
			Market:   m,
			Platform: m.Platform,
			Side:     model.HedgeYes,
			Weight:   1 / float64(len(markets)),
			Amount:   perMarket,
		})
	}
	return computeResult(positions, totalBudget)
}

// ProbWeightedHedge 按(1-yesPrice)占比分配预算：越便宜/越不被看好的结果拿到越多预算
// （每股赔付$1，单位资金买到的股数更多）
func ProbWeightedHedge(markets []model.UnifiedMarket, totalBudget float64) model.HedgeResult {
	if len(markets) == 0 {
		return model.HedgeResult{}
	}

	totalInverseProb := 0.0
	for _, m := range markets {
		totalInverseProb += 1 - m.YesPrice
	}

	positions := make([]model.HedgePosition, 0, len(markets))
	for _, m := range markets {
		weight := 1 / float64(len(markets))
		if totalInverseProb > 0 {
			weight = (1 - m.YesPrice) / totalInverseProb
		}
		positions = append(positions, model.HedgePosition{
			Market:   m,
			Platform: m.Platform,
			Side:     model.HedgeYes,
			Weight:   weight,
			Amount:   totalBudget * weight,
		})
	}
	return computeResult(positions, totalBudget)
}

// computeResult 汇总持仓的期望赔付与两种结算分支下的盈亏。
// YES结算：每$amount在价格p下买到amount/p股、每股赔付$1；NO结算镜像到noPrice
func computeResult(positions []model.HedgePosition, totalCost float64) model.HedgeResult {
	expectedPayout := 0.0
	profitIfYes := 0.0
	profitIfNo := 0.0

	for _, p := range positions {
		if p.Side == model.HedgeYes {
			if p.Market.YesPrice > 0 {
				expectedPayout += (p.Amount / p.Market.YesPrice) * p.Market.YesPrice
				profitIfYes += p.Amount/p.Market.YesPrice - p.Amount
			}
			profitIfNo += -p.Amount
		} else {
			profitIfYes += -p.Amount
			if p.Market.NoPrice > 0 {
				profitIfNo += p.Amount/p.Market.NoPrice - p.Amount
			}
		}
	}

	return model.HedgeResult{
		Positions:      positions,
		TotalCost:      totalCost,
		ExpectedPayout: expectedPayout,
		MaxLoss:        math.Min(profitIfYes, profitIfNo),
		ProfitIfYes:    profitIfYes,
		ProfitIfNo:     profitIfNo,
	}
}
