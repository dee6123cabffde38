package analytics

import (
	"testing"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSpreadComplementGap(t *testing.T) {
	// yes+no偏离1时直接把缺口当价差
	analysis := AnalyzeSpread(model.UnifiedMarket{YesPrice: 0.6, NoPrice: 0.35})
	assert.InDelta(t, 0.05, analysis.BidAskSpread, 1e-9)
	assert.InDelta(t, 0.05/0.6, analysis.SpreadPercent, 1e-9)
}

func TestAnalyzeSpreadLiquidityFallback(t *testing.T) {
	// yes+no=1：走流动性估算 min(yes,no)×(1-liq/vol)×0.1
	analysis := AnalyzeSpread(model.UnifiedMarket{
		YesPrice:  0.6,
		NoPrice:   0.4,
		Volume:    1000,
		Liquidity: 500,
	})
	assert.InDelta(t, 0.4*0.5*0.1, analysis.BidAskSpread, 1e-9)

	// 流动性不低于交易量时估算为0
	deep := AnalyzeSpread(model.UnifiedMarket{
		YesPrice:  0.6,
		NoPrice:   0.4,
		Volume:    1000,
		Liquidity: 2000,
	})
	assert.Equal(t, 0.0, deep.BidAskSpread)

	// 无交易量时流动性占比按0处理
	thin := AnalyzeSpread(model.UnifiedMarket{YesPrice: 0.6, NoPrice: 0.4})
	assert.InDelta(t, 0.4*0.1, thin.BidAskSpread, 1e-9)
}

func TestRankBySpread(t *testing.T) {
	markets := []model.UnifiedMarket{
		{ID: "a", YesPrice: 0.6, NoPrice: 0.4, Volume: 1000, Liquidity: 900}, // 小摩擦
		{ID: "b", YesPrice: 0.6, NoPrice: 0.3},                              // 缺口0.1
		{ID: "c", YesPrice: 0.6, NoPrice: 0.35},                             // 缺口0.05
	}

	ranked := RankBySpread(markets)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].Market.ID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "c", ranked[1].Market.ID)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "a", ranked[2].Market.ID)
	assert.Equal(t, 3, ranked[2].Rank)
}
