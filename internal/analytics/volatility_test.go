package analytics

import (
	"testing"
	"time"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
)

func pts(prices ...float64) []model.PricePoint {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Unix()
	out := make([]model.PricePoint, 0, len(prices))
	for i, p := range prices {
		out = append(out, model.PricePoint{Timestamp: base + int64(i)*60, Price: p})
	}
	return out
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility(nil))
	assert.Equal(t, 0.0, Volatility([]float64{0.5}))
	assert.Equal(t, 0.0, Volatility([]float64{0.5, 0.5, 0.5}))

	// 收益率 {+1.0, -0.5}，均值0.25，总体标准差0.75
	assert.InDelta(t, 0.75, Volatility([]float64{1, 2, 1}), 1e-9)

	// 前价为0的收益率跳过，剩单个收益率时标准差为0
	assert.Equal(t, 0.0, Volatility([]float64{0, 1, 2}))
}

func TestRollingVolatility(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	prices := []model.PricePoint{
		{Timestamp: now.Add(-10 * 24 * time.Hour).Unix(), Price: 0.1}, // 窗口外
		{Timestamp: now.Add(-2 * 24 * time.Hour).Unix(), Price: 0.5},
		{Timestamp: now.Add(-1 * 24 * time.Hour).Unix(), Price: 0.5},
	}
	// 窗口内价格恒定，窗口外的0.1不参与
	assert.Equal(t, 0.0, RollingVolatility(prices, 7, now))
}

func TestShannonEntropy(t *testing.T) {
	assert.Equal(t, 0.0, ShannonEntropy(nil))
	// 全部落在同一桶
	assert.Equal(t, 0.0, ShannonEntropy(pts(0.55, 0.55, 0.55)))
	// 两桶均分：熵=1 bit
	assert.InDelta(t, 1.0, ShannonEntropy(pts(0.05, 0.05, 0.95, 0.95)), 1e-9)
	// 价格1.0钳到最后一桶，不越界
	assert.Equal(t, 0.0, ShannonEntropy(pts(1.0, 1.0)))
}

func TestMaxDrawdown(t *testing.T) {
	assert.Equal(t, 0.0, MaxDrawdown(pts(0.5)))
	// 峰值1.0跌到0.5：回撤50%，其后反弹不影响最大值
	assert.InDelta(t, 0.5, MaxDrawdown(pts(1.0, 0.5, 0.8)), 1e-9)
	// 峰值0.4跌到0.3：回撤25%
	assert.InDelta(t, 0.25, MaxDrawdown(pts(0.2, 0.4, 0.3)), 1e-9)
	// 单调上涨无回撤
	assert.Equal(t, 0.0, MaxDrawdown(pts(0.1, 0.2, 0.3)))
}

func TestAnalyzeVolatility(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	market := model.UnifiedMarket{ID: "kalshi-1", Platform: model.PlatformKalshi}
	prices := []model.PricePoint{
		{Timestamp: now.Add(-3 * 24 * time.Hour).Unix(), Price: 1.0},
		{Timestamp: now.Add(-2 * 24 * time.Hour).Unix(), Price: 0.5},
		{Timestamp: now.Add(-1 * 24 * time.Hour).Unix(), Price: 0.8},
	}

	metrics := AnalyzeVolatility(market, prices, now)
	assert.Equal(t, "kalshi-1", metrics.Market.ID)
	assert.InDelta(t, 0.5, metrics.MaxDrawdown, 1e-9)
	assert.Greater(t, metrics.Rolling7dVol, 0.0)
	assert.Greater(t, metrics.ShannonEntropy, 0.0)
}
