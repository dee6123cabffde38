package manifold

import (
	"testing"
	"time"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeMarket(t *testing.T) {
	m := &model.ManifoldMarket{
		ID:              "abc",
		Question:        "Will it rain tomorrow?",
		URL:             "https://manifold.markets/q/abc",
		Probability:     floatPtr(0.73),
		Volume:          1500,
		Volume24Hours:   200,
		TotalLiquidity:  300,
		CloseTime:       testNow.Add(24 * time.Hour).UnixMilli(),
		LastUpdatedTime: testNow.Add(-time.Hour).UnixMilli(),
		TextDescription: "desc",
	}

	u := NormalizeMarket(m, testNow)
	assert.Equal(t, "manifold-abc", u.ID)
	assert.Equal(t, model.PlatformManifold, u.Platform)
	assert.InDelta(t, 0.73, u.YesPrice, 1e-9)
	assert.InDelta(t, 0.27, u.NoPrice, 1e-9)
	assert.InDelta(t, 0.46, u.Spread, 1e-9)
	assert.Equal(t, model.StatusActive, u.Status)
	assert.Equal(t, "Other", u.Category)
	require.NotNil(t, u.EndDate)
	// lastUpdated用平台自己的更新时间
	assert.Equal(t, model.ISOTime(testNow.Add(-time.Hour)), u.LastUpdated)
}

func TestNormalizeMarketDefaults(t *testing.T) {
	// probability缺失按0.5兜底；无closeTime时endDate为nil
	u := NormalizeMarket(&model.ManifoldMarket{ID: "x"}, testNow)
	assert.InDelta(t, 0.5, u.YesPrice, 1e-9)
	assert.InDelta(t, 0.5, u.NoPrice, 1e-9)
	assert.Nil(t, u.EndDate)
	assert.Nil(t, u.ImageURL)
	assert.Equal(t, model.ISOTime(testNow), u.LastUpdated)
}

func TestNormalizeMarketStatus(t *testing.T) {
	resolved := NormalizeMarket(&model.ManifoldMarket{ID: "x", IsResolved: true}, testNow)
	assert.Equal(t, model.StatusResolved, resolved.Status)

	closed := NormalizeMarket(&model.ManifoldMarket{
		ID:        "x",
		CloseTime: testNow.Add(-time.Hour).UnixMilli(),
	}, testNow)
	assert.Equal(t, model.StatusClosed, closed.Status)
}
