package manifold

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"MarketLens/internal/config"
	"MarketLens/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMarkets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search-markets", r.URL.Path)
		assert.Equal(t, "BINARY", r.URL.Query().Get("contractType"))
		assert.Equal(t, "liquidity", r.URL.Query().Get("sort"))
		assert.Equal(t, "open", r.URL.Query().Get("filter"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		raw := []model.ManifoldMarket{
			{ID: "ok", Question: "q1", Probability: floatPtr(0.6)},
			{ID: "hi", Question: "q2", Probability: floatPtr(0.99)}, // 近端极值过滤
			{ID: "lo", Question: "q3", Probability: floatPtr(0.01)},
			{ID: "noprob", Question: "q4"}, // probability缺失按0.5兜底，保留
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(raw)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL, PageLimit: 20}, logrus.New())
	assert.Equal(t, model.PlatformManifold, adapter.GetType())

	markets, err := adapter.FetchMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "manifold-ok", markets[0].ID)
	assert.Equal(t, "manifold-noprob", markets[1].ID)
	assert.InDelta(t, 0.5, markets[1].YesPrice, 1e-9)
}

func TestFetchMarketsDefaultLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 未配置page_limit时用默认50
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]model.ManifoldMarket{})
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	markets, err := adapter.FetchMarkets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestFetchMarketsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	_, err := adapter.FetchMarkets(context.Background())
	assert.Error(t, err)
}
