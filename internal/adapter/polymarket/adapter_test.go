package polymarket

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
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "false", r.URL.Query().Get("closed"))
		assert.Equal(t, "volume24hr", r.URL.Query().Get("order"))

		events := []model.PolymarketGammaEvent{
			{
				Slug: "ok",
				Markets: []model.PolymarketGammaMarket{{
					ID: "m1", Question: "q1", OutcomePrices: `["0.6","0.4"]`, Active: true,
				}},
			},
			{
				// 近端极值：过滤
				Slug: "noise",
				Markets: []model.PolymarketGammaMarket{{
					ID: "m2", Question: "q2", OutcomePrices: `["0.99","0.01"]`, Active: true,
				}},
			},
			{Slug: "empty"}, // 无盘口：跳过
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(events)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	markets, err := adapter.FetchMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "polymarket-m1", markets[0].ID)
}

func TestFetchMarketsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	_, err := adapter.FetchMarkets(context.Background())
	assert.Error(t, err)
}
