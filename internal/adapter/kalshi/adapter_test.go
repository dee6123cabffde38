package kalshi

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

func TestFetchMarketsPagination(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)
		assert.Equal(t, "/events", r.URL.Path)
		assert.Equal(t, "open", r.URL.Query().Get("status"))
		assert.Equal(t, "true", r.URL.Query().Get("with_nested_markets"))

		resp := model.KalshiEventsResponse{}
		if r.URL.Query().Get("cursor") == "" {
			// 第一页：正常事件+游标
			resp.Cursor = "page2"
			resp.Events = []model.KalshiEvent{{
				EventTicker: "FED",
				Title:       "Fed decision",
				Category:    "Economics",
				Markets: []model.KalshiMarket{{
					Ticker: "FED-CUT", Title: "Cut", YesBid: 60, Volume: 1000, Status: "open",
				}},
			}}
		} else {
			// 第二页：死盘（量和流动性均0）+噪声价（yes_bid=99），游标终止
			resp.Events = []model.KalshiEvent{
				{
					EventTicker: "DEAD",
					Title:       "Dead market",
					Markets:     []model.KalshiMarket{{Ticker: "DEAD-1", Title: "X", YesBid: 50, Status: "open"}},
				},
				{
					EventTicker: "NOISE",
					Title:       "Noise market",
					Markets:     []model.KalshiMarket{{Ticker: "NOISE-1", Title: "Y", YesBid: 99, Volume: 500, Status: "open"}},
				},
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	markets, err := adapter.FetchMarkets(context.Background())
	require.NoError(t, err)

	// 两页都拉了，游标为空后停止
	assert.Len(t, requests, 2)
	// 死盘和噪声价被过滤，只剩FED事件
	require.Len(t, markets, 1)
	assert.Equal(t, "kalshi-FED-CUT", markets[0].ID)
	// market继承事件分类
	assert.Equal(t, "Economics", markets[0].Category)
	assert.InDelta(t, 0.60, markets[0].YesPrice, 1e-9)
}

func TestFetchMarketsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := NewAdapter(&config.PlatformConfig{BaseURL: server.URL}, logrus.New())
	_, err := adapter.FetchMarkets(context.Background())
	assert.Error(t, err)
}
