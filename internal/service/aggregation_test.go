package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"MarketLens/internal/adapter"
	"MarketLens/internal/config"
	"MarketLens/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPlatformServers 起4个平台的mock服务并组装指向它们的配置。
// kalshi故意返回500以验证单平台故障隔离
func newMockPlatformServers(t *testing.T) (*config.Config, func()) {
	t.Helper()

	polymarketSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.PolymarketGammaEvent{{
			Slug: "e1",
			Markets: []model.PolymarketGammaMarket{{
				ID: "p1", Question: "Fed cut in September?", OutcomePrices: `["0.6","0.4"]`,
				Volume: "1000", Active: true,
			}},
		}})
	}))

	kalshiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	manifoldSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prob := 0.55
		_ = json.NewEncoder(w).Encode([]model.ManifoldMarket{{
			ID: "m1", Question: "Fed cuts in September", Probability: &prob, Volume: 500,
		}})
	}))

	opinionSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.OpinionAPIResponse{
			Result: model.OpinionTopicList{List: []model.OpinionTopic{{
				TopicID: 9, Title: "BNB above $1000?", YesBuyPrice: "0.3", Volume: "200",
			}}},
		})
	}))

	cfg := &config.Config{Platforms: map[string]config.PlatformConfig{
		"polymarket": {BaseURL: polymarketSrv.URL},
		"kalshi":     {BaseURL: kalshiSrv.URL},
		"manifold":   {BaseURL: manifoldSrv.URL},
		"opinion":    {BaseURL: opinionSrv.URL, MaxPages: 1},
	}}
	cleanup := func() {
		polymarketSrv.Close()
		kalshiSrv.Close()
		manifoldSrv.Close()
		opinionSrv.Close()
	}
	return cfg, cleanup
}

func TestRefreshAllSettle(t *testing.T) {
	cfg, cleanup := newMockPlatformServers(t)
	defer cleanup()

	logger := logrus.New()
	registry := adapter.NewPlatformRegistry(cfg, logger)
	svc := NewAggregationService(registry, logger)

	snapshot := svc.Refresh(context.Background())

	// 无论成败每个平台恒有一条状态，顺序与AllPlatforms一致
	require.Len(t, snapshot.Statuses, len(model.AllPlatforms))
	byPlatform := map[model.PlatformType]model.PlatformStatus{}
	for _, st := range snapshot.Statuses {
		byPlatform[st.Platform] = st
	}

	assert.True(t, byPlatform[model.PlatformPolymarket].Connected)
	assert.Equal(t, 1, byPlatform[model.PlatformPolymarket].MarketCount)
	assert.InDelta(t, 1000.0, byPlatform[model.PlatformPolymarket].TotalVolume, 1e-9)

	// Kalshi故障：断连但不影响其余平台
	assert.False(t, byPlatform[model.PlatformKalshi].Connected)
	assert.NotEmpty(t, byPlatform[model.PlatformKalshi].Error)

	assert.True(t, byPlatform[model.PlatformManifold].Connected)
	assert.True(t, byPlatform[model.PlatformOpinion].Connected)

	// 成功平台的市场并集
	assert.Len(t, snapshot.Markets, 3)
}

func TestSnapshotBeforeRefresh(t *testing.T) {
	cfg, cleanup := newMockPlatformServers(t)
	defer cleanup()

	logger := logrus.New()
	svc := NewAggregationService(adapter.NewPlatformRegistry(cfg, logger), logger)

	// 从未刷新过：空快照而非nil
	snapshot := svc.Snapshot()
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Markets)
	assert.Empty(t, snapshot.Statuses)
}

func TestSnapshotReturnsLatest(t *testing.T) {
	cfg, cleanup := newMockPlatformServers(t)
	defer cleanup()

	logger := logrus.New()
	svc := NewAggregationService(adapter.NewPlatformRegistry(cfg, logger), logger)

	refreshed := svc.Refresh(context.Background())
	assert.Equal(t, refreshed, svc.Snapshot())
}
