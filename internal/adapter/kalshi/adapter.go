package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"MarketLens/internal/config"
	"MarketLens/internal/interfaces"
	"MarketLens/internal/model"
	"MarketLens/internal/utils/httpclient"
	"MarketLens/internal/utils/ratelimit"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL  = "https://api.elections.kalshi.com/trade-api/v2"
	defaultLimit    = 100
	defaultMaxPages = 3
)

// Adapter Kalshi适配器：/events游标翻页（≤3页顺序拉取，cursor为空提前结束），
// API默认按创建时间排序、活跃market分散在各页，需要翻页聚齐后按事件选代表腿
type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *logrus.Logger
}

// NewAdapter 创建Kalshi适配器
func NewAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}
	every := time.Duration(cfg.RateEveryMs) * time.Millisecond
	if every <= 0 {
		every = 50 * time.Millisecond
	}
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		limiter:    ratelimit.New(burst, every),
		logger:     logger,
	}
}

// GetType ========== 实现PlatformAdapter接口 ==========
func (k *Adapter) GetType() model.PlatformType {
	return model.PlatformKalshi
}

// eventEntry 按event_ticker聚合的market集合
type eventEntry struct {
	eventTitle string
	markets    []model.KalshiMarket
}

// FetchMarkets 翻页抓取事件、每个事件选代表腿后归一化。
// 过滤：近端极值噪声（yes≤0.02或≥0.98）以及量和流动性均为0的死盘
func (k *Adapter) FetchMarkets(ctx context.Context) ([]model.UnifiedMarket, error) {
	maxPages := k.cfg.MaxPages
	if maxPages <= 0 || maxPages > defaultMaxPages {
		maxPages = defaultMaxPages
	}

	// 按event_ticker聚合各页market，保持首见顺序
	entryByTicker := make(map[string]*eventEntry)
	var tickerOrder []string

	cursor := ""
	for page := 0; page < maxPages; page++ {
		data, err := k.fetchEventsPage(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("获取Kalshi事件失败: %w", err)
		}

		for _, event := range data.Events {
			entry, ok := entryByTicker[event.EventTicker]
			if !ok {
				entry = &eventEntry{eventTitle: event.Title}
				entryByTicker[event.EventTicker] = entry
				tickerOrder = append(tickerOrder, event.EventTicker)
			}
			for _, m := range event.Markets {
				// market缺分类时继承事件分类
				if event.Category != "" {
					m.Category = event.Category
				}
				entry.markets = append(entry.markets, m)
			}
		}

		cursor = data.Cursor
		if cursor == "" {
			break
		}
	}

	now := time.Now()
	markets := make([]model.UnifiedMarket, 0, len(tickerOrder))
	for _, ticker := range tickerOrder {
		entry := entryByTicker[ticker]
		best := representativeMarket(entry.eventTitle, entry.markets)
		if best == nil {
			continue
		}
		m := NormalizeMarket(best, now)
		if m.YesPrice <= 0.02 || m.YesPrice >= 0.98 {
			continue
		}
		if m.Volume <= 0 && m.Liquidity <= 0 {
			continue
		}
		markets = append(markets, m)
	}

	k.logger.WithFields(logrus.Fields{
		"events":  len(tickerOrder),
		"markets": len(markets),
	}).Info("Kalshi抓取完成")
	return markets, nil
}

// fetchEventsPage 拉取单页事件（with_nested_markets=true，仅open状态）
func (k *Adapter) fetchEventsPage(ctx context.Context, cursor string) (*model.KalshiEventsResponse, error) {
	baseURL := k.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limit := k.cfg.PageLimit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("status", "open")
	params.Set("with_nested_markets", "true")
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	eventsURL := fmt.Sprintf("%s/events?%s", baseURL, params.Encode())

	var data model.KalshiEventsResponse
	err := k.limiter.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, eventsURL, nil)
		if err != nil {
			return err
		}
		resp, err := k.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				k.logger.Errorf("关闭Kalshi响应体失败: %v", err)
			}
		}()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("Kalshi events状态码异常: %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&data)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}
