package polymarket

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
	defaultBaseURL = "https://gamma-api.polymarket.com"
	defaultLimit   = 50
)

// Adapter Polymarket适配器：单次请求Gamma /events（按24小时量降序），不翻页
type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *logrus.Logger
}

// NewAdapter 创建Polymarket适配器
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
func (p *Adapter) GetType() model.PlatformType {
	return model.PlatformPolymarket
}

// FetchMarkets 抓取活跃事件并归一化；近端极值（yes≤0.02或≥0.98）视为噪声过滤
func (p *Adapter) FetchMarkets(ctx context.Context) ([]model.UnifiedMarket, error) {
	events, err := p.fetchGammaEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取Polymarket事件失败: %w", err)
	}

	now := time.Now()
	markets := make([]model.UnifiedMarket, 0, len(events))
	for i := range events {
		m := NormalizeEvent(&events[i], now)
		if m == nil {
			continue
		}
		if m.YesPrice <= 0.02 || m.YesPrice >= 0.98 {
			continue
		}
		markets = append(markets, *m)
	}

	p.logger.WithFields(logrus.Fields{
		"events":  len(events),
		"markets": len(markets),
	}).Info("Polymarket抓取完成")
	return markets, nil
}

// fetchGammaEvents 请求Gamma /events（活跃、未关闭、未归档）
func (p *Adapter) fetchGammaEvents(ctx context.Context) ([]model.PolymarketGammaEvent, error) {
	baseURL := p.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limit := p.cfg.PageLimit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("active", "true")
	params.Set("closed", "false")
	params.Set("archived", "false")
	params.Set("order", "volume24hr")
	params.Set("ascending", "false")
	params.Set("limit", strconv.Itoa(limit))
	eventsURL := fmt.Sprintf("%s/events?%s", baseURL, params.Encode())

	var events []model.PolymarketGammaEvent
	err := p.limiter.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, eventsURL, nil)
		if err != nil {
			return err
		}
		resp, err := p.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				p.logger.Errorf("关闭Polymarket响应体失败: %v", err)
			}
		}()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("Gamma events状态码异常: %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&events)
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
