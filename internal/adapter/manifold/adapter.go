package manifold

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
	defaultBaseURL = "https://api.manifold.markets/v0"
	defaultLimit   = 50
)

// Adapter Manifold适配器：单次请求/search-markets（二元、开放、按流动性排序）
type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *logrus.Logger
}

// NewAdapter 创建Manifold适配器
func NewAdapter(cfg *config.PlatformConfig, logger *logrus.Logger) interfaces.PlatformAdapter {
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}
	every := time.Duration(cfg.RateEveryMs) * time.Millisecond
	if every <= 0 {
		every = 100 * time.Millisecond
	}
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		limiter:    ratelimit.New(burst, every),
		logger:     logger,
	}
}

// GetType ========== 实现PlatformAdapter接口 ==========
func (a *Adapter) GetType() model.PlatformType {
	return model.PlatformManifold
}

// FetchMarkets 抓取开放的二元市场并归一化；近端极值视为噪声过滤
func (a *Adapter) FetchMarkets(ctx context.Context) ([]model.UnifiedMarket, error) {
	raw, err := a.fetchSearchMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取Manifold市场失败: %w", err)
	}

	now := time.Now()
	markets := make([]model.UnifiedMarket, 0, len(raw))
	for i := range raw {
		m := NormalizeMarket(&raw[i], now)
		if m.YesPrice <= 0.02 || m.YesPrice >= 0.98 {
			continue
		}
		markets = append(markets, m)
	}

	a.logger.WithFields(logrus.Fields{
		"raw":     len(raw),
		"markets": len(markets),
	}).Info("Manifold抓取完成")
	return markets, nil
}

// fetchSearchMarkets 请求/search-markets（BINARY、open、按流动性降序）
func (a *Adapter) fetchSearchMarkets(ctx context.Context) ([]model.ManifoldMarket, error) {
	baseURL := a.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	limit := a.cfg.PageLimit
	if limit <= 0 {
		limit = defaultLimit
	}

	params := url.Values{}
	params.Set("sort", "liquidity")
	params.Set("filter", "open")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("contractType", "BINARY")
	marketsURL := fmt.Sprintf("%s/search-markets?%s", baseURL, params.Encode())

	var raw []model.ManifoldMarket
	err := a.limiter.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, marketsURL, nil)
		if err != nil {
			return err
		}
		resp, err := a.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				a.logger.Errorf("关闭Manifold响应体失败: %v", err)
			}
		}()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("Manifold search-markets状态码异常: %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&raw)
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}
