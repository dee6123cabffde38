package opinion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"MarketLens/internal/config"
	"MarketLens/internal/interfaces"
	"MarketLens/internal/model"
	"MarketLens/internal/utils/httpclient"
	"MarketLens/internal/utils/ratelimit"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL     = "https://proxy.opinion.trade:8443/api/bsc/api/v2"
	defaultPerPage     = 20
	defaultMaxPages    = 3
	maxPagesCap        = 5
	defaultPageTimeout = 8 * time.Second
)

// Adapter Opinion适配器：多页并发抓取（≤5页），单页允许失败（只合并成功页），
// 合并后按topicId去重（保留首次出现）
type Adapter struct {
	cfg        *config.PlatformConfig
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	logger     *logrus.Logger
}

// NewAdapter 创建Opinion适配器
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
func (a *Adapter) GetType() model.PlatformType {
	return model.PlatformOpinion
}

// FetchMarkets 并发抓取各页话题、去重后压平归一化；近端极值视为噪声过滤
func (a *Adapter) FetchMarkets(ctx context.Context) ([]model.UnifiedMarket, error) {
	topics, err := a.fetchTopics(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取Opinion话题失败: %w", err)
	}

	now := time.Now()
	all := NormalizeTopics(topics, now)
	markets := make([]model.UnifiedMarket, 0, len(all))
	for _, m := range all {
		if m.YesPrice <= 0.02 || m.YesPrice >= 0.98 {
			continue
		}
		markets = append(markets, m)
	}

	a.logger.WithFields(logrus.Fields{
		"topics":  len(topics),
		"markets": len(markets),
	}).Info("Opinion抓取完成")
	return markets, nil
}

// fetchTopics 页1..N并发请求；单页失败只记日志不影响其它页；按topicId去重（页序优先）
func (a *Adapter) fetchTopics(ctx context.Context) ([]model.OpinionTopic, error) {
	pageCount := a.cfg.MaxPages
	if pageCount <= 0 {
		pageCount = defaultMaxPages
	}
	if pageCount > maxPagesCap {
		pageCount = maxPagesCap
	}
	perPage := a.cfg.PageLimit
	if perPage <= 0 || perPage > defaultPerPage {
		perPage = defaultPerPage
	}

	// 每页独立goroutine，结果按页号落位以保持去重顺序稳定
	pages := make([][]model.OpinionTopic, pageCount)
	var wg sync.WaitGroup
	for i := 0; i < pageCount; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			topics, err := a.fetchPage(ctx, idx+1, perPage)
			if err != nil {
				a.logger.WithError(err).WithField("page", idx+1).Warn("Opinion单页抓取失败，跳过该页")
				return
			}
			pages[idx] = topics
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]struct{})
	var merged []model.OpinionTopic
	for _, pageTopics := range pages {
		for _, t := range pageTopics {
			if _, dup := seen[t.TopicID]; dup {
				continue
			}
			seen[t.TopicID] = struct{}{}
			merged = append(merged, t)
		}
	}

	// 全部页都失败且一个话题都没有时视为平台级故障
	if len(merged) == 0 {
		allFailed := true
		for _, pageTopics := range pages {
			if pageTopics != nil {
				allFailed = false
				break
			}
		}
		if allFailed {
			return nil, fmt.Errorf("全部%d页均抓取失败", pageCount)
		}
	}
	return merged, nil
}

// fetchPage 抓取单页话题，带单页超时（默认8秒）；errno非0视为该页无数据
func (a *Adapter) fetchPage(ctx context.Context, page, limit int) ([]model.OpinionTopic, error) {
	baseURL := a.cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	pageTimeout := defaultPageTimeout
	if a.cfg.PageTimeout > 0 {
		pageTimeout = time.Duration(a.cfg.PageTimeout) * time.Second
	}

	params := url.Values{}
	params.Set("sortBy", "5")
	params.Set("chainId", "56")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("status", "2")
	params.Set("isShow", "1")
	params.Set("topicType", "2")
	params.Set("page", strconv.Itoa(page))
	params.Set("indicatorType", "0")
	topicURL := fmt.Sprintf("%s/topic?%s", baseURL, params.Encode())

	pageCtx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	var data model.OpinionAPIResponse
	err := a.limiter.Do(pageCtx, func() error {
		req, err := http.NewRequestWithContext(pageCtx, http.MethodGet, topicURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		resp, err := a.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				a.logger.Errorf("关闭Opinion响应体失败: %v", err)
			}
		}()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("Opinion topic状态码异常: %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&data)
	})
	if err != nil {
		return nil, err
	}
	if data.Errno != 0 {
		// 空页而非故障，返回非nil空切片以免被当成失败页
		return []model.OpinionTopic{}, nil
	}
	if data.Result.List == nil {
		return []model.OpinionTopic{}, nil
	}
	return data.Result.List, nil
}
