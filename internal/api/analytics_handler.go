package api

import (
	"net/http"
	"time"

	"MarketLens/internal/analytics"
	"MarketLens/internal/model"
	"MarketLens/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnalyticsHandler 分析计算接口：价格序列由调用方提交，市场快照由服务端提供
type AnalyticsHandler struct {
	marketService *service.MarketService
	logger        *logrus.Logger
}

// NewAnalyticsHandler 创建 AnalyticsHandler
func NewAnalyticsHandler(marketService *service.MarketService, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		marketService: marketService,
		logger:        logger,
	}
}

type stabilizationRequest struct {
	PricePoints []model.PricePoint `json:"pricePoints" binding:"required"`
	WindowSize  int                `json:"windowSize"` // 缺省20
}

// Stabilization 价格企稳检测
// POST /api/analytics/stabilization
func (h *AnalyticsHandler) Stabilization(c *gin.Context) {
	var req stabilizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WindowSize <= 0 {
		req.WindowSize = analytics.DefaultStabilizationWindow
	}
	c.JSON(http.StatusOK, analytics.DetectStabilization(req.PricePoints, req.WindowSize))
}

type volatilityRequest struct {
	MarketID    string             `json:"marketId" binding:"required"`
	PricePoints []model.PricePoint `json:"pricePoints" binding:"required"`
}

// Volatility 波动率指标（7天滚动收益率波动、熵、最大回撤）
// POST /api/analytics/volatility
func (h *AnalyticsHandler) Volatility(c *gin.Context) {
	var req volatilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	market, ok := h.marketService.GetMarket(req.MarketID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found: " + req.MarketID})
		return
	}
	c.JSON(http.StatusOK, analytics.AnalyzeVolatility(market, req.PricePoints, time.Now()))
}

type timeBucketsRequest struct {
	PricePoints []model.PricePoint `json:"pricePoints" binding:"required"`
}

// TimeBuckets 时间分桶统计（1天/3天/1周/2周/1月）
// POST /api/analytics/timebuckets
func (h *AnalyticsHandler) TimeBuckets(c *gin.Context) {
	var req timeBucketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"buckets": analytics.TimeBuckets(req.PricePoints, time.Now())})
}

// Spread 按点差降序排名快照内全部市场
// GET /api/analytics/spread
func (h *AnalyticsHandler) Spread(c *gin.Context) {
	markets := h.marketService.ListMarkets(service.MarketFilter{})
	c.JSON(http.StatusOK, gin.H{"rankings": analytics.RankBySpread(markets)})
}

type hedgeRequest struct {
	MarketIDs []string `json:"marketIds" binding:"required"`
	Budget    float64  `json:"budget" binding:"required"`
	Method    string   `json:"method"` // equal | probability，缺省equal
}

// Hedge 对冲资金分配（等权或按概率加权）
// POST /api/analytics/hedge
func (h *AnalyticsHandler) Hedge(c *gin.Context) {
	var req hedgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Budget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "budget must be positive"})
		return
	}

	// 快照中找不到的ID静默跳过；全部缺失时返回零值结果
	markets := make([]model.UnifiedMarket, 0, len(req.MarketIDs))
	for _, id := range req.MarketIDs {
		if market, ok := h.marketService.GetMarket(id); ok {
			markets = append(markets, market)
		}
	}

	var result model.HedgeResult
	switch req.Method {
	case "", string(analytics.HedgeEqual):
		result = analytics.EqualWeightHedge(markets, req.Budget)
	case string(analytics.HedgeProbability):
		result = analytics.ProbWeightedHedge(markets, req.Budget)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported hedge method: " + req.Method})
		return
	}
	c.JSON(http.StatusOK, result)
}
