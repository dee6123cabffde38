package api

import (
	"net/http"
	"strconv"

	"MarketLens/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MarketHandler 提供给前端的市场查询接口
type MarketHandler struct {
	aggregation   *service.AggregationService
	marketService *service.MarketService
	logger        *logrus.Logger
}

// NewMarketHandler 创建 MarketHandler
func NewMarketHandler(aggregation *service.AggregationService, marketService *service.MarketService, logger *logrus.Logger) *MarketHandler {
	return &MarketHandler{
		aggregation:   aggregation,
		marketService: marketService,
		logger:        logger,
	}
}

// ListMarkets 市场列表接口（按快照过滤）
// GET /api/markets?platform=polymarket&status=active&search=fed&min_volume=1000&min_price=0.1&max_price=0.9
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	var filter service.MarketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	markets := h.marketService.ListMarkets(filter)
	c.JSON(http.StatusOK, gin.H{
		"total":   len(markets),
		"markets": markets,
	})
}

// GetMarketDetail 单市场详情（:id为统一市场ID，如 polymarket-123）
// GET /api/markets/:id
func (h *MarketHandler) GetMarketDetail(c *gin.Context) {
	id := c.Param("id")
	market, ok := h.marketService.GetMarket(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found: " + id})
		return
	}
	c.JSON(http.StatusOK, market)
}

// HotMarkets 热门市场（24小时量降序，可选平台过滤）
// GET /api/markets/hot?platform=kalshi&limit=5
func (h *MarketHandler) HotMarkets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	markets := h.marketService.HotMarkets(c.Query("platform"), limit)
	c.JSON(http.StatusOK, gin.H{"markets": markets})
}

// MarketMovers 异动市场（24小时量>0降序）
// GET /api/markets/movers?limit=10
func (h *MarketHandler) MarketMovers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	c.JSON(http.StatusOK, gin.H{"markets": h.marketService.MarketMovers(limit)})
}

// DiverseMarkets 跨平台多样化组合（每个活跃平台至少1个）
// GET /api/markets/diverse?limit=5&min_per_platform=1
func (h *MarketHandler) DiverseMarkets(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	minPerPlatform, _ := strconv.Atoi(c.DefaultQuery("min_per_platform", "1"))
	c.JSON(http.StatusOK, gin.H{"markets": h.marketService.DiverseMarkets(limit, minPerPlatform)})
}

// Status 各平台连接状态+全平台汇总统计
// GET /api/status
func (h *MarketHandler) Status(c *gin.Context) {
	snapshot := h.aggregation.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"statuses":  snapshot.Statuses,
		"stats":     h.marketService.Stats(),
		"fetchedAt": snapshot.FetchedAt,
	})
}

// Refresh 手动触发一轮聚合刷新（定时任务走同一路径）
// POST /api/refresh
func (h *MarketHandler) Refresh(c *gin.Context) {
	snapshot := h.aggregation.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"markets":  len(snapshot.Markets),
		"statuses": snapshot.Statuses,
	})
}
