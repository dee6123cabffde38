package api

import (
	"net/http"

	"MarketLens/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WatchHandler 自选关注与价格提醒接口
type WatchHandler struct {
	watchService  *service.WatchService
	marketService *service.MarketService
	logger        *logrus.Logger
}

// NewWatchHandler 创建 WatchHandler
func NewWatchHandler(watchService *service.WatchService, marketService *service.MarketService, logger *logrus.Logger) *WatchHandler {
	return &WatchHandler{
		watchService:  watchService,
		marketService: marketService,
		logger:        logger,
	}
}

// ListWatchlist 自选列表
// GET /api/watchlist
func (h *WatchHandler) ListWatchlist(c *gin.Context) {
	items, err := h.watchService.ListWatchlist(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type addWatchlistRequest struct {
	MarketID string `json:"marketId" binding:"required"`
}

// AddWatchlist 加入自选（市场必须在当前快照中存在）
// POST /api/watchlist
func (h *WatchHandler) AddWatchlist(c *gin.Context) {
	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	market, ok := h.marketService.GetMarket(req.MarketID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found: " + req.MarketID})
		return
	}

	item, err := h.watchService.AddWatchlist(c.Request.Context(), market)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveWatchlist 移出自选
// DELETE /api/watchlist/:marketId
func (h *WatchHandler) RemoveWatchlist(c *gin.Context) {
	if err := h.watchService.RemoveWatchlist(c.Request.Context(), c.Param("marketId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("marketId")})
}

// ListAlerts 提醒规则列表
// GET /api/alerts
func (h *WatchHandler) ListAlerts(c *gin.Context) {
	rules, err := h.watchService.ListAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type addAlertRequest struct {
	MarketID    string  `json:"marketId" binding:"required"`
	Condition   string  `json:"condition" binding:"required"` // above | below
	TargetPrice float64 `json:"targetPrice" binding:"required"`
}

// AddAlert 新建提醒规则，触发判定在每轮刷新后执行
// POST /api/alerts
func (h *WatchHandler) AddAlert(c *gin.Context) {
	var req addAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	market, ok := h.marketService.GetMarket(req.MarketID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "market not found: " + req.MarketID})
		return
	}

	rule, err := h.watchService.AddAlert(c.Request.Context(), market, req.Condition, req.TargetPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

// RemoveAlert 删除提醒规则
// DELETE /api/alerts/:ruleId
func (h *WatchHandler) RemoveAlert(c *gin.Context) {
	if err := h.watchService.RemoveAlert(c.Request.Context(), c.Param("ruleId")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("ruleId")})
}
