package api

import (
	"net/http"

	"MarketLens/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CompareHandler 跨平台对比接口（匹配簇+套利机会）
type CompareHandler struct {
	aggregation  *service.AggregationService
	matchService *service.MatchService
	logger       *logrus.Logger
}

// NewCompareHandler 创建 CompareHandler
func NewCompareHandler(aggregation *service.AggregationService, matchService *service.MatchService, logger *logrus.Logger) *CompareHandler {
	return &CompareHandler{
		aggregation:  aggregation,
		matchService: matchService,
		logger:       logger,
	}
}

// Matches 跨平台相似市场簇（每簇≥2个平台）
// GET /api/compare/matches
func (h *CompareHandler) Matches(c *gin.Context) {
	snapshot := h.aggregation.Snapshot()
	matched := h.matchService.MatchAcrossPlatforms(snapshot.Markets)
	c.JSON(http.StatusOK, gin.H{
		"total":   len(matched),
		"matches": matched,
	})
}

// Arbitrage 套利机会列表（基于匹配簇的两两价差）
// GET /api/compare/arbitrage
func (h *CompareHandler) Arbitrage(c *gin.Context) {
	snapshot := h.aggregation.Snapshot()
	matched := h.matchService.MatchAcrossPlatforms(snapshot.Markets)
	opportunities := h.matchService.FindArbitrageOpportunities(matched)
	c.JSON(http.StatusOK, gin.H{
		"total":         len(opportunities),
		"opportunities": opportunities,
	})
}
