package model

import "time"

// PlatformType 平台类型枚举
type PlatformType string

const (
	PlatformPolymarket PlatformType = "polymarket"
	PlatformKalshi     PlatformType = "kalshi"
	PlatformManifold   PlatformType = "manifold"
	PlatformOpinion    PlatformType = "opinion"
)

// AllPlatforms 固定顺序的全部平台（聚合结果每个平台恒有一条状态记录）
var AllPlatforms = []PlatformType{
	PlatformPolymarket,
	PlatformKalshi,
	PlatformManifold,
	PlatformOpinion,
}

// MarketStatus 统一的市场状态
type MarketStatus string

const (
	StatusActive   MarketStatus = "active"
	StatusClosed   MarketStatus = "closed"
	StatusResolved MarketStatus = "resolved"
)

// UnifiedMarket 统一的二元预测市场模型（抹平各平台差异）
// 每轮抓取重新构建，构建后不再修改；多选项事件在进入该模型前已压平为单个代表性二元腿
type UnifiedMarket struct {
	ID          string          `json:"id"`          // 全局唯一ID（平台前缀+原始ID）
	Platform    PlatformType    `json:"platform"`    // 来源平台
	PlatformID  string          `json:"platformId"`  // 平台原生ID
	Question    string          `json:"question"`    // 市场问题文本
	Description string          `json:"description"` // 描述
	Category    string          `json:"category"`    // 分类
	Status      MarketStatus    `json:"status"`      // 状态：active/closed/resolved
	YesPrice    float64         `json:"yesPrice"`    // YES隐含概率 [0,1]
	NoPrice     float64         `json:"noPrice"`     // NO隐含概率 [0,1]（与YES不必和为1）
	Spread      float64         `json:"spread"`      // 价差（各平台估算口径不同）
	Volume      float64         `json:"volume"`      // 总交易量（美元）
	Volume24h   float64         `json:"volume24h"`   // 24小时交易量（美元）
	Liquidity   float64         `json:"liquidity"`   // 流动性（美元）
	EndDate     *string         `json:"endDate"`     // 截止时间（ISO字符串，可空）
	ImageURL    *string         `json:"imageUrl"`    // 封面图（可空）
	URL         string          `json:"url"`         // 平台详情页链接
	LastUpdated string          `json:"lastUpdated"` // 本轮抓取时间（ISO字符串）
	Outcomes    []MarketOutcome `json:"outcomes"`    // 固定两项：Yes/No
}

// MarketOutcome 单个结果腿（Yes或No）
type MarketOutcome struct {
	Name    string  `json:"name"`              // 选项名称
	Price   float64 `json:"price"`             // 价格/概率
	TokenID string  `json:"tokenId,omitempty"` // 交易所侧token/合约ID（仅部分平台有）
}

// PricePoint 单个历史价格点（时间戳为秒）
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// PlatformStatus 单个平台的连接状态（每轮聚合恒为4条）
type PlatformStatus struct {
	Platform    PlatformType `json:"platform"`
	Connected   bool         `json:"connected"`
	MarketCount int          `json:"marketCount"`
	TotalVolume float64      `json:"totalVolume"`
	LastChecked string       `json:"lastChecked"`
	Error       string       `json:"error,omitempty"` // 失败原因（仅断连时有值）
}

// AggregateStats 全平台汇总统计
type AggregateStats struct {
	TotalMarkets      int                  `json:"totalMarkets"`
	TotalVolume       float64              `json:"totalVolume"`
	AvgSpread         float64              `json:"avgSpread"`
	PlatformBreakdown map[PlatformType]int `json:"platformBreakdown"`
}

// ISOTime 统一的ISO时间格式（RFC3339，UTC）
func ISOTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
