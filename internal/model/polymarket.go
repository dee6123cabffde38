package model

// ========== Polymarket Gamma API 响应结构（GET /events） ==========

// PolymarketGammaEvent 单条事件（可含多个盘口/市场）
type PolymarketGammaEvent struct {
	ID          string                  `json:"id"`          // 平台事件ID
	Slug        string                  `json:"slug"`        // 详情页slug
	Title       string                  `json:"title"`       // 事件标题
	Description string                  `json:"description"` // 描述
	Markets     []PolymarketGammaMarket `json:"markets"`     // 事件下属盘口
	Volume      string                  `json:"volume"`      // 交易量（字符串数字）
	Liquidity   string                  `json:"liquidity"`   // 流动性（字符串数字）
	Volume24hr  float64                 `json:"volume24hr"`  // 24小时交易量
	EndDate     string                  `json:"endDate"`     // 截止时间
	Image       string                  `json:"image"`       // 封面图
	NegRisk     bool                    `json:"negRisk"`     // 多结果互斥事件标记
	Category    string                  `json:"category"`
}

// PolymarketGammaMarket 单条盘口
type PolymarketGammaMarket struct {
	ID             string  `json:"id"`
	Question       string  `json:"question"`
	Description    string  `json:"description"`
	Slug           string  `json:"slug"`
	EndDate        string  `json:"endDate"`
	Liquidity      string  `json:"liquidity"`  // 字符串数字
	Volume         string  `json:"volume"`     // 字符串数字
	Volume24hr     float64 `json:"volume24hr"` // 数字
	Active         bool    `json:"active"`
	Closed         bool    `json:"closed"`
	Archived       bool    `json:"archived"`
	GroupItemTitle string  `json:"groupItemTitle"` // 多结果事件中该腿的短标题
	OutcomePrices  string  `json:"outcomePrices"`  // 伪JSON数组字符串："[\"0.6\",\"0.4\"]"
	ClobTokenIds   string  `json:"clobTokenIds"`   // 伪JSON数组字符串：token对
	Image          string  `json:"image"`
	Category       string  `json:"category"`
	NegRisk        bool    `json:"negRisk"`
	Spread         float64 `json:"spread"` // 显式价差（分）
}
