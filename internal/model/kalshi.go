package model

// ========== Kalshi 官方 API 响应结构（GET /events?with_nested_markets=true） ==========

// KalshiEventsResponse GET /events 的根响应
type KalshiEventsResponse struct {
	Events []KalshiEvent `json:"events"`
	Cursor string        `json:"cursor"` // 翻页游标，为空表示无下一页
}

// KalshiEvent 单条事件（含嵌套market列表）
type KalshiEvent struct {
	EventTicker  string         `json:"event_ticker"`
	SeriesTicker string         `json:"series_ticker"`
	Title        string         `json:"title"`
	SubTitle     string         `json:"sub_title"`
	Category     string         `json:"category"` // 事件分类，market缺失时继承
	Status       string         `json:"status"`
	Markets      []KalshiMarket `json:"markets,omitempty"`
}

// KalshiMarket 单条二元market（价格单位为美分 0-100）
type KalshiMarket struct {
	Ticker         string  `json:"ticker"`
	EventTicker    string  `json:"event_ticker"`
	MarketType     string  `json:"market_type"`
	Title          string  `json:"title"`
	Subtitle       string  `json:"subtitle"`
	YesBid         float64 `json:"yes_bid"`   // YES买一价（分）
	YesAsk         float64 `json:"yes_ask"`   // YES卖一价（分）
	NoBid          float64 `json:"no_bid"`    // NO买一价（分）
	NoAsk          float64 `json:"no_ask"`    // NO卖一价（分）
	LastPrice      float64 `json:"last_price"` // 最新成交价（分），yes_bid缺失时兜底
	PreviousPrice  float64 `json:"previous_price"`
	Volume         float64 `json:"volume"`     // 合约张数（1张=$1名义）
	Volume24h      float64 `json:"volume_24h"` // 同上
	Liquidity      float64 `json:"liquidity"`  // 流动性（分）
	OpenInterest   float64 `json:"open_interest"`
	Status         string  `json:"status"` // open/closed/settled
	Result         string  `json:"result"` // 有值即已出结果
	CloseTime      string  `json:"close_time"`
	ExpirationTime string  `json:"expiration_time"`
	Category       string  `json:"category"`
}
