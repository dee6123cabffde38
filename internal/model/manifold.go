package model

// ManifoldMarket Manifold /search-markets 返回的单条二元市场
// probability 即YES概率；消费的接口中没有原生分类字段
type ManifoldMarket struct {
	ID              string   `json:"id"`
	CreatorUsername string   `json:"creatorUsername"`
	CreatedTime     int64    `json:"createdTime"` // 毫秒时间戳
	CloseTime       int64    `json:"closeTime"`   // 毫秒时间戳，0表示未设置
	Question        string   `json:"question"`
	Slug            string   `json:"slug"`
	URL             string   `json:"url"`
	Probability     *float64 `json:"probability"` // 缺失时按0.5兜底
	TotalLiquidity  float64  `json:"totalLiquidity"`
	OutcomeType     string   `json:"outcomeType"` // BINARY
	Volume          float64  `json:"volume"`
	Volume24Hours   float64  `json:"volume24Hours"`
	IsResolved      bool     `json:"isResolved"`
	Resolution      string   `json:"resolution,omitempty"`
	LastUpdatedTime int64    `json:"lastUpdatedTime"` // 毫秒时间戳
	CoverImageURL   string   `json:"coverImageUrl"`
	TextDescription string   `json:"textDescription"`
}
