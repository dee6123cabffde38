package model

// MatchedMarket 跨平台匹配后的同题市场簇（成员≥2且来自≥2个平台）
// 分组为种子星型聚类：候选只与种子比相似度，簇内非种子成员彼此可能不相似
type MatchedMarket struct {
	Question     string          `json:"question"`     // 代表问题（取种子，即簇内交易量最高者）
	Markets      []UnifiedMarket `json:"markets"`      // 簇成员
	Similarity   float64         `json:"similarity"`   // 前两个成员的相似度（仅诊断用）
	MaxPriceDiff float64         `json:"maxPriceDiff"` // 簇内YES价最大差（max-min）
}

// GapSize 套利价差档位
type GapSize string

const (
	GapSmall  GapSize = "small"
	GapMedium GapSize = "medium"
	GapLarge  GapSize = "large"
)

// ArbitrageOpportunity 同簇内两个不同平台市场之间的定价比较
type ArbitrageOpportunity struct {
	MarketA          UnifiedMarket `json:"marketA"`
	MarketB          UnifiedMarket `json:"marketB"`
	PriceDiff        float64       `json:"priceDiff"`        // YES价绝对差
	PriceDiffPercent float64       `json:"priceDiffPercent"` // 差值/两价均值
	GapSize          GapSize       `json:"gapSize"`          // small/<5% medium/<10% large
	Direction        string        `json:"direction"`        // "低价平台 → 高价平台"
	ArbCost          float64       `json:"arbCost"`          // 买低价YES+对面实际NO的成本
	ArbROI           float64       `json:"arbROI"`           // 成本<1时的锁定收益率
	HasArb           bool          `json:"hasArb"`           // arbCost < 1
}

// StabilizationFactors 稳定化判定的三个布尔因子
type StabilizationFactors struct {
	LowVolatility  bool `json:"lowVolatility"`  // 尾部波动率 < 0.02
	HighConfidence bool `json:"highConfidence"` // max(p, 1-p) > 0.85
	NearBoundary   bool `json:"nearBoundary"`   // 距0或1 < 0.15
}

// StabilizationResult 市场价格是否已稳定的启发式判定结果
type StabilizationResult struct {
	IsStabilized bool                 `json:"isStabilized"` // 三因子中≥2个为真
	Confidence   float64              `json:"confidence"`
	Volatility   float64              `json:"volatility"`
	Proximity    float64              `json:"proximity"`
	Factors      StabilizationFactors `json:"factors"`
}

// TimeBucket 固定时间窗口内的价格统计
type TimeBucket struct {
	Label       string  `json:"label"` // 1D/3D/1W/2W/1M
	Days        int     `json:"days"`
	AvgPrice    float64 `json:"avgPrice"`
	Volatility  float64 `json:"volatility"`
	PriceChange float64 `json:"priceChange"` // 窗口内末价-首价
	SampleCount int     `json:"sampleCount"`
}

// SpreadAnalysis 单市场的价差分析（按价差降序排名）
type SpreadAnalysis struct {
	Market        UnifiedMarket `json:"market"`
	BidAskSpread  float64       `json:"bidAskSpread"`
	SpreadPercent float64       `json:"spreadPercent"`
	Rank          int           `json:"rank"`
}

// VolatilityMetrics 单市场的波动率指标集合
type VolatilityMetrics struct {
	Market         UnifiedMarket `json:"market"`
	Rolling7dVol   float64       `json:"rolling7dVol"`
	ShannonEntropy float64       `json:"shannonEntropy"`
	MaxDrawdown    float64       `json:"maxDrawdown"`
}

// HedgeSide 对冲持仓方向
type HedgeSide string

const (
	HedgeYes HedgeSide = "yes"
	HedgeNo  HedgeSide = "no"
)

// HedgePosition 对冲组合中的单个持仓
type HedgePosition struct {
	Market   UnifiedMarket `json:"market"`
	Platform PlatformType  `json:"platform"`
	Side     HedgeSide     `json:"side"`
	Weight   float64       `json:"weight"` // 预算占比
	Amount   float64       `json:"amount"` // 美元金额
}

// HedgeResult 对冲分配结果
type HedgeResult struct {
	Positions      []HedgePosition `json:"positions"`
	TotalCost      float64         `json:"totalCost"`
	ExpectedPayout float64         `json:"expectedPayout"`
	MaxLoss        float64         `json:"maxLoss"` // min(profitIfYes, profitIfNo)
	ProfitIfYes    float64         `json:"profitIfYes"`
	ProfitIfNo     float64         `json:"profitIfNo"`
}
