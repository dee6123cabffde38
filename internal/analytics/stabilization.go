package analytics

import (
	"math"
	"time"

	"MarketLens/internal/model"
)

// DefaultStabilizationWindow 稳定化判定所需的尾部价格点数
const DefaultStabilizationWindow = 20

// DetectStabilization 判定价格是否已稳定（在结算前大概率不再移动）。
// 样本不足windowSize时返回"未稳定"的安全零值结果。
// 三因子：尾部波动率<0.02、置信度max(p,1-p)>0.85、距边界(0或1)<0.15；≥2个为真即稳定
func DetectStabilization(prices []model.PricePoint, windowSize int) model.StabilizationResult {
	if windowSize <= 0 {
		windowSize = DefaultStabilizationWindow
	}
	if len(prices) < windowSize {
		return model.StabilizationResult{
			IsStabilized: false,
			Confidence:   0,
			Volatility:   1,
			Proximity:    0,
		}
	}

	recent := make([]float64, 0, windowSize)
	for _, p := range prices[len(prices)-windowSize:] {
		recent = append(recent, p.Price)
	}

	volatility := Volatility(recent)
	lastPrice := recent[len(recent)-1]
	confidence := math.Max(lastPrice, 1-lastPrice)
	proximity := math.Min(math.Abs(lastPrice), math.Abs(lastPrice-1))

	factors := model.StabilizationFactors{
		LowVolatility:  volatility < 0.02,
		HighConfidence: confidence > 0.85,
		NearBoundary:   proximity < 0.15,
	}

	factorCount := 0
	for _, ok := range []bool{factors.LowVolatility, factors.HighConfidence, factors.NearBoundary} {
		if ok {
			factorCount++
		}
	}

	return model.StabilizationResult{
		IsStabilized: factorCount >= 2,
		Confidence:   confidence,
		Volatility:   volatility,
		Proximity:    proximity,
		Factors:      factors,
	}
}

// timeBucketDef 固定时间窗口定义
var timeBucketDefs = []struct {
	label string
	days  int
}{
	{"1D", 1},
	{"3D", 3},
	{"1W", 7},
	{"2W", 14},
	{"1M", 30},
}

// TimeBuckets 按固定窗口{1,3,7,14,30天}统计均价/波动率/净变化/样本数；空窗口全零
func TimeBuckets(prices []model.PricePoint, now time.Time) []model.TimeBucket {
	buckets := make([]model.TimeBucket, 0, len(timeBucketDefs))

	for _, def := range timeBucketDefs {
		cutoff := now.Add(-time.Duration(def.days) * 24 * time.Hour).Unix()
		var values []float64
		for _, p := range prices {
			if p.Timestamp >= cutoff {
				values = append(values, p.Price)
			}
		}

		bucket := model.TimeBucket{Label: def.label, Days: def.days, SampleCount: len(values)}
		if len(values) > 0 {
			sum := 0.0
			for _, v := range values {
				sum += v
			}
			bucket.AvgPrice = sum / float64(len(values))
			bucket.Volatility = Volatility(values)
			if len(values) > 1 {
				bucket.PriceChange = values[len(values)-1] - values[0]
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}
