package analytics

import (
	"math"
	"time"

	"MarketLens/internal/model"
)

// Volatility 简单收益率序列的标准差。收益率=(p[i]-p[i-1])/p[i-1]，前价为0的点跳过；
// 样本不足或无有效收益率时为0
func Volatility(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	var returns []float64
	for i := 1; i < len(prices); i++ {
		if prices[i-1] > 0 {
			returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
		}
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}

// RollingVolatility 先按墙钟截止时间过滤到最近windowDays天，再计算收益率波动
func RollingVolatility(prices []model.PricePoint, windowDays int, now time.Time) float64 {
	cutoff := now.Add(-time.Duration(windowDays) * 24 * time.Hour).Unix()
	var recent []float64
	for _, p := range prices {
		if p.Timestamp >= cutoff {
			recent = append(recent, p.Price)
		}
	}
	return Volatility(recent)
}

// ShannonEntropy 价格分布熵：[0,1]等宽10桶，-Σ p·log2(p)（只累计非空桶）
func ShannonEntropy(prices []model.PricePoint) float64 {
	if len(prices) == 0 {
		return 0
	}

	const bins = 10
	counts := make([]int, bins)
	for _, p := range prices {
		bin := int(p.Price * bins)
		if bin >= bins {
			bin = bins - 1
		}
		if bin < 0 {
			bin = 0
		}
		counts[bin]++
	}

	total := float64(len(prices))
	entropy := 0.0
	for _, count := range counts {
		if count > 0 {
			prob := float64(count) / total
			entropy -= prob * math.Log2(prob)
		}
	}
	return entropy
}

// MaxDrawdown 运行峰值回撤：drawdown=(peak-current)/peak，返回观察到的最大值
func MaxDrawdown(prices []model.PricePoint) float64 {
	if len(prices) < 2 {
		return 0
	}

	peak := prices[0].Price
	maxDrawdown := 0.0
	for _, p := range prices {
		if p.Price > peak {
			peak = p.Price
		}
		if peak > 0 {
			if drawdown := (peak - p.Price) / peak; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}
	return maxDrawdown
}

// AnalyzeVolatility 单市场波动率指标集合（7天滚动波动+熵+最大回撤）
func AnalyzeVolatility(market model.UnifiedMarket, prices []model.PricePoint, now time.Time) model.VolatilityMetrics {
	return model.VolatilityMetrics{
		Market:         market,
		Rolling7dVol:   RollingVolatility(prices, 7, now),
		ShannonEntropy: ShannonEntropy(prices),
		MaxDrawdown:    MaxDrawdown(prices),
	}
}
