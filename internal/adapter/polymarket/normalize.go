package polymarket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"MarketLens/internal/model"
)

// parsedPrices 单个盘口解析出的价格与token对
type parsedPrices struct {
	yesPrice float64
	noPrice  float64
	tokenIDs []string
}

// parseMarketPrices 解析盘口的伪JSON价格数组；格式坏掉时按空数组兜底（0.5/补数）
func parseMarketPrices(m *model.PolymarketGammaMarket) parsedPrices {
	var rawPrices []string
	if m.OutcomePrices != "" {
		if err := json.Unmarshal([]byte(m.OutcomePrices), &rawPrices); err != nil {
			rawPrices = nil
		}
	}

	var tokenIDs []string
	if m.ClobTokenIds != "" {
		if err := json.Unmarshal([]byte(m.ClobTokenIds), &tokenIDs); err != nil {
			tokenIDs = nil
		}
	}

	yesPrice := 0.5
	if len(rawPrices) > 0 {
		if v, err := strconv.ParseFloat(rawPrices[0], 64); err == nil {
			yesPrice = v
		}
	}
	noPrice := 1 - yesPrice
	if len(rawPrices) > 1 {
		if v, err := strconv.ParseFloat(rawPrices[1], 64); err == nil {
			noPrice = v
		}
	}
	return parsedPrices{yesPrice: yesPrice, noPrice: noPrice, tokenIDs: tokenIDs}
}

// marketSpread 显式spread字段（分）÷100；缺失或非正时用|1-(yes+no)|估算
func marketSpread(m *model.PolymarketGammaMarket, yesPrice, noPrice float64) float64 {
	if m.Spread > 0 {
		return m.Spread / 100
	}
	return abs(1 - (yesPrice + noPrice))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func mapStatus(m *model.PolymarketGammaMarket) model.MarketStatus {
	switch {
	case m.Closed:
		return model.StatusClosed
	case m.Active:
		return model.StatusActive
	default:
		return model.StatusResolved
	}
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// buildOutcomes 构建固定的Yes/No两腿，带CLOB token
func buildOutcomes(p parsedPrices) []model.MarketOutcome {
	token := func(i int) string {
		if i < len(p.tokenIDs) {
			return p.tokenIDs[i]
		}
		return ""
	}
	return []model.MarketOutcome{
		{Name: "Yes", Price: p.yesPrice, TokenID: token(0)},
		{Name: "No", Price: p.noPrice, TokenID: token(1)},
	}
}

// NormalizeMarket 单盘口→统一市场
func NormalizeMarket(m *model.PolymarketGammaMarket, now time.Time) model.UnifiedMarket {
	p := parseMarketPrices(m)

	category := m.Category
	if category == "" {
		category = "Other"
	}

	return model.UnifiedMarket{
		ID:          "polymarket-" + m.ID,
		Platform:    model.PlatformPolymarket,
		PlatformID:  m.ID,
		Question:    m.Question,
		Description: m.Description,
		Category:    category,
		Status:      mapStatus(m),
		YesPrice:    p.yesPrice,
		NoPrice:     p.noPrice,
		Spread:      marketSpread(m, p.yesPrice, p.noPrice),
		Volume:      parseFloatOrZero(m.Volume),
		Volume24h:   m.Volume24hr,
		Liquidity:   parseFloatOrZero(m.Liquidity),
		EndDate:     strOrNil(m.EndDate),
		ImageURL:    strOrNil(m.Image),
		URL:         fmt.Sprintf("https://polymarket.com/event/%s", m.Slug),
		LastUpdated: model.ISOTime(now),
		Outcomes:    buildOutcomes(p),
	}
}

// NormalizeEvent 事件→统一市场。单盘口事件直接用该盘口；
// 多结果事件（negRisk）压平为"领先结果"那条腿，问题文本变为 "事件标题 → 腿标题"。
// 事件下无可用盘口时返回nil
func NormalizeEvent(event *model.PolymarketGammaEvent, now time.Time) *model.UnifiedMarket {
	markets := event.Markets
	if len(markets) == 0 {
		return nil
	}

	// 单盘口事件：直接用该盘口，事件级字段补充URL/封面/24小时量
	if len(markets) == 1 {
		result := NormalizeMarket(&markets[0], now)
		result.URL = fmt.Sprintf("https://polymarket.com/event/%s", event.Slug)
		if img := firstNonEmpty(event.Image, markets[0].Image); img != "" {
			result.ImageURL = &img
		}
		if event.Volume24hr > 0 {
			result.Volume24h = event.Volume24hr
		}
		return &result
	}

	// 多结果事件：取活跃、未归档、0.02<yes<0.99中yes最高的腿（领先结果）
	var best *model.PolymarketGammaMarket
	bestYesPrice := -1.0
	for i := range markets {
		m := &markets[i]
		if m.Archived || m.Closed || !m.Active {
			continue
		}
		p := parseMarketPrices(m)
		if p.yesPrice > 0.02 && p.yesPrice < 0.99 && p.yesPrice > bestYesPrice {
			bestYesPrice = p.yesPrice
			best = m
		}
	}

	// 无合理价格区间的腿时：兜底取交易量最高的未归档未关闭腿
	if best == nil {
		bestVol := -1.0
		for i := range markets {
			m := &markets[i]
			if m.Archived || m.Closed {
				continue
			}
			if vol := parseFloatOrZero(m.Volume); vol > bestVol {
				bestVol = vol
				best = m
			}
		}
	}
	if best == nil {
		return nil
	}

	p := parseMarketPrices(best)

	// negRisk且>2条腿才算真正的多结果事件，问题文本带上事件标题
	question := best.Question
	if event.NegRisk && len(markets) > 2 {
		leg := best.GroupItemTitle
		if leg == "" {
			leg = best.Question
		}
		question = fmt.Sprintf("%s → %s", event.Title, leg)
	}

	category := best.Category
	if category == "" {
		category = "Other"
	}

	volume24h := event.Volume24hr
	if volume24h == 0 {
		volume24h = best.Volume24hr
	}

	return &model.UnifiedMarket{
		ID:          "polymarket-" + best.ID,
		Platform:    model.PlatformPolymarket,
		PlatformID:  best.ID,
		Question:    question,
		Description: firstNonEmpty(event.Description, best.Description),
		Category:    category,
		Status:      mapStatus(best),
		YesPrice:    p.yesPrice,
		NoPrice:     p.noPrice,
		Spread:      marketSpread(best, p.yesPrice, p.noPrice),
		Volume:      parseFloatOrZero(event.Volume),
		Volume24h:   volume24h,
		Liquidity:   parseFloatOrZero(event.Liquidity),
		EndDate:     strOrNil(firstNonEmpty(event.EndDate, best.EndDate)),
		ImageURL:    strOrNil(firstNonEmpty(event.Image, best.Image)),
		URL:         fmt.Sprintf("https://polymarket.com/event/%s", event.Slug),
		LastUpdated: model.ISOTime(now),
		Outcomes:    buildOutcomes(p),
	}
}
