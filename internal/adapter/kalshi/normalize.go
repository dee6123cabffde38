package kalshi

import (
	"fmt"
	"net/url"
	"time"

	"MarketLens/internal/model"
)

// NormalizeMarket 单条Kalshi market→统一市场。
// 价格为美分[0,100]÷100；volume是合约张数（1张=$1名义）直接用；liquidity为分÷100
func NormalizeMarket(m *model.KalshiMarket, now time.Time) model.UnifiedMarket {
	yesPrice := m.LastPrice / 100
	if m.YesBid > 0 {
		yesPrice = m.YesBid / 100
	}
	noPrice := 1 - yesPrice
	if m.NoBid > 0 {
		noPrice = m.NoBid / 100
	}

	// 买卖一价差（换算为小数）
	spread := (m.YesAsk - m.YesBid) / 100
	if spread < 0 {
		spread = -spread
	}

	status := model.StatusActive
	if m.Status == "closed" || m.Status == "settled" {
		status = model.StatusClosed
	}
	if m.Result != "" {
		status = model.StatusResolved
	}

	category := m.Category
	if category == "" {
		category = "Other"
	}

	var endDate *string
	if v := firstNonEmpty(m.CloseTime, m.ExpirationTime); v != "" {
		endDate = &v
	}

	return model.UnifiedMarket{
		ID:          "kalshi-" + m.Ticker,
		Platform:    model.PlatformKalshi,
		PlatformID:  m.Ticker,
		Question:    m.Title,
		Description: m.Subtitle,
		Category:    category,
		Status:      status,
		YesPrice:    yesPrice,
		NoPrice:     noPrice,
		Spread:      spread,
		Volume:      m.Volume,
		Volume24h:   m.Volume24h,
		Liquidity:   m.Liquidity / 100,
		EndDate:     endDate,
		ImageURL:    nil,
		URL:         fmt.Sprintf("https://kalshi.com/browse?search=%s", url.QueryEscape(m.Title)),
		LastUpdated: model.ISOTime(now),
		Outcomes: []model.MarketOutcome{
			{Name: "Yes", Price: yesPrice},
			{Name: "No", Price: noPrice},
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// representativeMarket 从一个事件的多条market中选出代表性的那条（领先结果）：
// yes_bid（缺失用last_price）严格在(5,95)分之间且最高的腿；都不合格时取交易量最高的腿。
// >2条腿的事件标题变为 "事件标题 → 腿标题"
func representativeMarket(eventTitle string, markets []model.KalshiMarket) *model.KalshiMarket {
	if len(markets) == 0 {
		return nil
	}
	if len(markets) == 1 {
		return &markets[0]
	}

	var best *model.KalshiMarket
	bestPrice := -1.0
	for i := range markets {
		m := &markets[i]
		price := m.LastPrice
		if m.YesBid > 0 {
			price = m.YesBid
		}
		if price > 5 && price < 95 && price > bestPrice {
			bestPrice = price
			best = m
		}
	}

	// 兜底：取交易量最高的腿
	if best == nil {
		bestVol := -1.0
		for i := range markets {
			m := &markets[i]
			if m.Volume > bestVol {
				bestVol = m.Volume
				best = m
			}
		}
	}
	if best == nil {
		return nil
	}

	pick := *best
	if len(markets) > 2 {
		pick.Title = fmt.Sprintf("%s → %s", eventTitle, pick.Title)
	}
	return &pick
}
