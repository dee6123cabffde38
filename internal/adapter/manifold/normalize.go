package manifold

import (
	"time"

	"MarketLens/internal/model"
)

// NormalizeMarket 单条Manifold市场→统一市场。
// probability即YES价（缺失按0.5兜底），NO恒为补数；消费的接口无原生分类，恒为Other
func NormalizeMarket(m *model.ManifoldMarket, now time.Time) model.UnifiedMarket {
	yesPrice := 0.5
	if m.Probability != nil {
		yesPrice = *m.Probability
	}
	noPrice := 1 - yesPrice

	status := model.StatusActive
	if m.IsResolved {
		status = model.StatusResolved
	} else if m.CloseTime > 0 && m.CloseTime < now.UnixMilli() {
		status = model.StatusClosed
	}

	var endDate *string
	if m.CloseTime > 0 {
		v := model.ISOTime(time.UnixMilli(m.CloseTime))
		endDate = &v
	}

	var imageURL *string
	if m.CoverImageURL != "" {
		imageURL = &m.CoverImageURL
	}

	lastUpdated := model.ISOTime(now)
	if m.LastUpdatedTime > 0 {
		lastUpdated = model.ISOTime(time.UnixMilli(m.LastUpdatedTime))
	}

	spread := yesPrice - noPrice
	if spread < 0 {
		spread = -spread
	}

	return model.UnifiedMarket{
		ID:          "manifold-" + m.ID,
		Platform:    model.PlatformManifold,
		PlatformID:  m.ID,
		Question:    m.Question,
		Description: m.TextDescription,
		Category:    "Other",
		Status:      status,
		YesPrice:    yesPrice,
		NoPrice:     noPrice,
		Spread:      spread,
		Volume:      m.Volume,
		Volume24h:   m.Volume24Hours,
		Liquidity:   m.TotalLiquidity,
		EndDate:     endDate,
		ImageURL:    imageURL,
		URL:         m.URL,
		LastUpdated: lastUpdated,
		Outcomes: []model.MarketOutcome{
			{Name: "Yes", Price: yesPrice},
			{Name: "No", Price: noPrice},
		},
	}
}
