package opinion

import (
	"fmt"
	"time"

	"MarketLens/internal/model"

	"github.com/shopspring/decimal"
)

// parsePrice 解析十进制字符串价格；空串或格式错误按0兜底
func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// effectivePrices 单边缺失时取另一边的补数；双边都缺时第二个返回值为false（无可用价格信号）
func effectivePrices(yesRaw, noRaw string) (yes, no float64, ok bool) {
	yes = parsePrice(yesRaw)
	no = parsePrice(noRaw)
	if yes <= 0 && no <= 0 {
		return 0, 0, false
	}
	if yes <= 0 {
		yes = 1 - no
	}
	if no <= 0 {
		no = 1 - yes
	}
	return yes, no, true
}

// NormalizeTopics 话题列表→统一市场列表。
// 含childList的多结果话题压平为N个独立二元市场（每个child继承父标题前缀与父级元信息）
func NormalizeTopics(topics []model.OpinionTopic, now time.Time) []model.UnifiedMarket {
	var markets []model.UnifiedMarket
	for i := range topics {
		topic := &topics[i]
		if len(topic.ChildList) > 0 {
			for j := range topic.ChildList {
				if m := normalizeChild(&topic.ChildList[j], topic, now); m != nil {
					markets = append(markets, *m)
				}
			}
			continue
		}
		if m := normalizeBinary(topic, now); m != nil {
			markets = append(markets, *m)
		}
	}
	return markets
}

// normalizeBinary 直接带yes/no价的二元话题；无价格信号返回nil
func normalizeBinary(t *model.OpinionTopic, now time.Time) *model.UnifiedMarket {
	yes, no, ok := effectivePrices(t.YesBuyPrice, t.NoBuyPrice)
	if !ok {
		return nil
	}
	return buildMarket(t, t, t.Title, yes, no, now)
}

// normalizeChild 多结果话题的单个child；问题文本带父标题前缀，元信息继承父级
func normalizeChild(child, parent *model.OpinionTopic, now time.Time) *model.UnifiedMarket {
	yes, no, ok := effectivePrices(child.YesBuyPrice, child.NoBuyPrice)
	if !ok {
		return nil
	}
	question := fmt.Sprintf("%s: %s", parent.Title, child.Title)
	m := buildMarket(child, parent, question, yes, no, now)
	if m.Outcomes[0].Name == "Yes" && child.Title != "" {
		m.Outcomes[0].Name = child.Title
	}
	return m
}

// buildMarket 组装统一市场。价格与量取自leg（child或话题本身），描述/分类/截止时间/封面取自meta（父级）
func buildMarket(leg, meta *model.OpinionTopic, question string, yes, no float64, now time.Time) *model.UnifiedMarket {
	spread := yes - no
	if spread < 0 {
		spread = -spread
	}

	description := meta.Abstract
	if description == "" {
		description = meta.Rules
	}

	category := "Other"
	if len(meta.LabelName) > 0 && meta.LabelName[0] != "" {
		category = meta.LabelName[0]
	}

	var endDate *string
	if meta.CutoffTime > 0 {
		v := model.ISOTime(time.Unix(meta.CutoffTime, 0))
		endDate = &v
	}

	var imageURL *string
	if meta.ThumbnailURL != "" {
		imageURL = &meta.ThumbnailURL
	}

	yesName := leg.YesLabel
	if yesName == "" {
		yesName = "Yes"
	}
	noName := leg.NoLabel
	if noName == "" {
		noName = "No"
	}

	return &model.UnifiedMarket{
		ID:          fmt.Sprintf("opinion-%d", leg.TopicID),
		Platform:    model.PlatformOpinion,
		PlatformID:  fmt.Sprintf("%d", leg.TopicID),
		Question:    question,
		Description: description,
		Category:    category,
		Status:      model.StatusActive, // 接口未暴露更细的生命周期信号
		YesPrice:    yes,
		NoPrice:     no,
		Spread:      spread,
		Volume:      parsePrice(leg.Volume),
		Volume24h:   parsePrice(leg.Volume24h),
		Liquidity:   0,
		EndDate:     endDate,
		ImageURL:    imageURL,
		URL:         fmt.Sprintf("https://app.opinion.trade/detail?topicId=%d", meta.TopicID),
		LastUpdated: model.ISOTime(now),
		Outcomes: []model.MarketOutcome{
			{Name: yesName, Price: yes},
			{Name: noName, Price: no},
		},
	}
}
