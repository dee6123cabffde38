package opinion

import (
	"testing"
	"time"

	"MarketLens/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestEffectivePrices(t *testing.T) {
	tests := []struct {
		name    string
		yesRaw  string
		noRaw   string
		wantYes float64
		wantNo  float64
		wantOK  bool
	}{
		{"双边都有", "0.62", "0.38", 0.62, 0.38, true},
		{"no缺失取补数", "0.62", "", 0.62, 0.38, true},
		{"yes缺失取补数", "", "0.38", 0.62, 0.38, true},
		{"双边都缺", "", "", 0, 0, false},
		{"格式坏掉按缺失处理", "abc", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yes, no, ok := effectivePrices(tt.yesRaw, tt.noRaw)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.wantYes, yes, 1e-9)
				assert.InDelta(t, tt.wantNo, no, 1e-9)
			}
		})
	}
}

func TestNormalizeTopicsBinary(t *testing.T) {
	topics := []model.OpinionTopic{{
		TopicID:     101,
		Title:       "Will BNB hit $1000?",
		Abstract:    "desc",
		YesBuyPrice: "0.55",
		NoBuyPrice:  "0.45",
		Volume:      "123456.78",
		Volume24h:   "999",
		CutoffTime:  testNow.Add(48 * time.Hour).Unix(),
		LabelName:   []string{"Crypto"},
	}}

	markets := NormalizeTopics(topics, testNow)
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, "opinion-101", m.ID)
	assert.Equal(t, model.PlatformOpinion, m.Platform)
	assert.Equal(t, "Will BNB hit $1000?", m.Question)
	assert.InDelta(t, 0.55, m.YesPrice, 1e-9)
	assert.InDelta(t, 123456.78, m.Volume, 1e-9)
	assert.Equal(t, "Crypto", m.Category)
	assert.Equal(t, model.StatusActive, m.Status)
	assert.Equal(t, 0.0, m.Liquidity)
	require.NotNil(t, m.EndDate)
	assert.Equal(t, "https://app.opinion.trade/detail?topicId=101", m.URL)
}

func TestNormalizeTopicsChildFlattening(t *testing.T) {
	topics := []model.OpinionTopic{{
		TopicID:   200,
		Title:     "Who wins the election?",
		Abstract:  "parent desc",
		LabelName: []string{"Politics"},
		ChildList: []model.OpinionTopic{
			{TopicID: 201, Title: "Alice", YesBuyPrice: "0.6"},
			{TopicID: 202, Title: "Bob", YesBuyPrice: "0.3", NoBuyPrice: "0.7"},
			{TopicID: 203, Title: "NoPrices"}, // 无价格信号，丢弃
		},
	}}

	markets := NormalizeTopics(topics, testNow)
	require.Len(t, markets, 2)

	// child继承父级元信息，问题文本带父标题前缀
	assert.Equal(t, "opinion-201", markets[0].ID)
	assert.Equal(t, "Who wins the election?: Alice", markets[0].Question)
	assert.Equal(t, "parent desc", markets[0].Description)
	assert.Equal(t, "Politics", markets[0].Category)
	// yes单边缺no时取补数
	assert.InDelta(t, 0.6, markets[0].YesPrice, 1e-9)
	assert.InDelta(t, 0.4, markets[0].NoPrice, 1e-9)
	// URL指向父话题
	assert.Equal(t, "https://app.opinion.trade/detail?topicId=200", markets[0].URL)
	// YES腿名用child标题
	assert.Equal(t, "Alice", markets[0].Outcomes[0].Name)

	assert.Equal(t, "opinion-202", markets[1].ID)
	assert.InDelta(t, 0.3, markets[1].YesPrice, 1e-9)
}

func TestNormalizeTopicsNoPriceSignal(t *testing.T) {
	markets := NormalizeTopics([]model.OpinionTopic{{TopicID: 1, Title: "empty"}}, testNow)
	assert.Empty(t, markets)
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 0.0, parsePrice(""))
	assert.Equal(t, 0.0, parsePrice("not-a-number"))
	assert.InDelta(t, 0.123, parsePrice("0.123"), 1e-9)
}
