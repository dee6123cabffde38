package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuestion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"小写+去标点", "Will BTC hit $100k?", "will btc hit 100k"},
		{"去压平腿标题", "Fed decision → 25 bps cut", "fed decision"},
		{"合并多空格", "who   wins    2028", "who wins 2028"},
		{"空串", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeQuestion(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("abc", "abc"))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 1, Levenshtein("kitten", "sitten"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
}

func TestScoreIdentityAndSymmetry(t *testing.T) {
	q1 := "Will the Fed cut rates in September?"
	q2 := "Fed rate cut in September 2025?"

	assert.Equal(t, 1.0, Score(q1, q1))
	assert.Equal(t, Score(q1, q2), Score(q2, q1))
	// 两侧归一化后都为空时视为相同
	assert.Equal(t, 1.0, Score("???", "!!!"))
}

func TestScoreParaphrase(t *testing.T) {
	// 措辞不同但关键词重叠高，关键词通道应把分数抬过匹配阈值
	score := Score(
		"Will the Fed cut interest rates in September?",
		"Fed to cut interest rates September?",
	)
	assert.GreaterOrEqual(t, score, 0.6)

	// 完全无关的问题不应达到阈值
	unrelated := Score(
		"Will the Fed cut interest rates in September?",
		"Champions League winner 2026",
	)
	assert.Less(t, unrelated, 0.6)
}

func TestTokenSimilarity(t *testing.T) {
	// 停用词和短词不参与重叠
	assert.Equal(t, 0.0, tokenSimilarity("will the be", "bitcoin price"))
	// 完全相同的关键词集合
	assert.Equal(t, 1.0, tokenSimilarity("bitcoin price 100k", "price bitcoin 100k"))
}

func TestBestMatch(t *testing.T) {
	idx, score := BestMatch("Will Bitcoin reach $100k?", []string{
		"Champions League winner",
		"Bitcoin to reach $100k this year?",
		"US election 2028",
	})
	assert.Equal(t, 1, idx)
	assert.Greater(t, score, 0.5)

	idx, score = BestMatch("anything", nil)
	assert.Equal(t, -1, idx)
	assert.Equal(t, 0.0, score)
}
