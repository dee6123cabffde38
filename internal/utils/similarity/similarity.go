package similarity

import (
	"regexp"
	"strings"
)

// stopWords 不参与关键词重叠的常见虚词/疑问词
var stopWords = map[string]struct{}{
	"will": {}, "the": {}, "be": {}, "a": {}, "an": {}, "in": {}, "on": {},
	"of": {}, "to": {}, "for": {}, "by": {}, "at": {}, "or": {}, "and": {},
	"is": {}, "it": {}, "this": {}, "that": {}, "with": {}, "from": {},
	"as": {}, "its": {}, "has": {}, "have": {}, "after": {}, "before": {},
	"next": {}, "what": {}, "who": {}, "how": {}, "when": {}, "where": {},
	"which": {},
}

var (
	arrowSuffix = regexp.MustCompile(`→.*$`)
	nonAlphaNum = regexp.MustCompile(`[^a-z0-9\s]+`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// normalizeQuestion 归一化问题文本：小写、去掉压平箭头之后的腿标题、去非字母数字、合并空白
func normalizeQuestion(q string) string {
	s := strings.ToLower(q)
	s = arrowSuffix.ReplaceAllString(s, "")
	s = nonAlphaNum.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Levenshtein 经典动态规划字符编辑距离
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := 0; j <= len(ra); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min3(prev[j-1]+1, curr[j-1]+1, prev[j]+1)
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// extractKeywords 提取长度>2且非停用词的小写词集合
func extractKeywords(q string) map[string]struct{} {
	words := strings.Fields(normalizeQuestion(q))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// tokenSimilarity 关键词Jaccard重叠相似度；任一侧无关键词时为0
func tokenSimilarity(a, b string) float64 {
	wordsA := extractKeywords(a)
	wordsB := extractKeywords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	overlap := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			overlap++
		}
	}
	union := len(wordsA) + len(wordsB) - overlap
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

// Score 两个问题文本的相似度 [0,1]，对称且 Score(a,a)=1。
// 取编辑距离相似度与关键词重叠相似度的较大值：前者奖励近似原句，
// 后者奖励措辞结构不同但语义相同的问题（如从句重排）
func Score(a, b string) float64 {
	cleanA := normalizeQuestion(a)
	cleanB := normalizeQuestion(b)
	maxLen := len([]rune(cleanA))
	if lb := len([]rune(cleanB)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}

	levSim := 1 - float64(Levenshtein(cleanA, cleanB))/float64(maxLen)
	tokSim := tokenSimilarity(a, b)

	if tokSim > levSim {
		return tokSim
	}
	return levSim
}

// BestMatch 在候选列表中找与query相似度最高的一项；候选为空返回-1
func BestMatch(query string, candidates []string) (index int, score float64) {
	if len(candidates) == 0 {
		return -1, 0
	}
	index = 0
	for i, c := range candidates {
		if sim := Score(query, c); sim > score {
			score = sim
			index = i
		}
	}
	return index, score
}
