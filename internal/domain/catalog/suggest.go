package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/yourusername/biosmaris-storefront/internal/domain/entity"
)

// Suggest ranks products that loosely resemble text. It is only used when
// Filter finds nothing, to offer "did you mean" entries; it never changes
// what Filter returns. At most limit products are returned, best first.
func Suggest(products []entity.Product, text string, limit int) []entity.Product {
	tokens := normalizeTokens(filterTokens(queryTokens(text)))
	compact := normalizeAlphaNum(text)
	if len(tokens) == 0 && compact == "" {
		return []entity.Product{}
	}

	var scored []scoredProduct
	for i, p := range products {
		score := similarityScore(tokens, compact,
			normalizeAlphaNum(p.Name), normalizeAlphaNum(p.Category), normalizeAlphaNum(p.Description))
		if score >= minSuggestScore {
			scored = append(scored, scoredProduct{product: p, score: score, index: i})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score == scored[j].score {
			return scored[i].index < scored[j].index
		}
		return scored[i].score > scored[j].score
	})

	result := make([]entity.Product, 0, len(scored))
	for _, sp := range scored {
		if limit > 0 && len(result) >= limit {
			break
		}
		result = append(result, sp.product)
	}
	return result
}

const minSuggestScore = 5

type scoredProduct struct {
	product entity.Product
	score   int
	index   int
}

func similarityScore(qTokens []string, compactQuery, nameNorm, catNorm, descNorm string) int {
	score := 0

	for _, qt := range qTokens {
		if strings.Contains(nameNorm, qt) {
			score += 4
			continue
		}
		if strings.Contains(catNorm, qt) || strings.Contains(descNorm, qt) {
			score += 2
		}
	}

	// typos still share a long run of letters with the name
	if compactQuery != "" {
		if lcs := longestCommonSubstringLength(compactQuery, nameNorm); lcs >= 3 {
			score += lcs
		}
	}

	return score
}

func queryTokens(q string) []string {
	q = strings.ToLower(q)
	fields := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var tokens []string
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

var stopWords = map[string]struct{}{
	"le": {}, "la": {}, "les": {}, "un": {}, "une": {}, "des": {}, "du": {},
	"de": {}, "pour": {}, "avec": {}, "et": {}, "vous": {}, "avez": {},
	"est": {}, "ce": {}, "qui": {}, "que": {}, "je": {}, "cherche": {},
}

func filterTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if _, skip := stopWords[t]; skip {
			continue
		}
		out = append(out, t)
	}
	return out
}

func normalizeTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if n := normalizeAlphaNum(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// normalizeAlphaNum lowercases s and keeps letters and digits only.
func normalizeAlphaNum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func longestCommonSubstringLength(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	maxLen := 0
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > maxLen {
					maxLen = cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return maxLen
}
