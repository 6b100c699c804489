package quiz

import "strings"

// Stopword sets are unioned across languages rather than selected by a
// detected language: answers may arrive in any of them.
var stopwordSets = map[string][]string{
	"english": {"i", "me", "my", "we", "us", "you", "he", "she", "it", "they", "this", "that", "and", "but", "or", "is", "are", "was", "were", "be", "have", "has", "do", "does", "did", "a", "an", "the", "on", "in", "at", "by", "for", "with", "of", "to", "from", "up", "down", "as", "before", "after", "over", "under", "no", "not", "only", "own", "so", "than", "too", "very", "can", "will", "just", "should", "now"},
	"spanish": {"de", "la", "que", "el", "en", "y", "a", "los", "las", "un", "una", "su", "lo", "como", "más", "pero", "o", "este", "porque", "con", "sin", "sobre", "también", "me", "hasta", "donde", "quien", "todos", "ni", "contra", "otros", "eso", "ante", "ellos", "mí", "algunos", "qué", "unos", "otro", "otras", "otra", "él", "tanto", "esa"},
	"russian": {"и", "в", "не", "что", "он", "на", "с", "как", "а", "то", "все", "она", "его", "но", "да", "ты", "у", "же", "вы", "за", "по", "только", "ее", "мне"},
	"korean":  {"이", "그", "저", "그녀", "우리", "너", "그들", "이것", "저것", "그것", "그리고", "하지만", "또는", "입니다", "있는", "그랬어", "하나", "두", "세", "네", "다섯"},
}

var stopwords = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, words := range stopwordSets {
		for _, w := range words {
			set[w] = struct{}{}
		}
	}
	return set
}()

const punctuation = `.,:;!?'"()[]{}<>«»„“”`

// Normalize produces the canonical form used for all answer and group
// comparisons: lower-cased, punctuation stripped, stopwords removed, and
// separators collapsed away. A single-token input skips stopword removal so
// short one-word answers like "the" survive intact. Idempotent.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)

	tokens := strings.Fields(s)
	if len(tokens) <= 1 {
		return strings.Join(tokens, "")
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if _, skip := stopwords[tok]; !skip {
			kept = append(kept, tok)
		}
	}

	joined := strings.Join(kept, "")
	return strings.NewReplacer("_", "", "-", "").Replace(joined)
}

// matchToken reports whether the normalized text equals one of the
// configured control tokens ("idk", "hint").
func matchToken(normalized string, tokens []string) bool {
	for _, t := range tokens {
		if normalized == Normalize(t) {
			return true
		}
	}
	return false
}
