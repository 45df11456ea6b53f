package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	providerKnownConfidence     = 0.95
	providerHeuristicConfidence = 0.6
)

// recognizeProvider finds the vendor name. Known providers are matched first
// at high confidence; otherwise the first plausible header line is used at
// reduced confidence. Returns ("", 0) when nothing qualifies.
func recognizeProvider(text string) (string, float64) {
	for _, p := range knownProviders {
		occurrence, ok := indexFold(text, p)
		if !ok {
			continue
		}
		return strings.ToUpper(occurrence), providerKnownConfidence
	}

	// Fallback: receipts usually carry the vendor name in the header, so scan
	// the first few lines for something that looks like a name rather than a
	// money or date label.
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 4 || len(line) >= 50 {
			continue
		}
		if containsBlacklisted(strings.ToLower(line)) {
			continue
		}
		return line, providerHeuristicConfidence
	}

	return "", 0
}

// indexFold returns the first case-insensitive occurrence of pattern in text.
// Matching is rune-wise against text itself; offsets from a case-folded copy
// would be wrong whenever folding changes a rune's byte length.
func indexFold(text, pattern string) (string, bool) {
	for i := range text {
		if n, ok := foldPrefixLen(text[i:], pattern); ok {
			return text[i : i+n], true
		}
	}
	return "", false
}

// foldPrefixLen reports whether text starts with pattern under simple case
// folding, and how many bytes of text the match covers.
func foldPrefixLen(text, pattern string) (int, bool) {
	n := 0
	for _, pr := range pattern {
		tr, size := utf8.DecodeRuneInString(text[n:])
		if size == 0 || unicode.ToLower(tr) != unicode.ToLower(pr) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func containsBlacklisted(line string) bool {
	for _, token := range providerLineBlacklist {
		if strings.Contains(line, token) {
			return true
		}
	}
	return false
}
