package extract

import "strings"

// classifyCategory resolves the expense category. A resolved provider name is
// checked against each category's keywords first; otherwise every category is
// scored by keyword occurrences in the normalized text. Ties break in table
// order, and a zero score falls back to CategoryOther.
func classifyCategory(provider, normalized string) Category {
	if provider != "" {
		name := strings.ToLower(provider)
		for _, entry := range categoryKeywords {
			for _, keyword := range entry.Keywords {
				if strings.Contains(name, keyword) {
					return entry.Category
				}
			}
		}
	}

	best := CategoryOther
	bestScore := 0
	for _, entry := range categoryKeywords {
		score := 0
		for _, keyword := range entry.Keywords {
			score += strings.Count(normalized, keyword)
		}
		if score > bestScore {
			best = entry.Category
			bestScore = score
		}
	}
	return best
}
