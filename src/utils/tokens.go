package utils

import "strings"

// EstimateTokenCount approximates the token count of English text,
// about one token per four characters, with a small floor so tiny
// inputs still reserve something against the rate budget.
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)

	tokenCount := len(text) / 4
	if tokenCount < 10 {
		tokenCount = 10
	}

	return tokenCount
}
