package router

import (
	"strings"
	"unicode"
)

// Stopwords carry no routing signal and are dropped before scoring.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"if": true, "then": true, "else": true, "of": true, "to": true, "in": true,
	"on": true, "at": true, "by": true, "for": true, "with": true, "about": true,
	"as": true, "is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "i": true, "you": true,
	"he": true, "she": true, "we": true, "they": true, "me": true, "him": true,
	"her": true, "us": true, "them": true, "my": true, "your": true, "their": true,
	"what": true, "which": true, "who": true, "do": true, "does": true,
	"did": true, "have": true, "has": true, "had": true, "not": true, "no": true,
	"so": true, "can": true, "will": true, "just": true, "from": true,
}

// AssessComplexity maps text to a heuristic complexity score in [0,1], used
// purely as a routing signal. Longer, more lexically varied text scores
// higher; empty or all-stopword text scores zero on the diversity terms.
func AssessComplexity(query string) float64 {
	if len(query) == 0 {
		return 0.0
	}

	tokens := tokenize(query)

	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !stopwords[tok] {
			filtered = append(filtered, tok)
		}
	}

	var lexicalDiversity, avgWordLength float64
	if len(filtered) > 0 {
		unique := make(map[string]bool, len(filtered))
		totalLen := 0
		for _, tok := range filtered {
			unique[tok] = true
			totalLen += len(tok)
		}
		lexicalDiversity = float64(len(unique)) / float64(len(filtered))
		avgWordLength = float64(totalLen) / float64(len(filtered))
	}

	specialChars := 0
	digits := 0
	runeCount := 0
	for _, r := range query {
		runeCount++
		if unicode.IsDigit(r) {
			digits++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			switch r {
			case ' ', '.', ',', '!', '?':
			default:
				specialChars++
			}
		}
	}

	complexity := (float64(len(filtered))/100.0)*0.3 +
		lexicalDiversity*0.3 +
		(avgWordLength/10.0)*0.2 +
		(float64(specialChars)/float64(runeCount))*0.1 +
		(float64(digits)/float64(runeCount))*0.1

	if complexity > 1.0 {
		complexity = 1.0
	}
	return complexity
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
