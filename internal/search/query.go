package search

import (
	"strings"
	"unicode/utf8"
)

// DefaultStopWords are the low-information words dropped from a query before
// term scoring.
var DefaultStopWords = []string{"for", "and", "the", "in", "of", "to", "a", "with", "is"}

// Query is a normalized search query.
type Query struct {
	// Phrase is the whole lowercased, trimmed query.
	Phrase string
	// Terms are the whitespace-separated tokens of Phrase that survived
	// length and stop-word filtering, in query order.
	Terms []string
}

// Blank reports whether the query has no effective terms. A blank query
// leaves the catalog order untouched.
func (q Query) Blank() bool {
	return len(q.Terms) == 0
}

// parseQuery lowercases and trims raw, then keeps the terms longer than one
// character that are not stop words.
func parseQuery(raw string, stopWords map[string]struct{}) Query {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Query{}
	}

	fields := strings.Fields(phrase)
	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if runeLen(field) <= 1 {
			continue
		}
		if _, stop := stopWords[field]; stop {
			continue
		}
		terms = append(terms, field)
	}

	return Query{Phrase: phrase, Terms: terms}
}

// Words splits text into its word-character runs. Word characters are ASCII
// letters, digits and underscore; everything else separates words.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !isWordChar(r)
	})
}

func isWordChar(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
