package search

import (
	"cmp"
	"slices"
	"strings"
)

// Document is the text of a catalog entry that takes part in ranking.
type Document struct {
	ID          string
	Name        string
	Category    string
	Description string
}

// Searchable is implemented by anything that can be ranked.
type Searchable interface {
	SearchDocument() Document
}

// Hit pairs the position of a document in the ranked input with its score.
type Hit struct {
	Index int
	Score int
}

// Ranker scores documents against queries. A Ranker holds only read-only
// tables and is safe for concurrent use.
type Ranker struct {
	weights   Weights
	stopWords map[string]struct{}
	rules     []compiledRule
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWeights replaces the score weights.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// WithStopWords replaces the stop-word list.
func WithStopWords(words []string) Option {
	return func(r *Ranker) {
		r.stopWords = wordSet(words)
	}
}

// WithIntentRules replaces the intent rule table.
func WithIntentRules(rules []IntentRule) Option {
	return func(r *Ranker) {
		r.rules = compileRules(rules)
	}
}

// NewRanker creates a ranker using the default tables unless overridden.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		weights:   DefaultWeights,
		stopWords: wordSet(DefaultStopWords),
		rules:     compileRules(DefaultIntentRules),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is the ranker used by Rank.
var Default = NewRanker()

// Rank returns items ordered by relevance to query using the Default ranker.
// Items that do not match are dropped. A query that is empty, or consists
// only of stop words and one-character tokens, returns items unchanged.
func Rank[T Searchable](items []T, query string) []T {
	return RankWith(Default, items, query)
}

// RankWith is Rank with an explicit ranker.
func RankWith[T Searchable](r *Ranker, items []T, query string) []T {
	docs := make([]Document, len(items))
	for i, item := range items {
		docs[i] = item.SearchDocument()
	}

	hits := r.Hits(query, docs)
	ranked := make([]T, len(hits))
	for i, hit := range hits {
		ranked[i] = items[hit.Index]
	}
	return ranked
}

// ParseQuery normalizes raw using the ranker's stop words.
func (r *Ranker) ParseQuery(raw string) Query {
	return parseQuery(raw, r.stopWords)
}

// Hits scores every document and returns the matching ones ordered by
// descending score, ties kept in input order. For a blank query every
// document is returned in input order with a zero score.
func (r *Ranker) Hits(query string, docs []Document) []Hit {
	q := r.ParseQuery(query)
	if q.Blank() {
		hits := make([]Hit, len(docs))
		for i := range docs {
			hits[i] = Hit{Index: i}
		}
		return hits
	}

	hits := make([]Hit, 0, len(docs))
	for i := range docs {
		if score := r.Score(q, docs[i]); score > 0 {
			hits = append(hits, Hit{Index: i, Score: score})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return hits
}

// Score computes the relevance of doc for an already parsed query.
func (r *Ranker) Score(q Query, doc Document) int {
	if q.Blank() {
		return 0
	}

	d := prepare(doc)
	w := r.weights
	score := 0

	// Exact phrase
	if strings.Contains(d.name, q.Phrase) {
		score += w.PhraseName
	}
	if strings.Contains(d.category, q.Phrase) {
		score += w.PhraseCategory
	}
	if strings.Contains(d.description, q.Phrase) {
		score += w.PhraseDescription
	}

	for _, term := range q.Terms {
		if strings.Contains(d.name, term) {
			score += w.TermName
		}
		if strings.Contains(d.category, term) {
			score += w.TermCategory
		}
		if strings.Contains(d.description, term) {
			score += w.TermDescription
		}

		if runeLen(term) > w.FuzzyMinLength && d.fuzzyMatch(term, w) {
			score += w.Fuzzy
		}

		for _, rule := range r.rules {
			if rule.applies(term, d) {
				score += rule.bonus
			}
		}
	}

	return score
}

// preparedDoc holds the lowercased views of a document used while scoring.
type preparedDoc struct {
	name        string
	category    string
	description string
	words       []string
}

func prepare(doc Document) *preparedDoc {
	d := &preparedDoc{
		name:        strings.ToLower(doc.Name),
		category:    strings.ToLower(doc.Category),
		description: strings.ToLower(doc.Description),
	}
	d.words = Words(d.name + " " + d.category + " " + d.description)
	return d
}

func (d *preparedDoc) field(f Field) string {
	switch f {
	case FieldName:
		return d.name
	case FieldCategory:
		return d.category
	case FieldDescription:
		return d.description
	}
	return ""
}

// fuzzyMatch reports whether any product word is a near miss of term.
func (d *preparedDoc) fuzzyMatch(term string, w Weights) bool {
	for _, word := range d.words {
		if withinDistance(term, word, w.FuzzyMaxDelta, w.FuzzyMaxDist) {
			return true
		}
	}
	return false
}
