package search

import "strings"

// Field names a text field of a Document.
type Field string

const (
	FieldName        Field = "name"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
)

// Weights are the additive score contributions of each kind of match.
type Weights struct {
	PhraseName        int // whole query inside the name
	PhraseCategory    int // whole query inside the category
	PhraseDescription int // whole query inside the description

	TermName        int // a term inside the name
	TermCategory    int // a term inside the category
	TermDescription int // a term inside the description

	Fuzzy          int // a term within edit distance of some product word
	FuzzyMinLength int // terms must be longer than this to be fuzzy matched
	FuzzyMaxDelta  int // max length difference between term and word
	FuzzyMaxDist   int // max edit distance between term and word
}

// DefaultWeights favour whole-phrase hits over single terms and name hits
// over category and description hits.
var DefaultWeights = Weights{
	PhraseName:        50,
	PhraseCategory:    40,
	PhraseDescription: 20,

	TermName:        15,
	TermCategory:    10,
	TermDescription: 5,

	Fuzzy:          4,
	FuzzyMinLength: 3,
	FuzzyMaxDelta:  2,
	FuzzyMaxDist:   2,
}

// FieldCheck matches when Field contains Needle. Needles are lowercase.
type FieldCheck struct {
	Field  Field
	Needle string
}

// IntentRule awards Bonus for a term in Keywords when any of Checks matches
// the product.
type IntentRule struct {
	Name     string
	Keywords []string
	Checks   []FieldCheck
	Bonus    int
}

// DefaultIntentRules map shopper vocabulary onto the catalog sections that
// usually satisfy it.
var DefaultIntentRules = []IntentRule{
	{
		Name:     "skin-care",
		Keywords: []string{"skin", "face", "hair", "glow", "beauty", "moisturizing", "dry", "soft", "smooth"},
		Checks: []FieldCheck{
			{Field: FieldCategory, Needle: "oil"},
			{Field: FieldDescription, Needle: "skin"},
			{Field: FieldDescription, Needle: "hair"},
		},
		Bonus: 8,
	},
	{
		Name:     "energy",
		Keywords: []string{"energy", "power", "strength", "stamina", "immune", "immunity", "weakness", "vitality"},
		Checks: []FieldCheck{
			{Field: FieldCategory, Needle: "shilajit"},
			{Field: FieldName, Needle: "shilajit"},
		},
		Bonus: 8,
	},
	{
		Name:     "snack",
		Keywords: []string{"snack", "eat", "hungry", "diet", "healthy", "food", "munch"},
		Checks: []FieldCheck{
			{Field: FieldCategory, Needle: "dry fruits"},
			{Field: FieldCategory, Needle: "natural foods"},
		},
		Bonus: 8,
	},
	{
		Name:     "pain-relief",
		Keywords: []string{"pain", "joint", "relief", "muscle", "relax"},
		Checks: []FieldCheck{
			{Field: FieldCategory, Needle: "oil"},
			{Field: FieldName, Needle: "massage"},
			{Field: FieldName, Needle: "shilajit"},
		},
		Bonus: 8,
	},
}

// compiledRule is an IntentRule with its keywords indexed for lookup.
type compiledRule struct {
	keywords map[string]struct{}
	checks   []FieldCheck
	bonus    int
}

func compileRules(rules []IntentRule) []compiledRule {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		checks := make([]FieldCheck, len(rule.Checks))
		for i, check := range rule.Checks {
			checks[i] = FieldCheck{Field: check.Field, Needle: strings.ToLower(check.Needle)}
		}
		compiled = append(compiled, compiledRule{
			keywords: wordSet(rule.Keywords),
			checks:   checks,
			bonus:    rule.Bonus,
		})
	}
	return compiled
}

// applies reports whether the rule fires for term against doc.
func (r compiledRule) applies(term string, doc *preparedDoc) bool {
	if _, ok := r.keywords[term]; !ok {
		return false
	}
	for _, check := range r.checks {
		if strings.Contains(doc.field(check.Field), check.Needle) {
			return true
		}
	}
	return false
}
