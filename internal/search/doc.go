// Package search ranks catalog entries against free-text shopper queries.
//
// Ranking re-scores the whole catalog on every call; there is no index.
// Each document earns additive integer points for:
//
//   - the whole query appearing in its name, category or description
//   - each query term appearing in those fields
//   - each longer term being within a small edit distance of one of its words
//   - intent rules that map shopper vocabulary ("stamina", "snack") onto
//     catalog sections
//
// Documents scoring zero are dropped and the rest are sorted by score,
// keeping input order among equal scores.
//
// # Usage
//
//	ranked := search.Rank(products, "oil for dry skin")
//
// Custom tables:
//
//	r := search.NewRanker(search.WithStopWords([]string{"the", "my"}))
//	ranked := search.RankWith(r, products, "my energy")
package search
