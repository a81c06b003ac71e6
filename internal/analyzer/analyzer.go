// Package analyzer computes lexical similarity, relationship typing, and
// domain-keyword similarity between two text blobs. All functions are pure:
// no I/O, no errors, deterministic output for a given input.
package analyzer

import (
	"fmt"
	"strings"
)

// Relationship category names.
const (
	RelBuildsOn    = "builds_on"
	RelContradicts = "contradicts"
	RelExamples    = "examples"
	RelBridges     = "bridges"
)

// category pairs a relationship type with the trigger phrases that score it.
// The slice order is the tie-break order: when two categories end up with the
// same score, the earlier one wins. Do not reorder.
var categories = []struct {
	name    string
	phrases []string
}{
	{RelBuildsOn, []string{"subset of", "extends", "builds on", "based on", "foundation of", "derived from", "generalizes"}},
	{RelContradicts, []string{"however", "contradicts", "disagrees", "opposes", "conflicts with", "on the contrary", "challenges"}},
	{RelExamples, []string{"for example", "instance", "such as", "case study", "illustrates", "demonstrated by"}},
	{RelBridges, []string{"similar to", "bridges", "connects", "analogous", "parallels", "relates to"}},
}

// oppositionWords feed the contradicts structural bonus: two or more distinct
// hits add 0.7 to that category.
var oppositionWords = []string{"however", "but", "not", "contradicts", "opposes", "disagrees", "conflicts", "wrong"}

// domains holds the fixed keyword lists used by DomainSimilarity. The
// per-domain score is hits divided by list length.
var domains = []struct {
	name     string
	keywords []string
}{
	{"technology", []string{"machine", "learning", "algorithm", "neural", "network", "software", "data", "model"}},
	{"culinary", []string{"cooking", "recipe", "pasta", "sauce", "flavor", "ingredient", "cuisine", "dish"}},
	{"music", []string{"music", "rhythm", "melody", "harmony", "chord", "tempo", "instrument", "song"}},
	{"knowledge", []string{"note", "zettelkasten", "knowledge", "concept", "idea", "thinking", "connection", "insight"}},
}

// Relationship is the result of classifying the semantic relationship
// between two texts.
type Relationship struct {
	Type        string              `json:"type"`
	Confidence  float64             `json:"confidence"`
	Explanation string              `json:"explanation"`
	Scores      map[string]float64  `json:"scores"`
	Matches     map[string][]string `json:"matches,omitempty"`
}

// Similarity returns the Jaccard similarity of the two texts' lowercased
// word sets. Two empty texts are identical (1.0); exactly one empty text
// shares nothing (0.0). No stemming, no stopword removal.
func Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}
	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// DetectRelationship scans the concatenation of both texts for the trigger
// phrases of each category. Every matched phrase adds 0.3 (capped at 1.0),
// then a category-specific structural bonus is applied and the total capped
// again. The highest-scoring category wins; ties go to the earliest category
// in the fixed order, so builds_on wins an all-zero tie.
func DetectRelationship(a, b string) Relationship {
	combined := strings.ToLower(a + " " + b)

	scores := make(map[string]float64, len(categories))
	matches := make(map[string][]string, len(categories))

	for _, c := range categories {
		score := 0.0
		for _, p := range c.phrases {
			if strings.Contains(combined, p) {
				score += 0.3
				matches[c.name] = append(matches[c.name], p)
			}
		}
		if score > 1.0 {
			score = 1.0
		}
		score += structuralBonus(c.name, combined)
		if score > 1.0 {
			score = 1.0
		}
		scores[c.name] = score
	}

	best := categories[0].name
	for _, c := range categories[1:] {
		if scores[c.name] > scores[best] {
			best = c.name
		}
	}

	return Relationship{
		Type:        best,
		Confidence:  scores[best],
		Explanation: explain(best, matches[best]),
		Scores:      scores,
		Matches:     matches,
	}
}

// DomainSimilarity sums, over the fixed domains, the smaller of the two
// texts' keyword hit-rates. The result is capped at 0.5 so domain overlap
// can boost but never dominate a composite score.
func DomainSimilarity(a, b string) float64 {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)

	total := 0.0
	for _, d := range domains {
		ra := hitRate(la, d.keywords)
		rb := hitRate(lb, d.keywords)
		if ra < rb {
			total += ra
		} else {
			total += rb
		}
	}
	if total > 0.5 {
		total = 0.5
	}
	return total
}

func structuralBonus(category, combined string) float64 {
	switch category {
	case RelContradicts:
		hits := 0
		for _, w := range oppositionWords {
			if containsWord(combined, w) {
				hits++
			}
		}
		if hits >= 2 {
			return 0.7
		}
	case RelExamples:
		if strings.Contains(combined, "alphago") && strings.Contains(combined, "reinforcement") {
			return 0.6
		}
	}
	return 0.0
}

func explain(category string, matched []string) string {
	var base string
	switch category {
	case RelBuildsOn:
		base = "one note builds on concepts from the other"
	case RelContradicts:
		base = "the notes present opposing viewpoints"
	case RelExamples:
		base = "one note provides concrete examples for the other"
	case RelBridges:
		base = "the notes bridge related topics"
	}
	if len(matched) == 0 {
		return base + " (no explicit signals found)"
	}
	return fmt.Sprintf("%s (signals: %s)", base, strings.Join(matched, ", "))
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// hitRate returns the fraction of keywords present in text.
func hitRate(text string, keywords []string) float64 {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords))
}

// containsWord reports whether w occurs in text as a whole word.
func containsWord(text, w string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], w)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(w)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
