package suggest

// Scorer is an optional quality scorer that can replace the heuristic
// composite for a pair of texts, e.g. an embedding- or LLM-backed
// implementation. Score returns ok=false to decline a pair, in which case
// the engine falls back to its built-in heuristics. Implementations must
// return scores in [0,1]; the engine clamps out-of-range values.
type Scorer interface {
	Score(source, target string) (score float64, ok bool)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(source, target string) (float64, bool)

// Score implements Scorer.
func (f ScorerFunc) Score(source, target string) (float64, bool) {
	return f(source, target)
}
