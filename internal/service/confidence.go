package service

import (
	"sort"

	"oneclarity/internal/model"
)

const (
	defaultTopK      = 3
	defaultThreshold = 0.55
)

// ConfidenceEvaluator turns retrieval evidence into a confidence verdict:
// the mean of the top-k similarity scores and whether it clears the
// grounding threshold. Pure; safe for unbounded parallel use.
type ConfidenceEvaluator struct {
	TopK      int
	Threshold float64
}

// NewConfidenceEvaluator creates an evaluator, applying defaults for
// zero-valued settings.
func NewConfidenceEvaluator(topK int, threshold float64) *ConfidenceEvaluator {
	if topK <= 0 {
		topK = defaultTopK
	}
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &ConfidenceEvaluator{TopK: topK, Threshold: threshold}
}

// Evaluate scores the evidence. Empty evidence degrades to an ungrounded
// zero-score verdict rather than failing. The retrieval service returns
// passages ranked best-first, but the scores are re-sorted here instead of
// trusting that ordering.
func (e *ConfidenceEvaluator) Evaluate(evidence []model.Passage) model.ConfidenceVerdict {
	if len(evidence) == 0 {
		return model.ConfidenceVerdict{Score: 0, Grounded: false}
	}

	scores := make([]float64, len(evidence))
	for i, p := range evidence {
		scores[i] = p.Score
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	k := e.TopK
	if len(scores) < k {
		k = len(scores)
	}
	var sum float64
	for _, s := range scores[:k] {
		sum += s
	}
	score := sum / float64(k)

	return model.ConfidenceVerdict{
		Score:    score,
		Grounded: score >= e.Threshold,
	}
}
