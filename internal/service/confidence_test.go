package service

import (
	"math"
	"testing"

	"oneclarity/internal/model"
)

func passages(scores ...float64) []model.Passage {
	ps := make([]model.Passage, len(scores))
	for i, s := range scores {
		ps[i] = model.Passage{Chapter: "ch", Text: "text", Score: s}
	}
	return ps
}

func TestEvaluateEmptyEvidence(t *testing.T) {
	e := NewConfidenceEvaluator(3, 0.55)
	v := e.Evaluate(nil)
	if v.Score != 0 {
		t.Errorf("expected score 0, got %v", v.Score)
	}
	if v.Grounded {
		t.Error("expected ungrounded verdict for empty evidence")
	}
}

func TestEvaluateScores(t *testing.T) {
	tests := []struct {
		name         string
		topK         int
		threshold    float64
		scores       []float64
		wantScore    float64
		wantGrounded bool
	}{
		{"single passage above threshold", 3, 0.55, []float64{0.9}, 0.9, true},
		{"single passage below threshold", 3, 0.55, []float64{0.3}, 0.3, false},
		{"mean of top k", 2, 0.55, []float64{0.9, 0.7, 0.1}, 0.8, true},
		{"fewer passages than k", 5, 0.55, []float64{0.6, 0.4}, 0.5, false},
		{"exactly at threshold is grounded", 1, 0.55, []float64{0.55}, 0.55, true},
		{"unsorted input is sorted first", 3, 0.55, []float64{0.1, 0.9, 0.5, 0.7}, 0.7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewConfidenceEvaluator(tt.topK, tt.threshold)
			v := e.Evaluate(passages(tt.scores...))
			if math.Abs(v.Score-tt.wantScore) > 1e-9 {
				t.Errorf("expected score %v, got %v", tt.wantScore, v.Score)
			}
			if v.Grounded != tt.wantGrounded {
				t.Errorf("expected grounded=%v, got %v", tt.wantGrounded, v.Grounded)
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	e := NewConfidenceEvaluator(2, 0.55)
	evidence := passages(0.2, 0.8, 0.5)
	first := e.Evaluate(evidence)
	for i := 0; i < 10; i++ {
		if got := e.Evaluate(evidence); got != first {
			t.Fatalf("verdict changed across calls: %v vs %v", got, first)
		}
	}
	// Input order must be untouched
	if evidence[0].Score != 0.2 || evidence[2].Score != 0.5 {
		t.Error("Evaluate mutated its input")
	}
}

func TestEvaluatorDefaults(t *testing.T) {
	e := NewConfidenceEvaluator(0, 0)
	if e.TopK != 3 {
		t.Errorf("expected default top-k 3, got %d", e.TopK)
	}
	if e.Threshold != 0.55 {
		t.Errorf("expected default threshold 0.55, got %v", e.Threshold)
	}
}
