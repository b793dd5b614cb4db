package cache

import (
	"context"
	"reflect"
	"testing"

	"oneclarity/internal/model"
)

func TestMemoryQuizCache(t *testing.T) {
	c := NewMemoryQuizCache()
	ctx := context.Background()

	key, err := c.GetAnswerKey(ctx, 1)
	if err != nil || key != nil {
		t.Fatalf("expected nil,nil on miss, got %v, %v", key, err)
	}

	if err := c.SetAnswerKey(ctx, 1, []string{"A", "C", "B"}); err != nil {
		t.Fatalf("SetAnswerKey failed: %v", err)
	}
	key, err = c.GetAnswerKey(ctx, 1)
	if err != nil {
		t.Fatalf("GetAnswerKey failed: %v", err)
	}
	if !reflect.DeepEqual(key, []string{"A", "C", "B"}) {
		t.Errorf("key = %v", key)
	}

	// the cache must hold its own copy
	key[0] = "Z"
	again, _ := c.GetAnswerKey(ctx, 1)
	if again[0] != "A" {
		t.Error("mutating a returned key leaked into the cache")
	}
}

func TestMemoryEvidenceCache(t *testing.T) {
	c := NewMemoryEvidenceCache()
	ctx := context.Background()

	passages, err := c.GetPassages(ctx, "matrices")
	if err != nil || passages != nil {
		t.Fatalf("expected nil,nil on miss, got %v, %v", passages, err)
	}

	stored := []model.Passage{
		{Chapter: "matrices", Text: "a matrix is a rectangular array", Score: 0.8},
		{Chapter: "matrices", Text: "matrix multiplication is associative", Score: 0.7},
	}
	if err := c.SetPassages(ctx, "matrices", stored); err != nil {
		t.Fatalf("SetPassages failed: %v", err)
	}

	got, err := c.GetPassages(ctx, "matrices")
	if err != nil {
		t.Fatalf("GetPassages failed: %v", err)
	}
	if !reflect.DeepEqual(got, stored) {
		t.Errorf("passages = %+v", got)
	}

	got[0].Score = 0
	again, _ := c.GetPassages(ctx, "matrices")
	if again[0].Score != 0.8 {
		t.Error("mutating returned passages leaked into the cache")
	}

	if other, _ := c.GetPassages(ctx, "probability"); other != nil {
		t.Errorf("unexpected passages for another topic: %v", other)
	}
}
