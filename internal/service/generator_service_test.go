package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"oneclarity/internal/config"
	"oneclarity/internal/model"
)

func newMockGenerator(t *testing.T) *GeneratorService {
	t.Helper()
	return NewGeneratorService(&config.AIConfig{TimeoutMS: 1000})
}

func TestGenerateExplanationFromPassages(t *testing.T) {
	g := newMockGenerator(t)

	got := g.GenerateExplanation(context.Background(), "matrices", passages(0.8, 0.7))
	if got == "" || got == "No explanation found." {
		t.Errorf("expected assembled text, got %q", got)
	}

	empty := g.GenerateExplanation(context.Background(), "matrices", nil)
	if empty != "No explanation found." {
		t.Errorf("empty evidence: got %q", empty)
	}
}

func TestAssembleExplanationBudget(t *testing.T) {
	long := strings.Repeat("x", 700)
	got := assembleExplanation([]model.Passage{
		{Text: long, Score: 0.9},
		{Text: long, Score: 0.8},
		{Text: long, Score: 0.7},
	})
	if len(got) > maxExplanationChars {
		t.Errorf("explanation length %d exceeds budget %d", len(got), maxExplanationChars)
	}
	if !strings.HasPrefix(got, "x") {
		t.Errorf("best passage missing from explanation")
	}

	blank := assembleExplanation([]model.Passage{{Text: "   "}})
	if blank != "No explanation found." {
		t.Errorf("whitespace-only passages: got %q", blank)
	}
}

func TestMockQuizShape(t *testing.T) {
	g := newMockGenerator(t)

	quiz := g.GenerateQuiz(context.Background(), "matrices", model.DifficultyHard, 3, passages(0.8, 0.7, 0.6))
	if len(quiz) != 3 {
		t.Fatalf("got %d questions, want 3", len(quiz))
	}

	for i, q := range quiz {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options", i, len(q.Options))
		}
		if q.Difficulty != model.DifficultyHard {
			t.Errorf("question %d difficulty = %s", i, q.Difficulty)
		}
		if len(q.Answer) != 1 || q.Answer[0] < 'A' || q.Answer[0] > 'D' {
			t.Errorf("question %d answer letter = %q", i, q.Answer)
		}
		// the answer letter must point at the correct option
		idx := int(q.Answer[0] - 'A')
		if q.Options[idx] != q.Explanation {
			t.Errorf("question %d: option %s is %q, explanation %q", i, q.Answer, q.Options[idx], q.Explanation)
		}
	}
}

func TestMockQuizIsDeterministic(t *testing.T) {
	g := newMockGenerator(t)
	evidence := passages(0.8, 0.7)

	first := g.GenerateQuiz(context.Background(), "matrices", model.DifficultyMedium, 4, evidence)
	second := g.GenerateQuiz(context.Background(), "matrices", model.DifficultyMedium, 4, evidence)
	if !reflect.DeepEqual(first, second) {
		t.Error("mock quiz differs across identical calls")
	}
}

func TestAnswerKey(t *testing.T) {
	quiz := []model.QuizQuestion{
		{Answer: "A"},
		{Answer: "C"},
		{Answer: "B"},
	}
	if got := AnswerKey(quiz); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Errorf("AnswerKey = %v", got)
	}
	if got := AnswerKey(nil); len(got) != 0 {
		t.Errorf("AnswerKey(nil) = %v", got)
	}
}

func TestRetrieveMockIsGroundedByDefault(t *testing.T) {
	c := NewRetrievalClient(&config.AIConfig{TimeoutMS: 1000})

	evidence, err := c.Retrieve(context.Background(), "matrices", 3)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(evidence) != 3 {
		t.Fatalf("got %d passages, want 3", len(evidence))
	}
	for i := 1; i < len(evidence); i++ {
		if evidence[i].Score > evidence[i-1].Score {
			t.Errorf("passages not ranked: %v after %v", evidence[i].Score, evidence[i-1].Score)
		}
	}

	verdict := NewConfidenceEvaluator(3, 0.55).Evaluate(evidence)
	if !verdict.Grounded {
		t.Errorf("mock corpus must ground the default threshold, score %v", verdict.Score)
	}
}
