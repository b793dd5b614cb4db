package service

import (
	"errors"
	"testing"

	"oneclarity/internal/model"
)

func testCurriculum() []string {
	return []string{"matrices", "probability", "integrals", "application of integrals"}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		query string
		want  model.Intent
	}{
		{"give me a quiz on matrices", model.IntentQuizRequest},
		{"I want to practice probability", model.IntentQuizRequest},
		{"some MCQ questions please", model.IntentQuizRequest},
		{"explain determinants", model.IntentFactual},
		{"what is a matrix", model.IntentFactual},
		{"I am stuck on integrals", model.IntentFactual},
		{"why does this converge", model.IntentFactual},
		{"matrices revision", model.IntentGeneral},
		{"", model.IntentGeneral},
		// quiz keywords win over factual ones
		{"quiz me, I don't understand matrices", model.IntentQuizRequest},
	}

	c := NewIntentClassifier(testCurriculum())
	for _, tt := range tests {
		if got := c.Classify(tt.query); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.query, got, tt.want)
		}
	}
}

func TestResolveTopic(t *testing.T) {
	c := NewIntentClassifier(testCurriculum())

	tests := []struct {
		name    string
		query   string
		topic   string
		want    string
		wantErr bool
	}{
		{"explicit topic", "", "matrices", "matrices", false},
		{"explicit topic is normalized", "", "  Matrices ", "matrices", false},
		{"explicit topic outside curriculum", "", "goroutines", "", true},
		{"topic inferred from query", "explain probability to me", "", "probability", false},
		{"longest curriculum match wins", "help with application of integrals", "", "application of integrals", false},
		{"query matching nothing", "explain goroutines", "", "", true},
		{"empty query and topic", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ResolveTopic(tt.query, tt.topic)
			if tt.wantErr {
				if !errors.Is(err, model.ErrInvalidTopic) {
					t.Fatalf("expected ErrInvalidTopic, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolved %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveTopicEmptyCurriculum(t *testing.T) {
	c := NewIntentClassifier(nil)

	got, err := c.ResolveTopic("", "Quantum Field Theory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "quantum field theory" {
		t.Errorf("resolved %q, want %q", got, "quantum field theory")
	}

	got, err = c.ResolveTopic("black holes", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "black holes" {
		t.Errorf("resolved %q, want %q", got, "black holes")
	}

	if _, err := c.ResolveTopic("", ""); !errors.Is(err, model.ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic for empty input, got %v", err)
	}
}
