package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CONFIDENCE_THRESHOLD", "")
	t.Setenv("RETRIEVAL_TOP_K", "")
	t.Setenv("QUIZ_SIZE", "")
	t.Setenv("CURRICULUM", "")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Errorf("port = %s", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "oneclarity" {
		t.Errorf("database = %s", cfg.MongoDatabase)
	}
	if cfg.ConfidenceThreshold != 0.55 {
		t.Errorf("threshold = %v", cfg.ConfidenceThreshold)
	}
	if cfg.RetrievalTopK != 3 || cfg.QuizSize != 3 {
		t.Errorf("topK=%d quizSize=%d", cfg.RetrievalTopK, cfg.QuizSize)
	}
	if len(cfg.Curriculum) != 13 {
		t.Errorf("curriculum has %d topics, want 13", len(cfg.Curriculum))
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "0.7")
	t.Setenv("RETRIEVAL_TOP_K", "5")
	t.Setenv("QUIZ_SIZE", "10")
	t.Setenv("CURRICULUM", "algebra, geometry , ,calculus")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.7 {
		t.Errorf("threshold = %v", cfg.ConfidenceThreshold)
	}
	if cfg.RetrievalTopK != 5 || cfg.QuizSize != 10 {
		t.Errorf("topK=%d quizSize=%d", cfg.RetrievalTopK, cfg.QuizSize)
	}
	want := []string{"algebra", "geometry", "calculus"}
	if len(cfg.Curriculum) != len(want) {
		t.Fatalf("curriculum = %v", cfg.Curriculum)
	}
	for i, topic := range want {
		if cfg.Curriculum[i] != topic {
			t.Errorf("curriculum[%d] = %q, want %q", i, cfg.Curriculum[i], topic)
		}
	}
}

func TestLoadBadNumbersFallBack(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "not-a-number")
	t.Setenv("RETRIEVAL_TOP_K", "many")

	cfg := Load()
	if cfg.ConfidenceThreshold != 0.55 {
		t.Errorf("threshold = %v, want default", cfg.ConfidenceThreshold)
	}
	if cfg.RetrievalTopK != 3 {
		t.Errorf("topK = %d, want default", cfg.RetrievalTopK)
	}
}

func TestModelEndpoint(t *testing.T) {
	cfg := &AIConfig{BaseURL: "https://example.test/models"}
	got := cfg.ModelEndpoint("gemini-2.0-flash")
	want := "https://example.test/models/gemini-2.0-flash:generateContent"
	if got != want {
		t.Errorf("endpoint = %q, want %q", got, want)
	}
}
