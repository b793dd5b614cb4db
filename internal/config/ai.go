package config

import "os"

// GenerationModels defines which Gemini models to use for different tasks
type GenerationModels struct {
	// Explain is for explanation assembly (needs to be fast)
	Explain string `json:"explain"`

	// Quiz is for MCQ generation (quality over speed)
	Quiz string `json:"quiz"`
}

// AIConfig holds configuration for the external generation and retrieval
// collaborators.
type AIConfig struct {
	APIKey    string           `json:"-"` // Never serialize
	BaseURL   string           `json:"baseUrl"`
	Models    GenerationModels `json:"models"`
	TimeoutMS int              `json:"timeoutMs"`

	// RetrievalURL is the base URL of the passage retrieval service.
	// Empty means the deterministic mock retriever is used.
	RetrievalURL string `json:"retrievalUrl"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GenerationModels{
			Explain: getEnv("GEMINI_MODEL_EXPLAIN", "gemini-2.0-flash"),
			Quiz:    getEnv("GEMINI_MODEL_QUIZ", "gemini-2.0-flash"),
		},
		TimeoutMS:    10000, // 10 second default timeout
		RetrievalURL: os.Getenv("RETRIEVAL_URL"),
	}
}

// IsEnabled returns true if the generation API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// RetrievalEnabled returns true if a real retrieval service is configured
func (c *AIConfig) RetrievalEnabled() bool {
	return c.RetrievalURL != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}
