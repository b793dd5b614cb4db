package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds service configuration, loaded from the environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	// ConfidenceThreshold is the minimum mean similarity to trust
	// grounding.
	ConfidenceThreshold float64

	// RetrievalTopK is how many top passages feed the confidence score.
	RetrievalTopK int

	// QuizSize is how many MCQs a quiz contains.
	QuizSize int

	// Curriculum is the set of valid topics. Empty means any non-empty
	// topic is accepted.
	Curriculum []string
}

// defaultCurriculum matches the chapter list of the bundled course
// material (Class 12 mathematics, chapters 1-13).
var defaultCurriculum = []string{
	"relations and functions",
	"inverse trigonometric function",
	"matrices",
	"determinants",
	"continuity and differentiability",
	"application of derivatives",
	"integrals",
	"application of integrals",
	"differential equations",
	"vector algebra",
	"three dimensional geometry",
	"linear programming",
	"probability",
}

// Load reads configuration from the environment with defaults.
// MONGO_URI and REDIS_ADDR left empty select the in-memory stores.
func Load() *Config {
	cfg := &Config{
		MongoURI:            os.Getenv("MONGO_URI"),
		MongoDatabase:       getEnv("MONGO_DB", "oneclarity"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		ConfidenceThreshold: getEnvFloat("CONFIDENCE_THRESHOLD", 0.55),
		RetrievalTopK:       getEnvInt("RETRIEVAL_TOP_K", 3),
		QuizSize:            getEnvInt("QUIZ_SIZE", 3),
		Curriculum:          defaultCurriculum,
	}

	if raw := os.Getenv("CURRICULUM"); raw != "" {
		topics := []string{}
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		cfg.Curriculum = topics
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
