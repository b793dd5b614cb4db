package service

import (
	"sort"
	"strings"

	"oneclarity/internal/model"
)

// Keyword lists for intent detection. Quiz keywords are checked first: a
// query like "quiz me, I don't understand matrices" is an explicit
// request for practice.
var (
	quizKeywords    = []string{"quiz", "practice", "test", "exercise", "questions", "mcq"}
	factualKeywords = []string{"explain", "understand", "stuck", "help", "why", "how", "define", "what is"}
)

// IntentClassifier detects query intent from keywords and resolves topics
// against the configured curriculum.
type IntentClassifier struct {
	// curriculum topics, normalized, longest first so that the most
	// specific topic wins a substring match deterministically
	topics []string
	known  map[string]bool
}

// NewIntentClassifier creates a classifier for the given curriculum. An
// empty curriculum accepts any non-empty topic.
func NewIntentClassifier(curriculum []string) *IntentClassifier {
	c := &IntentClassifier{known: make(map[string]bool)}
	for _, t := range curriculum {
		t = NormalizeTopic(t)
		if t == "" || c.known[t] {
			continue
		}
		c.known[t] = true
		c.topics = append(c.topics, t)
	}
	sort.Slice(c.topics, func(i, j int) bool {
		if len(c.topics[i]) != len(c.topics[j]) {
			return len(c.topics[i]) > len(c.topics[j])
		}
		return c.topics[i] < c.topics[j]
	})
	return c
}

// NormalizeTopic canonicalizes a topic for matching
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// Classify returns the detected intent of a query
func (c *IntentClassifier) Classify(query string) model.Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, k := range quizKeywords {
		if strings.Contains(q, k) {
			return model.IntentQuizRequest
		}
	}
	for _, k := range factualKeywords {
		if strings.Contains(q, k) {
			return model.IntentFactual
		}
	}
	return model.IntentGeneral
}

// ResolveTopic returns the normalized curriculum topic for a request: the
// explicit topic when given, otherwise the best curriculum match inside
// the query text. A topic outside the curriculum, or a query matching
// nothing, is model.ErrInvalidTopic.
func (c *IntentClassifier) ResolveTopic(query, topic string) (string, error) {
	if topic != "" {
		t := NormalizeTopic(topic)
		if t == "" || !c.accepts(t) {
			return "", model.ErrInvalidTopic
		}
		return t, nil
	}

	q := strings.ToLower(query)
	for _, t := range c.topics {
		if strings.Contains(q, t) {
			return t, nil
		}
	}

	// No curriculum configured: the query itself names the topic
	if len(c.topics) == 0 {
		if t := NormalizeTopic(query); t != "" {
			return t, nil
		}
	}

	return "", model.ErrInvalidTopic
}

func (c *IntentClassifier) accepts(normalized string) bool {
	if len(c.topics) == 0 {
		return true
	}
	return c.known[normalized]
}
