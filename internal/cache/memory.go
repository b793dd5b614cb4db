package cache

import (
	"context"
	"sync"

	"oneclarity/internal/model"
)

// In-memory cache implementations for tests and the no-Redis development
// mode. TTLs are not enforced; entries live for the process lifetime.

type memoryQuizCache struct {
	mu   sync.RWMutex
	keys map[int64][]string
}

// NewMemoryQuizCache creates an in-memory quiz answer key cache
func NewMemoryQuizCache() QuizCache {
	return &memoryQuizCache{keys: make(map[int64][]string)}
}

func (c *memoryQuizCache) SetAnswerKey(ctx context.Context, interactionID int64, key []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[interactionID] = append([]string(nil), key...)
	return nil
}

func (c *memoryQuizCache) GetAnswerKey(ctx context.Context, interactionID int64) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.keys[interactionID]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), key...), nil
}

type memoryEvidenceCache struct {
	mu       sync.RWMutex
	passages map[string][]model.Passage
}

// NewMemoryEvidenceCache creates an in-memory retrieval evidence cache
func NewMemoryEvidenceCache() EvidenceCache {
	return &memoryEvidenceCache{passages: make(map[string][]model.Passage)}
}

func (c *memoryEvidenceCache) SetPassages(ctx context.Context, topic string, passages []model.Passage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passages[topic] = append([]model.Passage(nil), passages...)
	return nil
}

func (c *memoryEvidenceCache) GetPassages(ctx context.Context, topic string) ([]model.Passage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	passages, ok := c.passages[topic]
	if !ok {
		return nil, nil
	}
	return append([]model.Passage(nil), passages...), nil
}
