package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"oneclarity/internal/model"
)

// EvidenceCache holds retrieved passages per topic so repeated queries on
// the same topic skip the retrieval service. External data only; nothing
// the progress aggregator reports is ever cached here.
type EvidenceCache interface {
	SetPassages(ctx context.Context, topic string, passages []model.Passage) error
	GetPassages(ctx context.Context, topic string) ([]model.Passage, error)
}

type evidenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEvidenceCache creates a Redis-backed retrieval evidence cache
func NewEvidenceCache(client *redis.Client) EvidenceCache {
	return &evidenceCache{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (c *evidenceCache) passagesKey(topic string) string {
	return fmt.Sprintf("evidence:%s", topic)
}

func (c *evidenceCache) SetPassages(ctx context.Context, topic string, passages []model.Passage) error {
	data, err := json.Marshal(passages)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.passagesKey(topic), data, c.ttl).Err()
}

func (c *evidenceCache) GetPassages(ctx context.Context, topic string) ([]model.Passage, error) {
	data, err := c.client.Get(ctx, c.passagesKey(topic)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var passages []model.Passage
	if err := json.Unmarshal([]byte(data), &passages); err != nil {
		return nil, err
	}
	return passages, nil
}
