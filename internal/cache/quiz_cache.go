package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuizCache holds the answer keys produced at quiz generation time, keyed
// by interaction id, until the student submits. A miss is not an error;
// submission then falls back to the passed-through key.
type QuizCache interface {
	SetAnswerKey(ctx context.Context, interactionID int64, key []string) error
	GetAnswerKey(ctx context.Context, interactionID int64) ([]string, error)
}

type quizCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuizCache creates a Redis-backed quiz answer key cache
func NewQuizCache(client *redis.Client) QuizCache {
	return &quizCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *quizCache) answerKey(interactionID int64) string {
	return fmt.Sprintf("interaction:%d:answerkey", interactionID)
}

func (c *quizCache) SetAnswerKey(ctx context.Context, interactionID int64, key []string) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.answerKey(interactionID), data, c.ttl).Err()
}

func (c *quizCache) GetAnswerKey(ctx context.Context, interactionID int64) ([]string, error) {
	data, err := c.client.Get(ctx, c.answerKey(interactionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var key []string
	if err := json.Unmarshal([]byte(data), &key); err != nil {
		return nil, err
	}
	return key, nil
}
