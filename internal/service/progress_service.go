package service

import (
	"context"
	"fmt"
	"math"

	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

// ProgressService derives per-topic progress summaries on demand from the
// student model store. Nothing is cached; a summary always reflects the
// store at call time.
type ProgressService struct {
	progressRepo repository.ProgressRepo
}

// NewProgressService creates a new progress service
func NewProgressService(progressRepo repository.ProgressRepo) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// Summarize returns accuracy, attempts and strength per topic for a
// student. Accuracy is a rounded percentage and is omitted, not zero, for
// topics without attempts.
func (s *ProgressService) Summarize(ctx context.Context, studentID string) (map[string]model.TopicProgress, error) {
	records, err := s.progressRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list topic records: %w", err)
	}

	summary := make(map[string]model.TopicProgress, len(records))
	for _, record := range records {
		progress := model.TopicProgress{
			Attempts: record.Attempts,
			Strength: record.Strength(),
		}
		if record.Attempts > 0 {
			pct := int(math.Round(100 * record.Accuracy()))
			progress.Accuracy = &pct
		}
		summary[record.Topic] = progress
	}
	return summary, nil
}
