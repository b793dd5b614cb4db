package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

// Difficulty progression streaks: promote after three correct in a row,
// demote after two incorrect in a row.
const (
	promoteStreak = 3
	demoteStreak  = 2
)

// StudentService owns the per-student, per-topic performance model.
// Updates for the same (student, topic) key are serialized through a
// per-key mutex; different keys never block each other.
type StudentService struct {
	progressRepo repository.ProgressRepo
	locks        sync.Map // (student, topic) key -> *sync.Mutex
}

// NewStudentService creates a new student model service
func NewStudentService(progressRepo repository.ProgressRepo) *StudentService {
	return &StudentService{progressRepo: progressRepo}
}

func (s *StudentService) keyLock(studentID, topic string) *sync.Mutex {
	key := studentID + "\x00" + topic
	lock, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetOrCreate returns the record for (studentID, topic), lazily creating
// the default record on first contact. Unknown students are never an
// error.
func (s *StudentService) GetOrCreate(ctx context.Context, studentID, topic string) (*model.StudentTopicRecord, error) {
	record, err := s.progressRepo.Get(ctx, studentID, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic record: %w", err)
	}
	if record != nil {
		return record, nil
	}
	return model.NewStudentTopicRecord(studentID, topic), nil
}

// RecordAnswer applies one answer outcome to the record: counters, streaks
// and the difficulty progression rule. Atomic per (studentID, topic).
func (s *StudentService) RecordAnswer(ctx context.Context, studentID, topic string, wasCorrect bool) (*model.StudentTopicRecord, error) {
	lock := s.keyLock(studentID, topic)
	lock.Lock()
	defer lock.Unlock()

	record, err := s.GetOrCreate(ctx, studentID, topic)
	if err != nil {
		return nil, err
	}

	record.Attempts++
	if wasCorrect {
		record.Correct++
		record.ConsecutiveCorrect++
		record.ConsecutiveIncorrect = 0
	} else {
		record.ConsecutiveIncorrect++
		record.ConsecutiveCorrect = 0
	}

	// Promotion and demotion saturate at the boundaries. The streak
	// counter resets only when the level actually changes, so a streak
	// at a boundary keeps counting.
	if record.ConsecutiveCorrect >= promoteStreak {
		if next := record.CurrentDifficulty.Promote(); next != record.CurrentDifficulty {
			record.CurrentDifficulty = next
			record.ConsecutiveCorrect = 0
		}
	}
	if record.ConsecutiveIncorrect >= demoteStreak {
		if next := record.CurrentDifficulty.Demote(); next != record.CurrentDifficulty {
			record.CurrentDifficulty = next
			record.ConsecutiveIncorrect = 0
		}
	}

	record.LastUpdated = time.Now()

	if err := s.progressRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store topic record: %w", err)
	}
	return record, nil
}
