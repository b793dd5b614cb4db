package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"oneclarity/internal/model"
)

// In-memory implementations of the repository interfaces. They back the
// tests and the no-Mongo development mode of cmd/server; semantics match
// the Mongo implementations, including exactly-once close and monotonic
// interaction ids.

type memoryProgressRepo struct {
	mu      sync.RWMutex
	records map[string]*model.StudentTopicRecord
}

// NewMemoryProgressRepo creates an in-memory progress repository
func NewMemoryProgressRepo() ProgressRepo {
	return &memoryProgressRepo{
		records: make(map[string]*model.StudentTopicRecord),
	}
}

func progressKey(studentID, topic string) string {
	return studentID + "\x00" + topic
}

func (r *memoryProgressRepo) Get(ctx context.Context, studentID, topic string) (*model.StudentTopicRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[progressKey(studentID, topic)]
	if !ok {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func (r *memoryProgressRepo) Upsert(ctx context.Context, record *model.StudentTopicRecord) error {
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}
	clone := *record
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[progressKey(record.StudentID, record.Topic)] = &clone
	return nil
}

func (r *memoryProgressRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.StudentTopicRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []*model.StudentTopicRecord
	for _, record := range r.records {
		if record.StudentID == studentID {
			clone := *record
			records = append(records, &clone)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Topic < records[j].Topic })
	return records, nil
}

type memoryInteractionRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]*model.Interaction
}

// NewMemoryInteractionRepo creates an in-memory interaction log
func NewMemoryInteractionRepo() InteractionRepo {
	return &memoryInteractionRepo{
		items: make(map[int64]*model.Interaction),
	}
}

func (r *memoryInteractionRepo) Append(ctx context.Context, interaction *model.Interaction) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	interaction.ID = r.seq
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	interaction.Outcome = nil
	clone := *interaction
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memoryInteractionRepo) GetByID(ctx context.Context, id int64) (*model.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	interaction, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneInteraction(interaction), nil
}

func (r *memoryInteractionRepo) Close(ctx context.Context, id int64, selectedOption string, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	interaction, ok := r.items[id]
	if !ok {
		return model.ErrInteractionNotFound
	}
	if interaction.Outcome != nil {
		return model.ErrAlreadyAnswered
	}
	interaction.Outcome = &model.Outcome{
		SelectedOption: selectedOption,
		Correct:        correct,
		AnsweredAt:     time.Now(),
	}
	return nil
}

func (r *memoryInteractionRepo) ListByStudent(ctx context.Context, studentID string) ([]*model.Interaction, error) {
	return r.list(func(in *model.Interaction) bool {
		return in.StudentID == studentID
	})
}

func (r *memoryInteractionRepo) ListByTopic(ctx context.Context, studentID, topic string) ([]*model.Interaction, error) {
	return r.list(func(in *model.Interaction) bool {
		return in.StudentID == studentID && in.Topic == topic
	})
}

func (r *memoryInteractionRepo) list(match func(*model.Interaction) bool) ([]*model.Interaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var interactions []*model.Interaction
	for _, interaction := range r.items {
		if match(interaction) {
			interactions = append(interactions, cloneInteraction(interaction))
		}
	}
	sort.Slice(interactions, func(i, j int) bool {
		a, b := interactions[i], interactions[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return interactions, nil
}

func cloneInteraction(in *model.Interaction) *model.Interaction {
	clone := *in
	clone.Plan = append([]model.ActionPlanEntry(nil), in.Plan...)
	if in.Outcome != nil {
		outcome := *in.Outcome
		clone.Outcome = &outcome
	}
	return &clone
}

type memoryStudentRepo struct {
	mu     sync.RWMutex
	byID   map[string]*model.Student
	byName map[string]*model.Student
}

// NewMemoryStudentRepo creates an in-memory student registry
func NewMemoryStudentRepo() StudentRepo {
	return &memoryStudentRepo{
		byID:   make(map[string]*model.Student),
		byName: make(map[string]*model.Student),
	}
}

func (r *memoryStudentRepo) Register(ctx context.Context, student *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[student.StudentID]; ok {
		return model.ErrDuplicateStudent
	}
	if student.Name != "" {
		if _, ok := r.byName[student.Name]; ok {
			return model.ErrDuplicateStudent
		}
	}
	if student.CreatedAt.IsZero() {
		student.CreatedAt = time.Now()
	}
	clone := *student
	r.byID[clone.StudentID] = &clone
	if clone.Name != "" {
		r.byName[clone.Name] = &clone
	}
	return nil
}

func (r *memoryStudentRepo) GetByID(ctx context.Context, studentID string) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	student, ok := r.byID[studentID]
	if !ok {
		return nil, nil
	}
	clone := *student
	return &clone, nil
}
