package service

import (
	"context"
	"sync"
	"testing"

	"oneclarity/internal/model"
	"oneclarity/internal/repository"
)

func newStudentService(t *testing.T) *StudentService {
	t.Helper()
	return NewStudentService(repository.NewMemoryProgressRepo())
}

func answerN(t *testing.T, svc *StudentService, studentID, topic string, correct bool, n int) *model.StudentTopicRecord {
	t.Helper()
	var record *model.StudentTopicRecord
	var err error
	for i := 0; i < n; i++ {
		record, err = svc.RecordAnswer(context.Background(), studentID, topic, correct)
		if err != nil {
			t.Fatalf("RecordAnswer failed: %v", err)
		}
	}
	return record
}

func TestGetOrCreateDefaults(t *testing.T) {
	svc := newStudentService(t)

	record, err := svc.GetOrCreate(context.Background(), "unknown", "matrices")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if record.Attempts != 0 || record.Correct != 0 {
		t.Errorf("fresh record has counters: %+v", record)
	}
	if record.CurrentDifficulty != model.DifficultyMedium {
		t.Errorf("fresh record difficulty = %s, want medium", record.CurrentDifficulty)
	}
	if record.Strength() != model.StrengthMedium {
		t.Errorf("fresh record strength = %s, want medium", record.Strength())
	}
}

func TestRecordAnswerCounters(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	r1, err := svc.RecordAnswer(ctx, "s1", "matrices", true)
	if err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	if r1.Attempts != 1 || r1.Correct != 1 {
		t.Errorf("after one correct: attempts=%d correct=%d", r1.Attempts, r1.Correct)
	}

	r2, err := svc.RecordAnswer(ctx, "s1", "matrices", false)
	if err != nil {
		t.Fatalf("RecordAnswer failed: %v", err)
	}
	if r2.Attempts != 2 || r2.Correct != 1 {
		t.Errorf("after one incorrect: attempts=%d correct=%d", r2.Attempts, r2.Correct)
	}
	if r2.Correct > r2.Attempts {
		t.Errorf("correct %d exceeds attempts %d", r2.Correct, r2.Attempts)
	}
	if r2.ConsecutiveCorrect != 0 || r2.ConsecutiveIncorrect != 1 {
		t.Errorf("streaks after miss: correct=%d incorrect=%d", r2.ConsecutiveCorrect, r2.ConsecutiveIncorrect)
	}
}

func TestPromotionAfterThreeCorrect(t *testing.T) {
	svc := newStudentService(t)

	record := answerN(t, svc, "s1", "matrices", true, 2)
	if record.CurrentDifficulty != model.DifficultyMedium {
		t.Fatalf("promoted too early at streak 2: %s", record.CurrentDifficulty)
	}

	record = answerN(t, svc, "s1", "matrices", true, 1)
	if record.CurrentDifficulty != model.DifficultyHard {
		t.Errorf("difficulty after 3 correct = %s, want hard", record.CurrentDifficulty)
	}
	if record.ConsecutiveCorrect != 0 {
		t.Errorf("streak not reset on promotion: %d", record.ConsecutiveCorrect)
	}
}

func TestDemotionAfterTwoIncorrect(t *testing.T) {
	svc := newStudentService(t)

	record := answerN(t, svc, "s1", "probability", false, 2)
	if record.CurrentDifficulty != model.DifficultyEasy {
		t.Errorf("difficulty after 2 incorrect = %s, want easy", record.CurrentDifficulty)
	}
	if record.ConsecutiveIncorrect != 0 {
		t.Errorf("streak not reset on demotion: %d", record.ConsecutiveIncorrect)
	}
}

func TestDifficultySaturatesAtHard(t *testing.T) {
	svc := newStudentService(t)

	// three correct reach hard, then keep answering correctly
	record := answerN(t, svc, "s1", "integrals", true, 9)
	if record.CurrentDifficulty != model.DifficultyHard {
		t.Errorf("difficulty = %s, want hard", record.CurrentDifficulty)
	}
	// at the ceiling the streak keeps counting instead of resetting
	if record.ConsecutiveCorrect != 6 {
		t.Errorf("streak at ceiling = %d, want 6", record.ConsecutiveCorrect)
	}
}

func TestDifficultySaturatesAtEasy(t *testing.T) {
	svc := newStudentService(t)

	record := answerN(t, svc, "s1", "integrals", false, 6)
	if record.CurrentDifficulty != model.DifficultyEasy {
		t.Errorf("difficulty = %s, want easy", record.CurrentDifficulty)
	}
	if record.Attempts != 6 || record.Correct != 0 {
		t.Errorf("counters: attempts=%d correct=%d", record.Attempts, record.Correct)
	}
}

func TestMixedStreaksResetEachOther(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	// two correct, one incorrect: promotion streak must restart
	answerN(t, svc, "s1", "matrices", true, 2)
	answerN(t, svc, "s1", "matrices", false, 1)
	record := answerN(t, svc, "s1", "matrices", true, 2)
	if record.CurrentDifficulty != model.DifficultyMedium {
		t.Errorf("difficulty = %s, want medium (streak was broken)", record.CurrentDifficulty)
	}

	stored, err := svc.GetOrCreate(ctx, "s1", "matrices")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if stored.Attempts != 5 || stored.Correct != 4 {
		t.Errorf("stored counters: attempts=%d correct=%d", stored.Attempts, stored.Correct)
	}
}

func TestRecordAnswerConcurrentSameKey(t *testing.T) {
	svc := newStudentService(t)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()
			if _, err := svc.RecordAnswer(context.Background(), "s1", "matrices", correct); err != nil {
				t.Errorf("RecordAnswer failed: %v", err)
			}
		}(i%2 == 0)
	}
	wg.Wait()

	record, err := svc.GetOrCreate(context.Background(), "s1", "matrices")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if record.Attempts != n {
		t.Errorf("attempts = %d, want %d (lost updates)", record.Attempts, n)
	}
	if record.Correct != n/2 {
		t.Errorf("correct = %d, want %d", record.Correct, n/2)
	}
}

func TestRecordAnswerIndependentKeys(t *testing.T) {
	svc := newStudentService(t)
	ctx := context.Background()

	answerN(t, svc, "s1", "matrices", true, 3)
	answerN(t, svc, "s1", "probability", false, 2)
	answerN(t, svc, "s2", "matrices", false, 1)

	m, _ := svc.GetOrCreate(ctx, "s1", "matrices")
	p, _ := svc.GetOrCreate(ctx, "s1", "probability")
	o, _ := svc.GetOrCreate(ctx, "s2", "matrices")

	if m.Attempts != 3 || m.CurrentDifficulty != model.DifficultyHard {
		t.Errorf("s1/matrices: %+v", m)
	}
	if p.Attempts != 2 || p.CurrentDifficulty != model.DifficultyEasy {
		t.Errorf("s1/probability: %+v", p)
	}
	if o.Attempts != 1 || o.CurrentDifficulty != model.DifficultyMedium {
		t.Errorf("s2/matrices: %+v", o)
	}
}
