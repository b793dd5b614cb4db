package model

import "time"

// Difficulty is the quiz difficulty ladder
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the three known levels
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Promote returns the next level up, saturating at hard
func (d Difficulty) Promote() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyHard
	}
}

// Demote returns the next level down, saturating at easy
func (d Difficulty) Demote() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	default:
		return DifficultyEasy
	}
}

// Strength is a student's classified mastery of a topic
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Strength classification thresholds. Below minStrengthAttempts there is
// not enough evidence and the classification stays at medium.
const (
	minStrengthAttempts = 3
	weakAccuracyBelow   = 0.5
	strongAccuracyFrom  = 0.85
)

// StudentTopicRecord tracks one student's performance on one topic.
// Accuracy is always derived from the counters, never stored.
type StudentTopicRecord struct {
	StudentID            string     `json:"studentId" bson:"student_id"`
	Topic                string     `json:"topic" bson:"topic"`
	Attempts             int        `json:"attempts" bson:"attempts"`
	Correct              int        `json:"correct" bson:"correct"`
	CurrentDifficulty    Difficulty `json:"currentDifficulty" bson:"current_difficulty"`
	ConsecutiveCorrect   int        `json:"consecutiveCorrect" bson:"consecutive_correct"`
	ConsecutiveIncorrect int        `json:"consecutiveIncorrect" bson:"consecutive_incorrect"`
	LastUpdated          time.Time  `json:"lastUpdated" bson:"last_updated"`
}

// NewStudentTopicRecord returns the lazy default record for a first
// interaction with a (student, topic) pair.
func NewStudentTopicRecord(studentID, topic string) *StudentTopicRecord {
	return &StudentTopicRecord{
		StudentID:         studentID,
		Topic:             topic,
		CurrentDifficulty: DifficultyMedium,
		LastUpdated:       time.Now(),
	}
}

// Accuracy returns correct/attempts, or 0 when there are no attempts yet.
func (r *StudentTopicRecord) Accuracy() float64 {
	if r.Attempts == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Attempts)
}

// Strength classifies mastery from accuracy and attempt count.
func (r *StudentTopicRecord) Strength() Strength {
	if r.Attempts < minStrengthAttempts {
		return StrengthMedium
	}
	acc := r.Accuracy()
	if acc < weakAccuracyBelow {
		return StrengthWeak
	}
	if acc >= strongAccuracyFrom {
		return StrengthStrong
	}
	return StrengthMedium
}

// TopicProgress is one row of a student's progress summary.
// Accuracy is a rounded percentage and is omitted entirely for topics
// without attempts.
type TopicProgress struct {
	Accuracy *int     `json:"accuracy,omitempty"`
	Attempts int      `json:"attempts"`
	Strength Strength `json:"strength"`
}

// Student is a registered student identity
type Student struct {
	StudentID string    `json:"studentId" bson:"student_id"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
