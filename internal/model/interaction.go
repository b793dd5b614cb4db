package model

import "time"

// Intent is the classified intent of a student query
type Intent string

const (
	IntentFactual     Intent = "factual"
	IntentQuizRequest Intent = "quiz_request"
	IntentGeneral     Intent = "general"
)

// ActionType is a tutoring action kind
type ActionType string

const (
	ActionExplain ActionType = "explain"
	ActionQuiz    ActionType = "quiz"
)

// ActionPlanEntry is one step of an action plan. Difficulty is set only
// for quiz entries.
type ActionPlanEntry struct {
	Action     ActionType `json:"action" bson:"action"`
	Difficulty Difficulty `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
}

// PlanSuggestsQuiz reports whether any entry of the plan is a quiz. The
// service layer surfaces this as the quizSuggestion flag.
func PlanSuggestsQuiz(plan []ActionPlanEntry) bool {
	for _, e := range plan {
		if e.Action == ActionQuiz {
			return true
		}
	}
	return false
}

// Outcome is the resolution of an interaction, filled by exactly one
// answer submission.
type Outcome struct {
	SelectedOption string    `json:"selectedOption" bson:"selected_option"`
	Correct        bool      `json:"correct" bson:"correct"`
	AnsweredAt     time.Time `json:"answeredAt" bson:"answered_at"`
}

// Interaction is one recorded planner decision plus its eventual
// resolution. Append-only; Outcome is nil until the interaction is closed.
type Interaction struct {
	ID         int64             `json:"id" bson:"_id"`
	StudentID  string            `json:"studentId" bson:"student_id"`
	Topic      string            `json:"topic" bson:"topic"`
	QueryText  string            `json:"queryText" bson:"query_text"`
	Intent     Intent            `json:"intent" bson:"intent"`
	Confidence ConfidenceVerdict `json:"confidence" bson:"confidence"`
	Plan       []ActionPlanEntry `json:"plan" bson:"plan"`
	CreatedAt  time.Time         `json:"createdAt" bson:"created_at"`
	Outcome    *Outcome          `json:"outcome,omitempty" bson:"outcome,omitempty"`
}
