package model

// QuizQuestion is one generated MCQ. Answer is the letter ("A".."D") of
// the correct option; it stays server-side as the answer key and is
// stripped before the question reaches the student client.
type QuizQuestion struct {
	Chapter     string     `json:"chapter"`
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Answer      string     `json:"answer,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
}

// AskRequest carries the query parameters of an ask call
type AskRequest struct {
	StudentID string `json:"studentId"`
	Query     string `json:"query"`
	Topic     string `json:"topic,omitempty"`
}

// AskResponse is the result of one ask: the plan, the confidence signal,
// and whatever the plan called for (explanation text and/or a quiz).
type AskResponse struct {
	InteractionID  int64             `json:"interactionId"`
	StudentID      string            `json:"studentId"`
	Topic          string            `json:"topic"`
	Intent         Intent            `json:"intent"`
	Plan           []ActionPlanEntry `json:"plan"`
	Confidence     float64           `json:"confidence"`
	Grounded       bool              `json:"grounded"`
	Answer         string            `json:"answer,omitempty"`
	Chapter        string            `json:"chapter,omitempty"`
	Quiz           []QuizQuestion    `json:"quiz,omitempty"`
	QuizSuggestion bool              `json:"quizSuggestion"`
}

// QuizResponse is the result of an independent quiz request
type QuizResponse struct {
	InteractionID int64          `json:"interactionId"`
	StudentID     string         `json:"studentId"`
	Topic         string         `json:"topic"`
	Difficulty    Difficulty     `json:"difficulty"`
	Quiz          []QuizQuestion `json:"quiz"`
}

// SubmitAnswerRequest is the body of an answer submission. CorrectOption
// is the passed-through answer key from quiz generation time, used only
// when the cached key is gone.
type SubmitAnswerRequest struct {
	InteractionID  int64  `json:"interactionId"`
	QuestionIndex  int    `json:"questionIndex"`
	SelectedOption string `json:"selectedOption"`
	CorrectOption  string `json:"correctOption,omitempty"`
}

// SubmitAnswerResponse reports the graded outcome. Duplicate is true when
// the interaction was already closed; the outcome shown is the prior one.
type SubmitAnswerResponse struct {
	InteractionID  int64               `json:"interactionId"`
	StudentID      string              `json:"studentId"`
	Topic          string              `json:"topic"`
	SelectedOption string              `json:"selectedOption"`
	Correct        bool                `json:"correct"`
	Duplicate      bool                `json:"duplicate"`
	Record         *StudentTopicRecord `json:"record,omitempty"`
}
