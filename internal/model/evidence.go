package model

// Passage is one retrieved chunk with its similarity to the query.
// Produced by the external retrieval service; consumed, not owned.
type Passage struct {
	Chapter string  `json:"chapter" bson:"chapter"`
	Text    string  `json:"text" bson:"text"`
	Score   float64 `json:"score" bson:"score"`
}

// ConfidenceVerdict is the evaluated retrieval confidence: an aggregate of
// top-k similarity scores and whether it clears the grounding threshold.
type ConfidenceVerdict struct {
	Score    float64 `json:"score" bson:"score"`
	Grounded bool    `json:"grounded" bson:"grounded"`
}
