package model

import "errors"

var (
	// ErrInvalidTopic is returned when a topic is empty or not part of
	// the configured curriculum. The only condition surfaced to callers
	// as a hard client error.
	ErrInvalidTopic = errors.New("topic is empty or not in the curriculum")

	// ErrInvalidDifficulty is returned for an explicit difficulty
	// override outside easy/medium/hard.
	ErrInvalidDifficulty = errors.New("difficulty must be easy, medium or hard")

	// ErrAlreadyAnswered is returned by a duplicate close of the same
	// interaction. The service layer treats it as a no-op and returns
	// the prior outcome.
	ErrAlreadyAnswered = errors.New("interaction already answered")

	// ErrInteractionNotFound is returned when a submission references an
	// unknown interaction id.
	ErrInteractionNotFound = errors.New("interaction not found")

	// ErrDuplicateStudent is returned when registering an id or name
	// that is already taken.
	ErrDuplicateStudent = errors.New("student already registered")
)
