package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInterviewNotFound indicates that the interview does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrInterviewNotFound = errors.New("interview not found")

	// ErrQuestionNotFound indicates that the question is not part of the interview.
	ErrQuestionNotFound = errors.New("question is not part of this interview")

	// ErrAlreadyAnswered indicates that the user already recorded an answer to the question.
	// API layer should map this to HTTP 409 Conflict.
	ErrAlreadyAnswered = errors.New("question has already been answered")

	// ErrIncompleteQuestions is returned when the generator produced records
	// with an empty question or answer.
	ErrIncompleteQuestions = errors.New("generated questions are incomplete")
)
