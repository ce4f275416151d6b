// Package service contains the interview and answer use cases. It
// coordinates the generator and the stores defined in internal/store,
// enforces ownership, and applies the retry policy for client-throttled
// generation requests.
//
// Services receive their dependencies through constructor injection and
// never depend on concrete infrastructure. Expected conditions are
// reported with sentinel errors; unexpected failures are wrapped in
// InterviewServiceError or AnswerServiceError so the API layer can map them
// with errors.Is and errors.As.
package service
