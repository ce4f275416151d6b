package generation

import (
	"errors"
	"net/http"
)

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate interview content")

	// ErrInvalidResponse is returned when the model response cannot be used
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when an empty prompt is sent
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrRateLimited is matched by errors of KindRateLimit
	ErrRateLimited = errors.New("upstream rate limit exceeded")

	// ErrClientThrottled is matched by errors of KindClientThrottle
	ErrClientThrottled = errors.New("request throttled locally")
)

// User-facing messages for the classified kinds.
const (
	RateLimitMessage      = "AI rate limit exceeded. Please wait a moment and try again."
	ClientThrottleMessage = "Please slow down. Try again in a second."
)

// Kind is the closed set of failure classes a Gate reports.
type Kind int

const (
	// KindGeneric is any upstream failure that is not a rate limit.
	KindGeneric Kind = iota
	// KindRateLimit is an upstream-confirmed quota rejection (HTTP 429).
	KindRateLimit
	// KindClientThrottle is a local rejection; no request was sent.
	KindClientThrottle
)

// String returns the kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindRateLimit:
		return "rate_limit"
	case KindClientThrottle:
		return "client_throttle"
	default:
		return "generic"
	}
}

// Error is a classified failure of a Gate call.
//
// For KindGeneric, Error() returns the original error's message unchanged and
// Err holds that error. Status is the resolved HTTP status, or 0 when the
// upstream error carried none.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == KindGeneric && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the original upstream error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels ErrRateLimited and ErrClientThrottled.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRateLimited:
		return e.Kind == KindRateLimit
	case ErrClientThrottled:
		return e.Kind == KindClientThrottle
	}
	return false
}

// StatusCode returns the resolved upstream HTTP status.
func (e *Error) StatusCode() int {
	return e.Status
}

// KindOf returns the kind of a classified error anywhere in err's chain.
// The second result is false when err holds no *Error.
func KindOf(err error) (Kind, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind, true
	}
	return KindGeneric, false
}

func newClientThrottleError() *Error {
	return &Error{Kind: KindClientThrottle, Message: ClientThrottleMessage}
}

// Classify turns an upstream failure into a classified *Error. A resolved
// status of 429 yields KindRateLimit; anything else yields KindGeneric
// wrapping err. An err that already is an *Error is returned as is.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}

	status := StatusOf(err)
	if status == http.StatusTooManyRequests {
		return &Error{Kind: KindRateLimit, Message: RateLimitMessage, Status: status, Err: err}
	}
	return &Error{Kind: KindGeneric, Message: err.Error(), Status: status, Err: err}
}

type statusCoder interface {
	StatusCode() int
}

type httpResponder interface {
	HTTPResponse() *http.Response
}

// StatusOf resolves the HTTP status carried by err. It checks, in order,
// err itself, the response err exposes, and err's direct cause. The first
// non-zero value wins; 0 means no status was found.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	if sc, ok := err.(statusCoder); ok {
		if status := sc.StatusCode(); status != 0 {
			return status
		}
	}
	if hr, ok := err.(httpResponder); ok {
		if resp := hr.HTTPResponse(); resp != nil && resp.StatusCode != 0 {
			return resp.StatusCode
		}
	}
	if sc, ok := errors.Unwrap(err).(statusCoder); ok {
		return sc.StatusCode()
	}
	return 0
}

// UpstreamError is a failed call to the model API, as reported by a Chat
// implementation.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Unwrap returns the underlying client error.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the failed call.
func (e *UpstreamError) StatusCode() int {
	return e.Status
}
