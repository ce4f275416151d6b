package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrNilLogger is returned when a constructor receives a nil logger.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrNilChat is returned when NewGenerator receives a nil chat.
	ErrNilChat = errors.New("chat cannot be nil")
)
