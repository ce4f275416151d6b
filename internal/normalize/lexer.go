package normalize

// lexState is the position of the lexer relative to JSON string literals.
type lexState int

const (
	// stateNormal is structural text outside any string literal.
	stateNormal lexState = iota
	// stateInString is inside a string literal.
	stateInString
	// stateEscaped is the byte right after a backslash inside a string literal.
	stateEscaped
)

// lexer classifies bytes of JSON-like text as structural or literal.
// It works on bytes: every structural JSON character is ASCII and never
// appears inside a multi-byte UTF-8 sequence.
type lexer struct {
	state lexState
}

// step advances over c and reports whether c is structural, i.e. outside of
// any string literal. Quote characters that open or close a string are
// reported as literal.
func (l *lexer) step(c byte) bool {
	switch l.state {
	case stateEscaped:
		l.state = stateInString
		return false
	case stateInString:
		switch c {
		case '\\':
			l.state = stateEscaped
		case '"':
			l.state = stateNormal
		}
		return false
	default:
		if c == '"' {
			l.state = stateInString
			return false
		}
		return true
	}
}
