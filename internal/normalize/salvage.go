package normalize

import (
	"github.com/aimock/aimock-api/internal/domain"
)

// salvageObjects scans s for balanced top-level {...} substrings inside the
// outer array and decodes each one independently. Substrings that do not
// decode into a record are skipped. Braces and brackets inside string
// literals are ignored.
func salvageObjects(s string) []domain.QARecord {
	var (
		lx         lexer
		records    []domain.QARecord
		arrayDepth int
		braceDepth int
		start      = -1
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !lx.step(c) {
			continue
		}

		switch c {
		case '[':
			if braceDepth == 0 {
				arrayDepth++
			}
		case ']':
			if braceDepth == 0 && arrayDepth > 0 {
				arrayDepth--
			}
		case '{':
			if braceDepth == 0 && arrayDepth > 0 {
				start = i
			}
			braceDepth++
		case '}':
			if braceDepth == 0 {
				continue
			}
			braceDepth--
			if braceDepth == 0 && start >= 0 {
				if rec, err := decodeRecord([]byte(s[start : i+1])); err == nil {
					records = append(records, rec)
				}
				start = -1
			}
		}
	}
	return records
}
