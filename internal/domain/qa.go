package domain

import (
	"encoding/json"
	"math"
	"strings"
)

// QARecord is a single generated interview question together with the model
// answer the AI produced for it. Records are values; position in the
// containing slice is their only identity.
type QARecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IsComplete reports whether both the question and the answer carry text.
func (r QARecord) IsComplete() bool {
	return strings.TrimSpace(r.Question) != "" && strings.TrimSpace(r.Answer) != ""
}

// Feedback is the AI assessment of a single recorded answer.
type Feedback struct {
	// Rating is a score from 0 to 10. Models occasionally send it as a
	// fraction or a quoted number; see UnmarshalJSON.
	Rating int `json:"ratings"`

	// Feedback is free-form text describing how the answer could improve.
	Feedback string `json:"feedback"`
}

// Feedback rating bounds.
const (
	MinRating = 0
	MaxRating = 10
)

// Validate checks that the rating is within bounds and feedback text is present.
func (f *Feedback) Validate() error {
	if f.Rating < MinRating || f.Rating > MaxRating {
		return NewValidationError("rating", "must be between 0 and 10", nil)
	}
	if strings.TrimSpace(f.Feedback) == "" {
		return NewValidationError("feedback", "cannot be empty", ErrEmptyContent)
	}
	return nil
}

// UnmarshalJSON decodes model feedback. The rating may be an integer, a
// fractional number or a numeric string; fractions are rounded half away
// from zero.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rating   json.Number `json:"ratings"`
		Feedback string      `json:"feedback"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rating == "" {
		return NewValidationError("rating", "is required", nil)
	}

	value, err := raw.Rating.Float64()
	if err != nil {
		return NewValidationError("rating", "must be a number", nil)
	}
	rounded := math.Round(value)
	if rounded < MinRating || rounded > MaxRating {
		return NewValidationError("rating", "must be between 0 and 10", nil)
	}

	f.Rating = int(rounded)
	f.Feedback = raw.Feedback
	return nil
}
