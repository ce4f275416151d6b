package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aimock/aimock-api/internal/domain"
)

// decodeRecords parses text as a non-empty JSON array whose elements are all
// objects decodable into QARecord. Missing fields decode as empty strings and
// unknown fields are ignored.
func decodeRecords(text string) ([]domain.QARecord, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotArray
		}
		return nil, err
	}
	if len(elems) == 0 {
		return nil, ErrEmptyArray
	}

	records := make([]domain.QARecord, 0, len(elems))
	for i, elem := range elems {
		rec, err := decodeRecord(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeRecord decodes a single JSON object into a QARecord.
func decodeRecord(raw []byte) (domain.QARecord, error) {
	var rec domain.QARecord
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return rec, ErrNotObject
	}
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return domain.QARecord{}, err
	}
	return rec, nil
}

// DecodeObject decodes a single JSON object out of model output into v,
// which must be a non-nil pointer. It tolerates markdown fences, surrounding
// prose and the same separator mistakes Normalize repairs.
func DecodeObject(raw string, v any) error {
	text := stripFences(raw)
	if err := json.Unmarshal([]byte(text), v); err == nil {
		return nil
	}

	candidate, ok := extractObject(text)
	if !ok {
		return newParseError("failed to parse JSON object", ErrNoObject)
	}
	firstErr := json.Unmarshal([]byte(candidate), v)
	if firstErr == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(repairSyntax(candidate)), v); err == nil {
		return nil
	}
	return newParseError("failed to parse JSON object", firstErr)
}
