package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimock/aimock-api/internal/domain"
)

const fence = "```"

func fiveRecords() []domain.QARecord {
	return []domain.QARecord{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
		{Question: "Q4", Answer: "A4"},
		{Question: "Q5", Answer: "A5"},
	}
}

const fiveJSON = `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},` +
	`{"question":"Q3","answer":"A3"},{"question":"Q4","answer":"A4"},{"question":"Q5","answer":"A5"}]`

func TestNormalizeResult_Recovers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      []domain.QARecord
		wantStage Stage
	}{
		{
			name:      "valid array",
			input:     fiveJSON,
			want:      fiveRecords(),
			wantStage: StageDirect,
		},
		{
			name:      "json fenced",
			input:     fence + "json\n" + fiveJSON + "\n" + fence,
			want:      fiveRecords(),
			wantStage: StageDirect,
		},
		{
			name:      "uppercase fence tag",
			input:     fence + "JSON\n" + fiveJSON + "\n" + fence + "\n",
			want:      fiveRecords(),
			wantStage: StageDirect,
		},
		{
			name:      "bare fence with surrounding prose",
			input:     "Here are your questions:\n" + fence + "\n" + fiveJSON + "\n" + fence + "\nGood luck!",
			want:      fiveRecords(),
			wantStage: StageExtracted,
		},
		{
			name: "missing separator between first two objects",
			input: `[{"question":"Q1","answer":"A1"}{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"A3"},` +
				`{"question":"Q4","answer":"A4"},{"question":"Q5","answer":"A5"}]`,
			want:      fiveRecords(),
			wantStage: StageRepaired,
		},
		{
			name:      "trailing comma before closing bracket",
			input:     `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},]`,
			want:      fiveRecords()[:2],
			wantStage: StageRepaired,
		},
		{
			name:      "trailing comma before closing brace",
			input:     `[{"question":"Q1","answer":"A1",},{"question":"Q2","answer":"A2"}]`,
			want:      fiveRecords()[:2],
			wantStage: StageRepaired,
		},
		{
			name: "objects split by whitespace fall back to salvage",
			input: "[\n  {\"question\":\"Q1\",\"answer\":\"A1\"}\n  {\"question\":\"Q2\",\"answer\":\"A2\"}\n" +
				"  {\"question\":\"Q3\",\"answer\":\"A3\"},\n]",
			want:      fiveRecords()[:3],
			wantStage: StageSalvaged,
		},
		{
			name: "salvage keeps parsable objects",
			input: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"A3"},` +
				`{"question":"Q4" "answer":"A4"},{"question":"Q5","answer":"A5"}]`,
			want: []domain.QARecord{
				{Question: "Q1", Answer: "A1"},
				{Question: "Q2", Answer: "A2"},
				{Question: "Q3", Answer: "A3"},
				{Question: "Q5", Answer: "A5"},
			},
			wantStage: StageSalvaged,
		},
		{
			name:  "extra and missing fields",
			input: `[{"question":"Q1","answer":"A1","difficulty":"easy"},{"question":"Q2"}]`,
			want: []domain.QARecord{
				{Question: "Q1", Answer: "A1"},
				{Question: "Q2"},
			},
			wantStage: StageDirect,
		},
	}

	nz := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := nz.NormalizeResult(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Records)
			assert.Equal(t, tt.wantStage, res.Stage)
		})
	}
}

func TestNormalize_TrailingCommaMatchesCommaFree(t *testing.T) {
	t.Parallel()

	nz := New()
	clean := `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`
	dirty := `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},]`

	want, err := nz.Normalize(context.Background(), clean)
	require.NoError(t, err)
	got, err := nz.Normalize(context.Background(), dirty)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize_PreservesStringContents(t *testing.T) {
	t.Parallel()

	input := `[{"question":"What does ,] mean in \"JSON\"?","answer":"Nothing }{ special ][ here,}"},` +
		`{"question":"Q2","answer":"A2"},]`

	records, err := New().Normalize(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `What does ,] mean in "JSON"?`, records[0].Question)
	assert.Equal(t, "Nothing }{ special ][ here,}", records[0].Answer)
}

func TestNormalize_Fails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "not json", input: "not json at all", wantErr: ErrNoArray},
		{name: "empty", input: "", wantErr: ErrNoArray},
		{name: "whitespace only", input: "  \n\t ", wantErr: ErrNoArray},
		{name: "closing before opening", input: "] nothing here [", wantErr: ErrNoArray},
		{name: "object instead of array", input: `{"question":"Q1","answer":"A1"}`, wantErr: ErrNoArray},
		{name: "empty array", input: "[]", wantErr: ErrEmptyArray},
		{
			name:    "truncated mid third object without closing bracket",
			input:   `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3","ans`,
			wantErr: ErrNoArray,
		},
		{
			name:  "truncated mid third object with bracket in text",
			input: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"see [docs]`,
		},
		{
			name:  "only two salvageable objects",
			input: `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3" "answer":"A3"}]`,
		},
		{
			name:  "two objects split by a space",
			input: `[{"question":"Q1","answer":"A1"} {"question":"Q2","answer":"A2"}]`,
		},
		{
			name:  "trailing comma followed by newline with two objects",
			input: "[{\"question\":\"Q1\",\"answer\":\"A1\"},{\"question\":\"Q2\",\"answer\":\"A2\"},\n]",
		},
		{
			name:  "unclosed nested array",
			input: `[[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`,
		},
		{name: "array of scalars", input: `[1, 2, 3]`, wantErr: ErrNotObject},
		{name: "array of arrays", input: `[["a"],["b"]`},
		{name: "wrongly typed fields", input: `[{"question":1,"answer":2}]`},
	}

	nz := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records, err := nz.Normalize(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, ErrParse)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.NotNil(t, parseErr.Err, "underlying parse failure should be attached")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_SalvageThreshold(t *testing.T) {
	t.Parallel()

	input := `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"},{"question":"Q3" "answer":"A3"}]`

	_, err := New().Normalize(context.Background(), input)
	assert.ErrorIs(t, err, ErrParse)

	nz := New(WithSalvageThreshold(2))
	res, err := nz.NormalizeResult(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, StageSalvaged, res.Stage)
	assert.Equal(t, fiveRecords()[:2], res.Records)

	assert.Equal(t, DefaultSalvageThreshold, New(WithSalvageThreshold(0)).SalvageThreshold())
}

func TestStage_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "direct", StageDirect.String())
	assert.Equal(t, "extracted", StageExtracted.String())
	assert.Equal(t, "repaired", StageRepaired.String())
	assert.Equal(t, "salvaged", StageSalvaged.String())
	assert.Equal(t, "balanced", StageBalanced.String())
	assert.Equal(t, "unknown", Stage(0).String())
}
