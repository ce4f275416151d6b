package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer_States(t *testing.T) {
	t.Parallel()

	var lx lexer
	input := `a"b\"c"d`
	want := []struct {
		structural bool
		state      lexState
	}{
		{true, stateNormal},    // a
		{false, stateInString}, // "
		{false, stateInString}, // b
		{false, stateEscaped},  // \
		{false, stateInString}, // "
		{false, stateInString}, // c
		{false, stateNormal},   // "
		{true, stateNormal},    // d
	}

	require.Len(t, want, len(input))
	for i := 0; i < len(input); i++ {
		got := lx.step(input[i])
		assert.Equal(t, want[i].structural, got, "byte %d (%q)", i, input[i])
		assert.Equal(t, want[i].state, lx.state, "byte %d (%q)", i, input[i])
	}
}

func TestLexer_BackslashOutsideStringIsStructural(t *testing.T) {
	t.Parallel()

	var lx lexer
	assert.True(t, lx.step('\\'))
	assert.Equal(t, stateNormal, lx.state)
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1]", stripFences("```json\n[1]\n```"))
	assert.Equal(t, "[1]", stripFences("  ```Json [1]```  "))
	assert.Equal(t, "[1]", stripFences("```\n[1]\n```"))
	assert.Equal(t, "", stripFences("   "))
}

func TestExtractArray(t *testing.T) {
	t.Parallel()

	got, ok := extractArray(`prefix [1, [2]] suffix`)
	require.True(t, ok)
	assert.Equal(t, `[1, [2]]`, got)

	_, ok = extractArray(`no brackets`)
	assert.False(t, ok)
	_, ok = extractArray(`only [ open`)
	assert.False(t, ok)
	_, ok = extractArray(`] reversed [`)
	assert.False(t, ok)
}

func TestRepairSyntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trailing comma in array", input: `[1,2,]`, want: `[1,2]`},
		{name: "trailing comma in object", input: `{"a":1,}`, want: `{"a":1}`},
		{name: "comma separated from closer by whitespace", input: "[1,\n]", want: "[1,\n]"},
		{name: "comma separated from brace by space", input: `{"a":1, }`, want: `{"a":1, }`},
		{name: "adjacent objects", input: `[{"a":1}{"b":2}]`, want: `[{"a":1},{"b":2}]`},
		{name: "adjacent arrays", input: `[[1][2]]`, want: `[[1],[2]]`},
		{name: "objects split by newline", input: "[{}\n{}]", want: "[{}\n{}]"},
		{name: "objects split by space", input: `[{} {}]`, want: `[{} {}]`},
		{name: "string contents untouched", input: `["a,]","}{","][",]`, want: `["a,]","}{","]["]`},
		{name: "escaped quote keeps string open", input: `["\",]",]`, want: `["\",]"]`},
		{name: "already valid", input: `[{"a":[1,2]},{"b":{}}]`, want: `[{"a":[1,2]},{"b":{}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, repairSyntax(tt.input))
		})
	}
}

func TestBalanceBrackets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `[[1],[2]]`, balanceBrackets(`[[1],[2]`))
	assert.Equal(t, `[[[1]]]`, balanceBrackets(`[[[1]`))
	assert.Equal(t, `[1]`, balanceBrackets(`[1]`))
	assert.Equal(t, `["[["]`, balanceBrackets(`["[["]`), "brackets inside strings are not counted")
	assert.Equal(t, `[1]]`, balanceBrackets(`[1]]`), "surplus closers are left alone")
}

func TestSalvageObjects(t *testing.T) {
	t.Parallel()

	input := `[{"question":"Q1","answer":"A1"}, {"question":"Q2","answer":{"nested":true}},` +
		` {"question":"Q3","answer":"has } brace"}, [1,2], {"question":"Q4","answer":"A4"} {"broken":]`

	records := salvageObjects(input)
	require.Len(t, records, 3)
	assert.Equal(t, "Q1", records[0].Question)
	assert.Equal(t, "has } brace", records[1].Answer)
	assert.Equal(t, "Q4", records[2].Question)
}

func TestSalvageObjects_IgnoresObjectsOutsideArray(t *testing.T) {
	t.Parallel()

	records := salvageObjects(`{"question":"outside","answer":"x"} [{"question":"inside","answer":"y"}]`)
	require.Len(t, records, 1)
	assert.Equal(t, "inside", records[0].Question)
}

func TestDecodeObject(t *testing.T) {
	t.Parallel()

	type feedback struct {
		Rating   int    `json:"ratings"`
		Feedback string `json:"feedback"`
	}

	tests := []struct {
		name  string
		input string
	}{
		{name: "plain", input: `{"ratings":7,"feedback":"Solid answer."}`},
		{name: "fenced", input: "```json\n{\"ratings\":7,\"feedback\":\"Solid answer.\"}\n```"},
		{name: "prose", input: `Sure! {"ratings":7,"feedback":"Solid answer."} Hope it helps.`},
		{name: "trailing comma", input: `{"ratings":7,"feedback":"Solid answer.",}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got feedback
			require.NoError(t, DecodeObject(tt.input, &got))
			assert.Equal(t, feedback{Rating: 7, Feedback: "Solid answer."}, got)
		})
	}
}

func TestDecodeObject_Fails(t *testing.T) {
	t.Parallel()

	var v map[string]any
	err := DecodeObject("no object here", &v)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, ErrNoObject)

	err = DecodeObject(`{"ratings": 7, "feedback": }`, &v)
	assert.ErrorIs(t, err, ErrParse)
}
