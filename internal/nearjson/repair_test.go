package nearjson

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare keys are quoted",
			in:   `[["practice", 104], "Maze", {s:"abc", a:"def"}]`,
			want: `[["practice", 104], "Maze", {"s":"abc", "a":"def"}]`,
		},
		{
			name: "quoted keys are untouched",
			in:   `[["practice", 104], "Maze", {"s":"abc", "a":"def"}]`,
			want: `[["practice", 104], "Maze", {"s":"abc", "a":"def"}]`,
		},
		{
			name: "mixed quoted and bare keys",
			in:   `["sep", "MazeSeparator", {normalMessage: "Correct!", "errorMessage": "Incorrect!"}]`,
			want: `["sep", "MazeSeparator", {"normalMessage": "Correct!", "errorMessage": "Incorrect!"}]`,
		},
		{
			name: "colon inside a quoted value is not a key",
			in:   `["c", "Message", {html:"Note: read carefully", q:"a:b"}]`,
			want: `["c", "Message", {"html":"Note: read carefully", "q":"a:b"}]`,
		},
		{
			name: "word followed by colon inside string stays",
			in:   `["c", "Maze", {s:"time: now", a:"x"}]`,
			want: `["c", "Maze", {"s":"time: now", "a":"x"}]`,
		},
		{
			name: "escaped quote inside string",
			in:   `["c", "Maze", {s:"he said \"go:\" loudly"}]`,
			want: `["c", "Maze", {"s":"he said \"go:\" loudly"}]`,
		},
		{
			name: "whitespace between key and colon",
			in:   `["c", "Maze", {s : "abc", redo	: false}]`,
			want: `["c", "Maze", {"s" : "abc", "redo"	: false}]`,
		},
		{
			name: "literals are not quoted",
			in:   `["c", "Question", {hasCorrect: false, n: 12, z: null, t: true}]`,
			want: `["c", "Question", {"hasCorrect": false, "n": 12, "z": null, "t": true}]`,
		},
		{
			name: "single quoted value is requoted",
			in:   `["c", "Message", {html:'<p class="x">it\'s</p>'}]`,
			want: `["c", "Message", {"html":"<p class=\"x\">it's</p>"}]`,
		},
		{
			name: "nested objects and arrays",
			in:   `["q", "Question", {q:"Gender?", as:["Male", "Female"], opts: {hasCorrect: false}}]`,
			want: `["q", "Question", {"q":"Gender?", "as":["Male", "Female"], "opts": {"hasCorrect": false}}]`,
		},
		{
			name: "unicode key",
			in:   `["c", "Maze", {wörter:"x"}]`,
			want: `["c", "Maze", {"wörter":"x"}]`,
		},
		{
			name: "unquoted top-level condition key",
			in:   `practice: [104], "Maze", {s:"abc", a:"def"}`,
			want: `"practice": [104], "Maze", {"s":"abc", "a":"def"}`,
		},
		{
			name: "empty input",
			in:   ``,
			want: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Repair(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepair_OutputIsValidJSON(t *testing.T) {
	lines := []string{
		`[["practice", 104], "Maze", {s:"The therapist set up a meeting.", a:"x-x-x socialism ten.", redo: true}]`,
		`["questionnaire", "Question", {q:"Please select your gender.", as:["Male", "Female","Non-binary", "Decline to state"], hasCorrect: false}]`,
		`["welcome", "Message", {html:'<table width="100%"><tr><td>Dept: BCS</td></tr></table>'}]`,
	}
	for _, line := range lines {
		got, err := Repair(line)
		require.NoError(t, err)
		assert.True(t, json.Valid([]byte(got)), "not valid JSON: %s", got)
	}
}

func TestRepair_Idempotent(t *testing.T) {
	in := `[["filler", 7], "Maze", {s:"a: b", a:'c "d"'}]`
	once, err := Repair(in)
	require.NoError(t, err)
	twice, err := Repair(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestRepair_UnterminatedString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		offset int
	}{
		{"double", `["c", "Maze", {s:"abc}]`, 17},
		{"single", `["c", 'Maze]`, 6},
		{"escaped closing quote", `["c\"]`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Repair(tt.in)
			require.Error(t, err)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.offset, se.Offset)
			assert.Contains(t, err.Error(), "unterminated string")
		})
	}
}
