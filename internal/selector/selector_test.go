package selector

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/mazegen/internal/record"
)

func parse(t *testing.T, lines ...string) []record.Record {
	t.Helper()
	out := make([]record.Record, 0, len(lines))
	for _, l := range lines {
		rec, err := record.ParseLine(l)
		require.NoError(t, err)
		out = append(out, rec)
	}
	return out
}

var tokenRE = regexp.MustCompile(`startsWith\("((?:[^"\\]|\\.)*)"\)`)

func quotedTokens(expr string) []string {
	var out []string
	for _, m := range tokenRE.FindAllStringSubmatch(expr, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestConditions(t *testing.T) {
	recs := parse(t,
		`[["critical", 1], "Maze", {s:"a"}]`,
		`[["filler", 2], "Maze", {s:"b"}]`,
		`[["critical", 3], "Maze", {s:"c"}]`,
		`["practice", "Maze", {s:"d"}]`,
	)

	assert.Equal(t, []string{"critical", "filler", "practice"}, Conditions(recs))
}

func TestBuild(t *testing.T) {
	got := Build([]string{"filler", "critical", "filler"})
	assert.Equal(t, `randomize(anyOf(startsWith("critical"), startsWith("filler")))`, got)
}

func TestBuild_Empty(t *testing.T) {
	assert.Equal(t, `randomize(anyOf())`, Build(nil))
}

func TestBuild_QuotesAreEscaped(t *testing.T) {
	got := Build([]string{`odd"tag`, `back\slash`})
	assert.Equal(t, `randomize(anyOf(startsWith("back\\slash"), startsWith("odd\"tag")))`, got)
}

func TestForRecords_EachConditionOnce(t *testing.T) {
	recs := parse(t,
		`[["c1", 1], "Maze", {}]`,
		`[["c2", 1], "Maze", {}]`,
		`[["c1", 2], "Maze", {}]`,
		`[["c3", 1], "Maze", {}]`,
		`[["c2", 2], "Maze", {}]`,
	)

	tokens := quotedTokens(ForRecords(recs))
	assert.ElementsMatch(t, []string{"c1", "c2", "c3"}, tokens)
}

func TestForRecords_Deterministic(t *testing.T) {
	a := parse(t, `[["x", 1], "Maze", {}]`, `[["y", 1], "Maze", {}]`)
	b := parse(t, `[["y", 1], "Maze", {}]`, `[["x", 1], "Maze", {}]`)

	assert.Equal(t, ForRecords(a), ForRecords(b))
}
