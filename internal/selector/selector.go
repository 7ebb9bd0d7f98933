// Package selector builds the item selector expression for the experiment
// runner's shuffleSequence.
package selector

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/NielsdaWheelz/mazegen/internal/record"
)

// Conditions returns the distinct condition tags of recs, sorted.
func Conditions(recs []record.Record) []string {
	tags := lo.Uniq(lo.Map(recs, func(r record.Record, _ int) string {
		return r.Condition.Tag
	}))
	sort.Strings(tags)
	return tags
}

// Build renders
//
//	randomize(anyOf(startsWith("A"), startsWith("B")))
//
// with one startsWith per distinct condition, in sorted order. Each condition
// is written as a JSON string literal, which is also a valid script string.
func Build(conditions []string) string {
	conds := lo.Uniq(conditions)
	sort.Strings(conds)

	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		lit, _ := record.Marshal(c) // strings always encode
		parts = append(parts, "startsWith("+string(lit)+")")
	}
	return "randomize(anyOf(" + strings.Join(parts, ", ") + "))"
}

// ForRecords is Build(Conditions(recs)).
func ForRecords(recs []record.Record) string {
	return Build(Conditions(recs))
}
