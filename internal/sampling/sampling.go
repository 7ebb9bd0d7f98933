// Package sampling computes how many items per tag the generated experiment
// script draws for each participant.
//
// The script itself does the drawing at runtime; this package mirrors its
// arithmetic so a plan can be reported before anything is generated:
//
//	sample_size(tag) = floor(|group(tag)| / sum(|group|) * items_per_subject)
//
// Floor rounding can allocate fewer than items_per_subject items in total.
// That is the generated script's behavior and is kept as-is here.
package sampling

import (
	"math"

	"github.com/samber/lo"
)

// Allocation is the sample size for one tag.
type Allocation struct {
	Tag        string `json:"tag"`
	GroupSize  int    `json:"group_size"`
	SampleSize int    `json:"sample_size"`
}

// Plan is the per-tag allocation for one participant.
type Plan struct {
	ItemsPerSubject int          `json:"items_per_subject"`
	Allocations     []Allocation `json:"allocations"`
}

// Total returns the number of items the plan draws.
func (p Plan) Total() int {
	return lo.SumBy(p.Allocations, func(a Allocation) int { return a.SampleSize })
}

// Shortfall returns how many items floor rounding leaves unallocated.
func (p Plan) Shortfall() int {
	if p.Total() >= p.ItemsPerSubject {
		return 0
	}
	return p.ItemsPerSubject - p.Total()
}

// SampleSize applies the runtime formula in float64, as the script does.
// It returns 0 when there is nothing to sample from.
func SampleSize(groupSize, totalSize, itemsPerSubject int) int {
	if totalSize <= 0 {
		return 0
	}
	return int(math.Floor(float64(groupSize) / float64(totalSize) * float64(itemsPerSubject)))
}

// Sizes returns SampleSize for each group size.
func Sizes(groupSizes []int, itemsPerSubject int) []int {
	total := lo.Sum(groupSizes)
	return lo.Map(groupSizes, func(n int, _ int) int {
		return SampleSize(n, total, itemsPerSubject)
	})
}

// NewPlan builds a plan for tags with the given group sizes (aligned slices).
func NewPlan(tags []string, groupSizes []int, itemsPerSubject int) Plan {
	sizes := Sizes(groupSizes, itemsPerSubject)
	plan := Plan{ItemsPerSubject: itemsPerSubject, Allocations: []Allocation{}}
	for i, tag := range tags {
		plan.Allocations = append(plan.Allocations, Allocation{
			Tag:        tag,
			GroupSize:  groupSizes[i],
			SampleSize: sizes[i],
		})
	}
	return plan
}
