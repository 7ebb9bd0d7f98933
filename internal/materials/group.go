package materials

import (
	"bytes"

	"github.com/samber/lo"

	"github.com/NielsdaWheelz/mazegen/internal/record"
)

// ByTag maps tags to their records, remembering the order tags were first
// seen. It serializes as a JSON object in that order.
type ByTag struct {
	tags   []string
	groups map[string][]record.Record
}

// GroupByTag appends each file's records to its tag's group, in file order
// and then line order. Files sharing a tag share a group. A tag gets a group
// only once it has a record, so empty files contribute nothing.
func GroupByTag(files []File) ByTag {
	out := ByTag{groups: make(map[string][]record.Record)}
	for _, f := range files {
		if len(f.Records) == 0 {
			continue
		}
		if _, ok := out.groups[f.Tag]; !ok {
			out.tags = append(out.tags, f.Tag)
			out.groups[f.Tag] = []record.Record{}
		}
		out.groups[f.Tag] = append(out.groups[f.Tag], f.Records...)
	}
	return out
}

// Tags returns the tags in first-seen order.
func (m ByTag) Tags() []string {
	return append([]string(nil), m.tags...)
}

// Records returns the group for tag.
func (m ByTag) Records(tag string) []record.Record {
	return m.groups[tag]
}

// Sizes returns the group sizes, aligned with Tags.
func (m ByTag) Sizes() []int {
	return lo.Map(m.tags, func(tag string, _ int) int {
		return len(m.groups[tag])
	})
}

// Total returns the number of records across all groups.
func (m ByTag) Total() int {
	return lo.Sum(m.Sizes())
}

// All returns every record, group by group.
func (m ByTag) All() []record.Record {
	return lo.FlatMap(m.tags, func(tag string, _ int) []record.Record {
		return m.groups[tag]
	})
}

// MarshalJSON writes {"tag": [record, ...], ...} in tag order.
func (m ByTag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tag := range m.tags {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := record.Marshal(tag)
		if err != nil {
			return nil, err
		}
		recs, err := record.Marshal(m.groups[tag])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(recs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
