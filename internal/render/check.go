package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteCheckHuman writes the check output as stable key: value lines
// followed by a per-tag table.
func WriteCheckHuman(w io.Writer, s CheckSummary) error {
	conditions := "none"
	if len(s.Conditions) > 0 {
		conditions = strings.Join(s.Conditions, ", ")
	}

	lines := []string{
		"materials_dir: " + s.MaterialsDir,
		"files: " + strconv.Itoa(len(s.Files)),
		"records: " + strconv.Itoa(s.Records),
		"conditions: " + conditions,
		"selector: " + s.Selector,
		"items_per_subject: " + strconv.Itoa(s.Plan.ItemsPerSubject),
		"sampled_per_subject: " + strconv.Itoa(s.Plan.Total()),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if s.Shortfall > 0 {
		if _, err := fmt.Fprintf(w, "warning: floor rounding leaves %d of %d items unallocated\n",
			s.Shortfall, s.Plan.ItemsPerSubject); err != nil {
			return err
		}
	}

	if len(s.Plan.Allocations) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeTagTable(w, s)
}

// tagRow holds the fields for a single human-output row.
type tagRow struct {
	Tag    string
	Group  string
	Sample string
}

func writeTagTable(w io.Writer, s CheckSummary) error {
	rows := make([]tagRow, 0, len(s.Plan.Allocations))
	for _, a := range s.Plan.Allocations {
		rows = append(rows, tagRow{
			Tag:    a.Tag,
			Group:  strconv.Itoa(a.GroupSize),
			Sample: strconv.Itoa(a.SampleSize),
		})
	}

	widths := columnWidths(rows)

	if _, err := fmt.Fprintln(w, formatRow("TAG", widths.tag, "RECORDS", widths.group, "SAMPLED")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row.Tag, widths.tag, row.Group, widths.group, row.Sample)); err != nil {
			return err
		}
	}
	return nil
}

// colWidths holds the calculated column widths.
type colWidths struct {
	tag   int
	group int
}

// columnWidths calculates the maximum width for each padded column.
func columnWidths(rows []tagRow) colWidths {
	widths := colWidths{
		tag:   len("TAG"),
		group: len("RECORDS"),
	}
	for _, row := range rows {
		if len(row.Tag) > widths.tag {
			widths.tag = len(row.Tag)
		}
		if len(row.Group) > widths.group {
			widths.group = len(row.Group)
		}
	}
	return widths
}

// formatRow formats a row with the given column values and widths.
func formatRow(tag string, tagW int, group string, groupW int, sample string) string {
	return fmt.Sprintf("%-*s  %-*s  %s", tagW, tag, groupW, group, sample)
}
