package schema

import (
	"strconv"
	"strings"
)

// FlatRow is one labeled value of a view, used for row-oriented exports (CSV, Parquet).
type FlatRow struct {
	Domain  Domain
	Variant Variant
	State   ViewState
	Section string // Section key, empty for view-level rows
	Group   string
	Title   string
	Kind    SectionKind
	Item    string // Card title, table row id, tag group or metric label
	Label   string
	Value   string
}

// ListSeparator joins list items in flattened values.
const ListSeparator = "; "

// Flatten converts a view into ordered rows.
// Views without sections still yield a single row carrying their message.
func (vm ViewModel) Flatten() []FlatRow {
	var rows []FlatRow
	base := FlatRow{Domain: vm.Domain, Variant: vm.Variant, State: vm.State}
	if len(vm.Sections) == 0 {
		r := base
		r.Label = "message"
		r.Value = vm.Message
		return append(rows, r)
	}
	for _, s := range vm.Sections {
		sb := base
		sb.Section = s.Key
		sb.Group = s.Group
		sb.Title = s.Title
		sb.Kind = s.Kind
		rows = append(rows, flattenSection(sb, s)...)
	}
	return rows
}

func flattenSection(base FlatRow, s Section) []FlatRow {
	var rows []FlatRow
	add := func(item, label, value string) {
		r := base
		r.Item, r.Label, r.Value = item, label, value
		rows = append(rows, r)
	}

	switch s.Kind {
	case CardSection:
		for _, c := range s.Cards {
			if c.Badge != nil {
				add(c.Title, "badge", c.Badge.Label)
			}
			for _, f := range c.Fields {
				add(c.Title, f.Label, f.Text())
			}
		}
	case TableSection:
		if s.Table == nil {
			break
		}
		for i, row := range s.Table.Rows {
			item := strconv.Itoa(i + 1)
			if len(row) > 0 && row[0].Text != "" {
				item = row[0].Text
			}
			for j, cell := range row {
				if j < len(s.Table.Columns) {
					add(item, s.Table.Columns[j], cell.Display())
				}
			}
		}
	case TagListSection:
		for _, g := range s.Tags {
			add(g.Label, g.Label, strings.Join(g.Tags, ListSeparator))
		}
	case MetricGridSection:
		for _, m := range s.Metrics {
			value := m.Value.Text
			if m.Badge != nil && value == "" {
				value = m.Badge.Label
			}
			add(m.Label, m.Label, value)
		}
	case StatusBlockSection:
		if s.Status == nil {
			break
		}
		if s.Status.Status != "" {
			add(s.Title, "status", s.Status.Status)
		}
		if s.Status.Badge != nil {
			add(s.Title, "badge", s.Status.Badge.Label)
		}
		if s.Status.Message != "" {
			add(s.Title, "message", s.Status.Message)
		}
		for _, f := range s.Status.Fields {
			add(s.Title, f.Label, f.Text())
		}
	}
	return rows
}

// Text returns the display text of a field, joining list items.
func (f Field) Text() string {
	if len(f.Items) > 0 {
		return strings.Join(f.Items, ListSeparator)
	}
	if f.Value == "" && f.Badge != nil {
		return f.Badge.Label
	}
	return f.Value
}

// Display returns the cell text, falling back to the badge label.
func (c Cell) Display() string {
	if c.Text == "" && c.Badge != nil {
		return c.Badge.Label
	}
	return c.Text
}
