package builder

import (
	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/core/risk"
	"github.com/huangsam/auditview/schema"
)

// filled reports whether n is an object with at least one key.
func filled(n payload.Node) bool {
	return n.IsObject() && n.Len() > 0
}

// sectionList accumulates sections in display order. Nil sections are dropped.
type sectionList []schema.Section

func (l *sectionList) add(sections ...*schema.Section) {
	for _, s := range sections {
		if s != nil {
			*l = append(*l, *s)
		}
	}
}

func cardSection(key, group, title string, cards []schema.Card) *schema.Section {
	if len(cards) == 0 {
		return nil
	}
	return &schema.Section{Kind: schema.CardSection, Key: key, Group: group, Title: title, Cards: cards}
}

func tableSection(key, group, title string, columns []string, rows [][]schema.Cell) *schema.Section {
	if len(rows) == 0 {
		return nil
	}
	return &schema.Section{
		Kind:  schema.TableSection,
		Key:   key,
		Group: group,
		Title: title,
		Table: &schema.Table{Columns: columns, Rows: rows},
	}
}

func tagSection(key, group, title string, groups ...schema.TagGroup) *schema.Section {
	var kept []schema.TagGroup
	for _, g := range groups {
		if len(g.Tags) > 0 {
			kept = append(kept, g)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &schema.Section{Kind: schema.TagListSection, Key: key, Group: group, Title: title, Tags: kept}
}

func metricSection(key, group, title string, metrics []schema.Metric) *schema.Section {
	if len(metrics) == 0 {
		return nil
	}
	return &schema.Section{Kind: schema.MetricGridSection, Key: key, Group: group, Title: title, Metrics: metrics}
}

func statusSection(key, group, title string, block schema.StatusBlock) *schema.Section {
	if block.Status == "" && block.Badge == nil && block.Message == "" && len(block.Fields) == 0 {
		return nil
	}
	return &schema.Section{Kind: schema.StatusBlockSection, Key: key, Group: group, Title: title, Status: &block}
}

func tags(label string, tone schema.Tone, n payload.Node) schema.TagGroup {
	return schema.TagGroup{Label: label, Tone: tone, Tags: n.Strings()}
}

// fieldSet collects labeled fields, skipping empty values.
type fieldSet []schema.Field

func (f *fieldSet) text(label string, n payload.Node) *fieldSet {
	return f.value(label, n.Text())
}

func (f *fieldSet) value(label, value string) *fieldSet {
	if value != "" {
		*f = append(*f, schema.Field{Label: label, Value: value})
	}
	return f
}

func (f *fieldSet) toned(label, value string, tone schema.Tone) *fieldSet {
	if value != "" {
		*f = append(*f, schema.Field{Label: label, Value: value, Tone: tone})
	}
	return f
}

func (f *fieldSet) list(label string, n payload.Node) *fieldSet {
	if items := n.Strings(); len(items) > 0 {
		*f = append(*f, schema.Field{Label: label, Items: items})
	}
	return f
}

func (f *fieldSet) fields() []schema.Field {
	return []schema.Field(*f)
}

// cells builds one table row from the given texts.
func cells(texts ...string) []schema.Cell {
	row := make([]schema.Cell, len(texts))
	for i, t := range texts {
		row[i] = schema.Cell{Text: t}
	}
	return row
}

// rows maps every object element of an array node through fn.
func rows(n payload.Node, fn func(payload.Node) []schema.Cell) [][]schema.Cell {
	var out [][]schema.Cell
	for _, item := range n.Objects() {
		out = append(out, fn(item))
	}
	return out
}

// metric builds a metric grid cell.
func metric(label string, value schema.MetricValue) schema.Metric {
	return schema.Metric{Label: label, Value: value}
}

// presentMetrics keeps the metrics whose raw value exists.
func presentMetrics(metrics ...schema.Metric) []schema.Metric {
	var out []schema.Metric
	for _, m := range metrics {
		if m.Value.Raw != nil {
			out = append(out, m)
		}
	}
	return out
}

// findingCard builds the common area/level/description card used for risk findings.
func findingCard(item payload.Node, titleKey string, extra func(*fieldSet)) schema.Card {
	var fs fieldSet
	fs.text("描述", item.Get("description"))
	if extra != nil {
		extra(&fs)
	}
	return schema.Card{
		Title:  format.TextOr(item.Get(titleKey), format.Placeholder),
		Badge:  risk.Badge(item.Get("risk_level")),
		Fields: fs.fields(),
	}
}

// genericFields walks an object of unknown shape: scalars become fields,
// scalar lists become list fields and nested objects become "parent / child" fields.
func genericFields(n payload.Node, names labels) []schema.Field {
	var fs fieldSet
	walkFields(&fs, n, names, "")
	return fs.fields()
}

func walkFields(fs *fieldSet, n payload.Node, names labels, prefix string) {
	for _, e := range n.Entries() {
		label := names.of(e.Key)
		if prefix != "" {
			label = prefix + " / " + label
		}
		switch {
		case e.Value.IsObject():
			walkFields(fs, e.Value, names, label)
		case e.Value.IsArray():
			if len(e.Value.Objects()) == 0 {
				fs.list(label, e.Value)
			}
		default:
			fs.text(label, e.Value)
		}
	}
}

// genericTables renders every array-of-objects child of n as its own table,
// with columns taken from the union of scalar keys in first-seen order.
func genericTables(n payload.Node, keyPrefix, group string, names labels) []*schema.Section {
	var out []*schema.Section
	for _, e := range n.Entries() {
		objs := e.Value.Objects()
		if len(objs) == 0 {
			continue
		}
		var keys []string
		seen := map[string]bool{}
		for _, o := range objs {
			for _, k := range o.Keys() {
				if !seen[k] && !o.Get(k).IsObject() {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
		columns := make([]string, len(keys))
		for i, k := range keys {
			columns[i] = names.of(k)
		}
		var body [][]schema.Cell
		for _, o := range objs {
			texts := make([]string, len(keys))
			for i, k := range keys {
				texts[i] = cellText(o.Get(k))
			}
			body = append(body, cells(texts...))
		}
		out = append(out, tableSection(keyPrefix+"."+e.Key, group, names.of(e.Key), columns, body))
	}
	return out
}

// cellText renders a scalar or a scalar list.
func cellText(n payload.Node) string {
	if n.IsArray() {
		return format.Join(n)
	}
	return n.Text()
}
