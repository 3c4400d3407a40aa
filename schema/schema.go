// Package schema has the view model, constants and result types shared by all parts of auditview.
package schema

// Badge is a colored risk or score marker.
type Badge struct {
	Label    string `json:"label" yaml:"label"`       // Text shown inside the badge
	Level    string `json:"level" yaml:"level"`       // Normalized risk level or tone name
	Color    string `json:"color" yaml:"color"`       // Hex display color
	Severity int    `json:"severity" yaml:"severity"` // 0 when unranked
}

// MetricValue is a raw field paired with its display text.
type MetricValue struct {
	Raw  any        `json:"raw,omitempty" yaml:"raw,omitempty"`
	Kind MetricKind `json:"kind" yaml:"kind"`
	Text string     `json:"text" yaml:"text"`
}

// Field is a labeled value inside a card or status block.
// List-valued fields carry Items instead of Value.
type Field struct {
	Label string   `json:"label" yaml:"label"`
	Value string   `json:"value,omitempty" yaml:"value,omitempty"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
	Tone  Tone     `json:"tone,omitempty" yaml:"tone,omitempty"`
	Badge *Badge   `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// Card is a titled group of fields, usually one finding.
type Card struct {
	Title    string  `json:"title" yaml:"title"`
	Subtitle string  `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Badge    *Badge  `json:"badge,omitempty" yaml:"badge,omitempty"`
	Fields   []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Cell is one table cell.
type Cell struct {
	Text  string `json:"text" yaml:"text"`
	Tone  Tone   `json:"tone,omitempty" yaml:"tone,omitempty"`
	Badge *Badge `json:"badge,omitempty" yaml:"badge,omitempty"`
}

// Table is a header row plus data rows of equal width.
type Table struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]Cell `json:"rows" yaml:"rows"`
}

// TagGroup is a labeled list of short tags.
type TagGroup struct {
	Label string   `json:"label" yaml:"label"`
	Tone  Tone     `json:"tone,omitempty" yaml:"tone,omitempty"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Metric is one cell of a metric grid.
type Metric struct {
	Label     string      `json:"label" yaml:"label"`
	Value     MetricValue `json:"value" yaml:"value"`
	Tone      Tone        `json:"tone,omitempty" yaml:"tone,omitempty"`
	Badge     *Badge      `json:"badge,omitempty" yaml:"badge,omitempty"`
	Note      string      `json:"note,omitempty" yaml:"note,omitempty"`           // Trend or comparison text
	Highlight bool        `json:"highlight,omitempty" yaml:"highlight,omitempty"` // Peak values in a series
}

// StatusBlock is a headline assessment with supporting fields.
type StatusBlock struct {
	Status  string  `json:"status,omitempty" yaml:"status,omitempty"`
	Tone    Tone    `json:"tone,omitempty" yaml:"tone,omitempty"`
	Badge   *Badge  `json:"badge,omitempty" yaml:"badge,omitempty"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
	Fields  []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Section is a named unit of a view. Exactly one content field is set, matching Kind.
type Section struct {
	Kind    SectionKind  `json:"kind" yaml:"kind"`
	Key     string       `json:"key" yaml:"key"`                         // Stable identifier, e.g. "finance.key_risk_areas"
	Group   string       `json:"group,omitempty" yaml:"group,omitempty"` // Parent heading shared by sibling sections
	Title   string       `json:"title" yaml:"title"`
	Cards   []Card       `json:"cards,omitempty" yaml:"cards,omitempty"`
	Table   *Table       `json:"table,omitempty" yaml:"table,omitempty"`
	Tags    []TagGroup   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Metrics []Metric     `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Status  *StatusBlock `json:"status,omitempty" yaml:"status,omitempty"`
}

// ViewModel is the rendered view of one domain payload.
type ViewModel struct {
	Domain   Domain    `json:"domain" yaml:"domain"`
	Variant  Variant   `json:"variant,omitempty" yaml:"variant,omitempty"`
	State    ViewState `json:"state" yaml:"state"`
	Title    string    `json:"title" yaml:"title"`
	Message  string    `json:"message,omitempty" yaml:"message,omitempty"` // Set for empty and failed views
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section returns the first section with the given key.
func (vm ViewModel) Section(key string) (Section, bool) {
	for _, s := range vm.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}

// SectionKeys returns the keys of all sections in display order.
func (vm ViewModel) SectionKeys() []string {
	keys := make([]string, len(vm.Sections))
	for i, s := range vm.Sections {
		keys[i] = s.Key
	}
	return keys
}

// ClassifyResult describes which schema variant a payload matched.
type ClassifyResult struct {
	Domain  Domain  `json:"domain" yaml:"domain"`
	Variant Variant `json:"variant" yaml:"variant"`
	Rule    string  `json:"rule" yaml:"rule"` // Name of the matching rule, or "fallback"
}

// DashboardResult holds every domain view of one company snapshot.
type DashboardResult struct {
	Company string      `json:"company" yaml:"company"`
	Layer   Layer       `json:"layer" yaml:"layer"`
	Views   []ViewModel `json:"views" yaml:"views"`
}

// RuleInfo describes one row of a domain's classification table.
type RuleInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Variant Variant  `json:"variant" yaml:"variant"`
	Markers []string `json:"markers" yaml:"markers"`
}

// DomainInfo describes a supported domain and how its variants are detected.
type DomainInfo struct {
	Domain   Domain     `json:"domain" yaml:"domain"`
	Title    string     `json:"title" yaml:"title"`
	Variants []Variant  `json:"variants" yaml:"variants"`
	Rules    []RuleInfo `json:"rules" yaml:"rules"`
	NoData   string     `json:"no_data" yaml:"no_data"`
}
