package schema

// Custom string types for type safety.
type (
	// Domain represents one of the analytical audit domains.
	Domain string

	// Variant represents the schema shape a payload follows within a domain.
	Variant string

	// SectionKind represents the display kind of a view section.
	SectionKind string

	// ViewState represents the outcome of a render.
	ViewState string

	// Tone represents the semantic color bucket of a value.
	Tone string

	// MetricKind represents how a raw numeric field was interpreted.
	MetricKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceBackend represents where DataLake payloads are fetched from.
	SourceBackend string

	// Layer represents a DataLake processing layer.
	Layer string
)

// All audit domains supported.
const (
	FinanceDomain   Domain = "finance"
	OperationDomain Domain = "operation"
	OpinionDomain   Domain = "opinion"
	MacroDomain     Domain = "macro"
	ExternalDomain  Domain = "external"
)

// All schema variants supported.
const (
	DefaultVariant   Variant = "default"
	AlternateVariant Variant = "alternate"
)

// All section kinds supported.
const (
	CardSection        SectionKind = "card"
	TableSection       SectionKind = "table"
	TagListSection     SectionKind = "tagList"
	MetricGridSection  SectionKind = "metricGrid"
	StatusBlockSection SectionKind = "statusBlock"
)

// All view states supported.
const (
	BuiltState  ViewState = "built"
	EmptyState  ViewState = "empty"
	FailedState ViewState = "failed"
)

// All tones supported.
const (
	NeutralTone  Tone = ""
	PositiveTone Tone = "positive"
	WarningTone  Tone = "warning"
	NegativeTone Tone = "negative"
)

// All metric kinds supported.
const (
	FractionKind   MetricKind = "fraction"   // 0.153 shown as 15.3%
	PercentageKind MetricKind = "percentage" // 15.3 shown as 15.3%
	RatioKind      MetricKind = "ratio"
	CurrencyKind   MetricKind = "currency"
	CountKind      MetricKind = "count"
	RankKind       MetricKind = "rank"
	ScoreKind      MetricKind = "score"
	FreeformKind   MetricKind = "freeform"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All payload sources supported.
const (
	FileBackend       SourceBackend = "file" // default
	SQLiteBackend     SourceBackend = "sqlite"
	MySQLBackend      SourceBackend = "mysql"
	PostgreSQLBackend SourceBackend = "postgresql"
)

// All DataLake layers supported.
const (
	RawLayer      Layer = "raw"
	FeatureLayer  Layer = "feature"
	AnalysisLayer Layer = "analysis" // default
)

// AnalysisDashboardFormat is the data_format marker of audit-analysis payloads.
const AnalysisDashboardFormat = "analysis_dashboard"

// AllDomains lists every domain in display order.
var AllDomains = []Domain{FinanceDomain, OperationDomain, OpinionDomain, MacroDomain, ExternalDomain}

// KnownCompanies lists the sample companies shipped with the DataLake.
var KnownCompanies = []string{"aura", "beta", "crisis"}

// ValidDomains lists all valid domains.
var ValidDomains = map[Domain]struct{}{
	FinanceDomain:   {},
	OperationDomain: {},
	OpinionDomain:   {},
	MacroDomain:     {},
	ExternalDomain:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	JSONOut:    {},
	CSVOut:     {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidSourceBackends lists all valid payload sources.
var ValidSourceBackends = map[SourceBackend]struct{}{
	FileBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidLayers lists all valid DataLake layers.
var ValidLayers = map[Layer]struct{}{
	RawLayer:      {},
	FeatureLayer:  {},
	AnalysisLayer: {},
}

// DomainTitles maps each domain to its view heading.
var DomainTitles = map[Domain]string{
	FinanceDomain:   "财务审计分析",
	OperationDomain: "运营审计分析",
	OpinionDomain:   "舆情审计分析",
	MacroDomain:     "宏观经济审计分析",
	ExternalDomain:  "外部环境审计分析",
}

// Title returns the view heading of a domain, or the raw name when unknown.
func (d Domain) Title() string {
	if t, ok := DomainTitles[d]; ok {
		return t
	}
	return string(d)
}
