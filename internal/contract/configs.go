package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/huangsam/auditview/schema"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultCompany  = "aura"
	DefaultTable    = "datalake_payloads"
	DefaultLogLevel = "warn"
	MaxWorkers      = 64
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for rendering.
// This struct is the "final, validated" config.
type Config struct {
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	LogLevel   logrus.Level

	Domain    string // Positional domain of render and classify, kept raw
	InputPath string // Payload file, "-" for stdin, "" to fetch from the DataLake

	Company string
	Layer   schema.Layer
	Domains []schema.Domain
	Workers int

	SourceBackend   schema.SourceBackend
	SourceDir       string
	SourceDBConnect string // Please use env var as this is plaintext
	SourceTable     string

	UseEmojis bool // Enable emojis in status lines
	UseColors bool // Enable colored badges in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Emoji           string `mapstructure:"emoji"`
	Color           string `mapstructure:"color"`
	LogLevel        string `mapstructure:"log-level"`
	Company         string `mapstructure:"company"`
	Layer           string `mapstructure:"layer"`
	SourceBackend   string `mapstructure:"source-backend"`
	SourceDir       string `mapstructure:"source-dir"`
	SourceDBConnect string `mapstructure:"source-db-connect"`
	SourceTable     string `mapstructure:"source-table"`

	// --- Fields from dashboardCmd.Flags() ---
	Domains string `mapstructure:"domains"`
	Workers int    `mapstructure:"workers"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Domains != nil {
		clone.Domains = make([]schema.Domain, len(c.Domains))
		copy(clone.Domains, c.Domains)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSourceConfig(cfg, input); err != nil {
		return err
	}
	domains, err := ParseDomains(input.Domains)
	if err != nil {
		return err
	}
	cfg.Domains = domains
	return nil
}

// validateSimpleInputs processes and validates all non-source fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	levelStr := input.LogLevel
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level

	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be greater than 0 and cannot exceed %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.Company = strings.ToLower(strings.TrimSpace(input.Company))
	if cfg.Company == "" {
		cfg.Company = DefaultCompany
	}
	if strings.ContainsAny(cfg.Company, `/\.`) {
		return fmt.Errorf("invalid company '%s'. must not contain path separators or dots", input.Company)
	}

	cfg.Layer = schema.Layer(strings.ToLower(input.Layer))
	if cfg.Layer == "" {
		cfg.Layer = schema.AnalysisLayer
	}
	if _, ok := schema.ValidLayers[cfg.Layer]; !ok {
		return fmt.Errorf("invalid layer '%s'. must be raw, feature, analysis", input.Layer)
	}
	return nil
}

// validateSourceConfig validates the DataLake backend configuration.
func validateSourceConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.SourceBackend = schema.SourceBackend(strings.ToLower(input.SourceBackend))
	if cfg.SourceBackend == "" {
		cfg.SourceBackend = schema.FileBackend
	}
	if _, ok := schema.ValidSourceBackends[cfg.SourceBackend]; !ok {
		return fmt.Errorf("invalid source backend '%s'. must be file, sqlite, mysql, postgresql", input.SourceBackend)
	}
	cfg.SourceDir = input.SourceDir
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	cfg.SourceTable = input.SourceTable
	if cfg.SourceTable == "" {
		cfg.SourceTable = DefaultTable
	}
	cfg.SourceDBConnect = input.SourceDBConnect
	return ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.SourceBackend, connStr string) error {
	switch backend {
	case schema.FileBackend, schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("source-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseDomains parses a comma-separated domain list. An empty list selects every domain.
// Duplicates are dropped and the order of first appearance is kept.
func ParseDomains(s string) ([]schema.Domain, error) {
	if strings.TrimSpace(s) == "" {
		out := make([]schema.Domain, len(schema.AllDomains))
		copy(out, schema.AllDomains)
		return out, nil
	}
	var out []schema.Domain
	seen := map[schema.Domain]bool{}
	for part := range strings.SplitSeq(s, ",") {
		d := schema.Domain(strings.ToLower(strings.TrimSpace(part)))
		if d == "" {
			continue
		}
		if _, ok := schema.ValidDomains[d]; !ok {
			return nil, fmt.Errorf("invalid domain '%s'. must be finance, operation, opinion, macro, external", part)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid domain in '%s'", s)
	}
	return out, nil
}
