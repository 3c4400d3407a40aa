package contract

import (
	"testing"

	"github.com/huangsam/auditview/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:   "text",
		Emoji:    "no",
		Color:    "yes",
		LogLevel: "warn",
		Workers:  4,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) {
			in.Output = "parquet"
			in.OutputFile = "views.parquet"
		}},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "too many workers", mutate: func(in *ConfigRawInput) { in.Workers = MaxWorkers + 1 }, expectError: true},
		{name: "negative width", mutate: func(in *ConfigRawInput) { in.Width = -1 }, expectError: true},
		{name: "invalid emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "sometimes" }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "rainbow" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "invalid layer", mutate: func(in *ConfigRawInput) { in.Layer = "gold" }, expectError: true},
		{name: "company with path", mutate: func(in *ConfigRawInput) { in.Company = "../etc" }, expectError: true},
		{name: "invalid domain", mutate: func(in *ConfigRawInput) { in.Domains = "finance,weather" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.SourceBackend = "redis" }, expectError: true},
		{name: "mysql without connect", mutate: func(in *ConfigRawInput) { in.SourceBackend = "mysql" }, expectError: true},
		{name: "mysql with connect", mutate: func(in *ConfigRawInput) {
			in.SourceBackend = "mysql"
			in.SourceDBConnect = "user:pass@tcp(localhost:3306)/audit"
		}},
		{name: "postgresql with connect", mutate: func(in *ConfigRawInput) {
			in.SourceBackend = "postgresql"
			in.SourceDBConnect = "host=localhost port=5432 user=audit dbname=audit"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	input := validInput()
	input.LogLevel = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, DefaultCompany, cfg.Company)
	assert.Equal(t, schema.AnalysisLayer, cfg.Layer)
	assert.Equal(t, schema.FileBackend, cfg.SourceBackend)
	assert.Equal(t, ".", cfg.SourceDir)
	assert.Equal(t, DefaultTable, cfg.SourceTable)
	assert.Equal(t, logrus.WarnLevel, cfg.LogLevel)
	assert.Equal(t, schema.AllDomains, cfg.Domains)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
}

func TestProcessAndValidateNormalizes(t *testing.T) {
	input := validInput()
	input.Output = "JSON"
	input.Company = " Beta "
	input.Layer = "Feature"
	input.Domains = "macro, external"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, "beta", cfg.Company)
	assert.Equal(t, schema.FeatureLayer, cfg.Layer)
	assert.Equal(t, []schema.Domain{schema.MacroDomain, schema.ExternalDomain}, cfg.Domains)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.SourceBackend
		connStr     string
		expectError bool
	}{
		{"file ignores connect", schema.FileBackend, "", false},
		{"sqlite without connect", schema.SQLiteBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)/datalake", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/datalake", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(127.0.0.1:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db dbname=datalake", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=datalake", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=db", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDomains(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []schema.Domain
		wantErr  bool
	}{
		{"empty selects all", "", schema.AllDomains, false},
		{"single", "opinion", []schema.Domain{schema.OpinionDomain}, false},
		{"dedup keeps order", "macro,finance,macro", []schema.Domain{schema.MacroDomain, schema.FinanceDomain}, false},
		{"only commas", ",,", nil, true},
		{"unknown", "finance,sports", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDomains(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Company: "aura", Domains: []schema.Domain{schema.FinanceDomain}}
	clone := cfg.Clone()
	clone.Domains[0] = schema.MacroDomain
	clone.Company = "beta"

	assert.Equal(t, schema.FinanceDomain, cfg.Domains[0])
	assert.Equal(t, "aura", cfg.Company)
}
