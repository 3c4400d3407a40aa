// Package datalake fetches audit payloads from the DataLake, either a directory
// of JSON files or a read-only SQL table.
package datalake

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
)

// ErrNotFound is returned when no payload exists for a company, domain and layer.
var ErrNotFound = errors.New("payload not found")

// ErrUnexpectedFormat marks payloads whose data_format is not an audit dashboard.
var ErrUnexpectedFormat = errors.New("unexpected data format")

// Open returns the payload source selected by the configuration.
func Open(ctx context.Context, cfg *contract.Config) (contract.PayloadSource, error) {
	switch cfg.SourceBackend {
	case schema.FileBackend, "":
		return NewFileSource(cfg.SourceDir), nil
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
		return NewSQLSource(ctx, cfg.SourceBackend, cfg.SourceDBConnect, cfg.SourceTable)
	default:
		return nil, fmt.Errorf("unsupported source backend: %s", cfg.SourceBackend)
	}
}

// Load fetches and decodes one payload.
func Load(ctx context.Context, src contract.PayloadSource, company string, domain schema.Domain, layer schema.Layer) (any, error) {
	data, err := src.Fetch(ctx, company, domain, layer)
	if err != nil {
		return nil, err
	}
	v, err := payload.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s payload of %s: %w", domain, company, err)
	}
	return v, nil
}

// CheckFormat reports payloads carrying a data_format other than the audit dashboard marker.
// Payloads without the marker are accepted.
func CheckFormat(v any) error {
	marker := payload.Wrap(v).Get("data_format")
	if !marker.Present() {
		return nil
	}
	if got := marker.Text(); got != schema.AnalysisDashboardFormat {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnexpectedFormat, got, schema.AnalysisDashboardFormat)
	}
	return nil
}
