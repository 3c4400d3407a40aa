// Package contract provides interfaces and shared utilities for auditview's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/auditview/schema"
)

// PayloadSource defines the read-only access to DataLake payloads.
// This allows the render commands to be tested without a real DataLake.
type PayloadSource interface {
	// Fetch returns the raw payload of one domain for one company snapshot.
	// Missing payloads are reported with an error wrapping datalake.ErrNotFound.
	Fetch(ctx context.Context, company string, domain schema.Domain, layer schema.Layer) ([]byte, error)

	// Describe returns a short human-readable location of the source.
	Describe() string

	// Close releases the underlying connection or handles.
	Close() error
}
