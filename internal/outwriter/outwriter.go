// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"time"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteViews prints rendered views using the configured output format.
func (ow *OutWriter) WriteViews(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	return WriteViewResults(result, cfg, duration)
}

// WriteClassify prints classification results using the configured output format.
func (ow *OutWriter) WriteClassify(results []schema.ClassifyResult, cfg *contract.Config) error {
	return WriteClassifyResults(results, cfg)
}

// WriteDomains prints the supported domains using the configured output format.
func (ow *OutWriter) WriteDomains(infos []schema.DomainInfo, cfg *contract.Config) error {
	return WriteDomainInfos(infos, cfg)
}

// errParquetUnsupported is returned by listings that have no columnar form.
func errParquetUnsupported(what string) error {
	return fmt.Errorf("parquet output is not supported for %s; use json, yaml, csv or text", what)
}
