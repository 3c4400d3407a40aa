package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/auditview/core/classify"
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
)

// WriteClassifyResults outputs classification results, dispatching based on the output format configured.
func WriteClassifyResults(results []schema.ClassifyResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, results)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"domain", "variant", "rule"}, func(cw *csv.Writer) error {
				for _, r := range results {
					if err := cw.Write([]string{string(r.Domain), string(r.Variant), r.Rule}); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("classification results")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			var data [][]string
			for _, r := range results {
				data = append(data, []string{string(r.Domain), string(r.Variant), r.Rule})
			}
			return renderTable(w, []string{"Domain", "Variant", "Rule"}, data)
		}, "Wrote table")
	}
}

// WriteDomainInfos outputs the supported domains, dispatching based on the output format configured.
func WriteDomainInfos(infos []schema.DomainInfo, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, infos)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, infos)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"domain", "title", "rule", "variant", "markers"}, func(cw *csv.Writer) error {
				for _, rec := range domainRows(infos) {
					if err := cw.Write(rec); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported("the domain listing")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return renderTable(w, []string{"Domain", "Title", "Rule", "Variant", "Markers"}, domainRows(infos))
		}, "Wrote table")
	}
}

// domainRows lists one row per classification rule plus the fallback.
func domainRows(infos []schema.DomainInfo) [][]string {
	var data [][]string
	for _, info := range infos {
		for _, r := range info.Rules {
			data = append(data, []string{
				string(info.Domain), info.Title, r.Name, string(r.Variant), strings.Join(r.Markers, ", "),
			})
		}
		data = append(data, []string{string(info.Domain), info.Title, classify.FallbackRule, string(schema.DefaultVariant), ""})
	}
	return data
}
