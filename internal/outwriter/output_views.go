package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/internal/parquet"
	"github.com/huangsam/auditview/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteViewResults outputs rendered views, dispatching based on the output format configured.
func WriteViewResults(result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeViewsCSV(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeViewsParquet(result, cfg.OutputFile, time.Now())
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeViewsText(w, result, cfg, duration)
		}, "Wrote table")
	}
}

// viewsCSVHeader lists the columns of flattened view rows.
var viewsCSVHeader = []string{"company", "domain", "variant", "state", "section", "group", "title", "kind", "item", "label", "value"}

func writeViewsCSV(w io.Writer, result schema.DashboardResult) error {
	return writeCSVWithHeader(w, viewsCSVHeader, func(cw *csv.Writer) error {
		for _, vm := range result.Views {
			for _, r := range vm.Flatten() {
				rec := []string{
					result.Company,
					string(r.Domain),
					string(r.Variant),
					string(r.State),
					r.Section,
					r.Group,
					r.Title,
					string(r.Kind),
					r.Item,
					r.Label,
					r.Value,
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
		return nil
	})
}

// writeViewsParquet writes section rows to outputFile and view summaries next to it.
func writeViewsParquet(result schema.DashboardResult, outputFile string, renderedAt time.Time) error {
	if outputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	summaries, rows := parquet.FromViews(result.Company, result.Layer, result.Views, renderedAt)
	if err := parquet.WriteSectionRowsParquet(rows, outputFile); err != nil {
		return err
	}
	summaryFile := SummaryPath(outputFile)
	if err := parquet.WriteViewSummariesParquet(summaries, summaryFile); err != nil {
		return err
	}
	contract.Logger.WithField("rows", len(rows)).Debug("wrote parquet export")
	fmt.Fprintf(stderr, "💾 Wrote Parquet to %s and %s\n", outputFile, summaryFile)
	return nil
}

// SummaryPath returns the view summary file written next to a section export.
func SummaryPath(outputFile string) string {
	ext := filepath.Ext(outputFile)
	return strings.TrimSuffix(outputFile, ext) + "_views" + ext
}

// writeViewsText renders every view as headings, field lists and tables.
func writeViewsText(w io.Writer, result schema.DashboardResult, cfg *contract.Config, duration time.Duration) error {
	p := newPalette(cfg)
	for i, vm := range result.Views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeViewText(w, vm, cfg, p); err != nil {
			return err
		}
	}
	if len(result.Views) > 1 || result.Company != "" {
		summary := fmt.Sprintf("Rendered %d views", len(result.Views))
		if result.Company != "" {
			summary += fmt.Sprintf(" for %s (%s layer)", result.Company, result.Layer)
		}
		if _, err := fmt.Fprintf(w, "\n%s in %v with %d workers\n", summary, duration.Round(time.Millisecond), cfg.Workers); err != nil {
			return err
		}
	}
	return nil
}

func writeViewText(w io.Writer, vm schema.ViewModel, cfg *contract.Config, p palette) error {
	heading := fmt.Sprintf("%s · %s", vm.Title, vm.Domain)
	if vm.Variant != "" {
		heading += fmt.Sprintf(" (%s)", vm.Variant)
	}
	if cfg.UseEmojis {
		heading = stateEmoji(vm.State) + " " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	if vm.State == schema.EmptyState {
		_, err := fmt.Fprintf(w, "  %s\n", vm.Message)
		return err
	}

	var group string
	for _, s := range vm.Sections {
		if s.Group != "" && s.Group != group && s.Group != s.Title {
			if _, err := fmt.Fprintf(w, "\n== %s ==\n", s.Group); err != nil {
				return err
			}
		}
		group = s.Group
		if _, err := fmt.Fprintf(w, "\n-- %s --\n", s.Title); err != nil {
			return err
		}
		if err := writeSectionText(w, s, cfg, p); err != nil {
			return err
		}
	}
	return nil
}

func stateEmoji(state schema.ViewState) string {
	switch state {
	case schema.BuiltState:
		return "📋"
	case schema.FailedState:
		return "❌"
	default:
		return "📭"
	}
}

func writeSectionText(w io.Writer, s schema.Section, cfg *contract.Config, p palette) error {
	switch s.Kind {
	case schema.CardSection:
		for _, c := range s.Cards {
			title := c.Title
			if c.Badge != nil {
				title += " [" + p.badge(c.Badge) + "]"
			}
			if c.Subtitle != "" {
				title += " " + c.Subtitle
			}
			if _, err := fmt.Fprintf(w, "▸ %s\n", title); err != nil {
				return err
			}
			if err := writeFieldsText(w, c.Fields, p); err != nil {
				return err
			}
		}
	case schema.TableSection:
		if s.Table == nil {
			return nil
		}
		width := GetMaxCellWidth(cfg, len(s.Table.Columns))
		var data [][]string
		for _, row := range s.Table.Rows {
			rec := make([]string, len(row))
			for i, c := range row {
				rec[i] = p.cell(c, width)
			}
			data = append(data, rec)
		}
		return renderTable(w, s.Table.Columns, data)
	case schema.TagListSection:
		for _, g := range s.Tags {
			tags := make([]string, len(g.Tags))
			for i, tag := range g.Tags {
				tags[i] = p.tone(g.Tone, tag)
			}
			if _, err := fmt.Fprintf(w, "%s: %s\n", g.Label, strings.Join(tags, ", ")); err != nil {
				return err
			}
		}
	case schema.MetricGridSection:
		width := GetMaxCellWidth(cfg, 3)
		var data [][]string
		for _, m := range s.Metrics {
			value := p.tone(m.Tone, contract.TruncateText(m.Value.Text, width))
			if m.Badge != nil {
				value = strings.TrimSpace(value + " " + p.badge(m.Badge))
			}
			if m.Highlight {
				value += " ▲"
			}
			data = append(data, []string{m.Label, value, contract.TruncateText(m.Note, width)})
		}
		return renderTable(w, []string{"指标", "数值", "备注"}, data)
	case schema.StatusBlockSection:
		if s.Status == nil {
			return nil
		}
		status := p.tone(s.Status.Tone, s.Status.Status)
		if s.Status.Badge != nil {
			status = strings.TrimSpace(status + " " + p.badge(s.Status.Badge))
		}
		if status != "" {
			if _, err := fmt.Fprintf(w, "状态: %s\n", status); err != nil {
				return err
			}
		}
		if s.Status.Message != "" {
			if _, err := fmt.Fprintln(w, p.tone(s.Status.Tone, s.Status.Message)); err != nil {
				return err
			}
		}
		return writeFieldsText(w, s.Status.Fields, p)
	}
	return nil
}

// writeFieldsText prints fields as indented lines, list items one per line.
func writeFieldsText(w io.Writer, fields []schema.Field, p palette) error {
	for _, f := range fields {
		if len(f.Items) > 0 {
			if _, err := fmt.Fprintf(w, "  %s:\n", f.Label); err != nil {
				return err
			}
			for _, item := range f.Items {
				if _, err := fmt.Fprintf(w, "    - %s\n", p.tone(f.Tone, item)); err != nil {
					return err
				}
			}
			continue
		}
		value := p.tone(f.Tone, f.Value)
		if f.Badge != nil {
			value = strings.TrimSpace(value + " " + p.badge(f.Badge))
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", f.Label, value); err != nil {
			return err
		}
	}
	return nil
}

func renderTable(w io.Writer, header []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
