// Package parquet provides data structures and functions for exporting rendered
// audit views to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/auditview/schema"
	"github.com/parquet-go/parquet-go"
)

// ViewSummary represents one rendered domain view of a company snapshot.
type ViewSummary struct {
	// Company is the DataLake company id, empty for payloads read from files
	Company string `parquet:"company,snappy"`

	// Layer is the DataLake layer the payload came from
	Layer string `parquet:"layer,snappy"`

	// Domain is the audit domain of the view
	Domain string `parquet:"domain,snappy"`

	// Variant is the detected schema variant (nullable for views that never reached a builder)
	Variant *string `parquet:"variant,optional,snappy"`

	// State is built, empty or failed
	State string `parquet:"state,snappy"`

	// Title is the view heading
	Title string `parquet:"title,snappy"`

	// Message is the empty or failed message (nullable)
	Message *string `parquet:"message,optional,snappy"`

	// SectionCount is the number of sections in the view
	SectionCount int32 `parquet:"section_count,snappy"`

	// RenderedAt is when the view was rendered (stored as TIMESTAMP with nanosecond precision)
	RenderedAt time.Time `parquet:"rendered_at,snappy"`
}

// SectionRow is one flattened labeled value of a view section.
type SectionRow struct {
	Company string `parquet:"company,snappy"`
	Domain  string `parquet:"domain,snappy"`
	Variant string `parquet:"variant,snappy"`
	State   string `parquet:"state,snappy"`

	// Position keeps the display order within the view
	Position int32 `parquet:"position,snappy"`

	SectionKey   string `parquet:"section_key,snappy"`
	SectionGroup string `parquet:"section_group,snappy"`
	SectionTitle string `parquet:"section_title,snappy"`
	SectionKind  string `parquet:"section_kind,snappy"`
	Item         string `parquet:"item,snappy"`
	Label        string `parquet:"label,snappy"`
	Value        string `parquet:"value,snappy"`
}

// FromViews converts rendered views to Parquet records.
func FromViews(company string, layer schema.Layer, views []schema.ViewModel, renderedAt time.Time) ([]ViewSummary, []SectionRow) {
	summaries := make([]ViewSummary, 0, len(views))
	var rows []SectionRow
	for _, vm := range views {
		summary := ViewSummary{
			Company:      company,
			Layer:        string(layer),
			Domain:       string(vm.Domain),
			State:        string(vm.State),
			Title:        vm.Title,
			SectionCount: int32(len(vm.Sections)),
			RenderedAt:   renderedAt,
		}
		if vm.Variant != "" {
			variant := string(vm.Variant)
			summary.Variant = &variant
		}
		if vm.Message != "" {
			message := vm.Message
			summary.Message = &message
		}
		summaries = append(summaries, summary)

		for i, r := range vm.Flatten() {
			rows = append(rows, SectionRow{
				Company:      company,
				Domain:       string(r.Domain),
				Variant:      string(r.Variant),
				State:        string(r.State),
				Position:     int32(i),
				SectionKey:   r.Section,
				SectionGroup: r.Group,
				SectionTitle: r.Title,
				SectionKind:  string(r.Kind),
				Item:         r.Item,
				Label:        r.Label,
				Value:        r.Value,
			})
		}
	}
	return summaries, rows
}

// WriteViewSummariesParquet writes a slice of ViewSummary structs to a Parquet file.
func WriteViewSummariesParquet(data []ViewSummary, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSectionRowsParquet writes a slice of SectionRow structs to a Parquet file.
func WriteSectionRowsParquet(data []SectionRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records using struct schema inference from their tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
