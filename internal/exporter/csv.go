// Package exporter writes the pipeline's merged output table. The CSV it
// produces is the pipeline's one durable external contract: the date index
// reset to a plain first column, ratio columns rounded to the configured
// precision, count columns printed as integers, and missing cells left
// empty.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salescrm/internal/aggregate"
)

// DateLayout is the output format of the date index column.
const DateLayout = "2006-01-02"

// CSVWriter writes frames as delimited files.
type CSVWriter struct {
	digits int
	logger *slog.Logger
}

// NewCSVWriter creates a writer that prints ratio columns with the given
// number of decimal digits.
func NewCSVWriter(digits int, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{digits: digits, logger: logger}
}

// WriteFrame writes the frame to path, creating parent directories as
// needed. The header is "date" followed by the frame's column names in
// order; one row is written per index date.
func (w *CSVWriter) WriteFrame(path string, frame *aggregate.Frame) error {
	w.logger.Info("writing merged output",
		slog.String("path", path),
		slog.Int("rows", len(frame.Index())),
		slog.Int("columns", len(frame.Columns())),
	)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	defer cw.Flush()

	header := []string{"date"}
	for _, col := range frame.Columns() {
		header = append(header, col.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, date := range frame.Index() {
		row := make([]string, 0, len(header))
		row = append(row, date.Format(DateLayout))
		for _, col := range frame.Columns() {
			value, ok := col.Get(date)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, w.formatCell(col.Kind, value))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", date.Format(DateLayout), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatCell prints counts without decimals and ratios at the configured
// precision, so 0.4 exports as 0.40 when digits is 2.
func (w *CSVWriter) formatCell(kind aggregate.Kind, value float64) string {
	if kind == aggregate.KindCount {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.*f", w.digits, value)
}
