package reader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"salescrm/internal/table"
)

// CSVReader reads a delimited file with a header row. Every cell stays a
// string; the validation engine owns type coercion.
type CSVReader struct {
	// Comma overrides the field delimiter. Zero means ','.
	Comma rune
}

func (r CSVReader) Read(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	cr := csv.NewReader(file)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	t := table.New(header...)
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rec := make(table.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		t.Append(rec)
	}
	return t, nil
}
