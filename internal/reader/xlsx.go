package reader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"salescrm/internal/table"
)

// XLSXReader reads the first sheet of a spreadsheet, treating the first row
// as the header. Cells stay strings, exactly like the CSV reader.
type XLSXReader struct {
	// Sheet overrides the sheet name. Empty means the first sheet.
	Sheet string
}

func (r XLSXReader) Read(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx file: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("xlsx file %s: sheet %q is empty", path, sheet)
	}

	header := rows[0]
	t := table.New(header...)
	for _, row := range rows[1:] {
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
