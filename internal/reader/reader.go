// Package reader turns input files into raw tables. One reader exists per
// source format: CSV for the CRM extract, JSON for sales drops, and XLSX
// for sales drops exported as spreadsheets. Readers only produce the raw
// table shape; all typing happens later in the validation engine.
package reader

import (
	"path/filepath"
	"strings"

	apperrors "salescrm/internal/errors"
	"salescrm/internal/table"
)

// TableReader reads one file into a raw table.
type TableReader interface {
	Read(path string) (*table.Table, error)
}

// supported maps a file extension to its reader.
var supported = map[string]TableReader{
	".csv":  CSVReader{},
	".json": JSONReader{},
	".xlsx": XLSXReader{},
}

// ForPath returns the reader for the file's extension, restricted to the
// allowed extensions for the calling source. A file outside the allowed set
// is an UnsupportedSourceFormatError and aborts the run.
func ForPath(path string, allowed ...string) (TableReader, error) {
	ext := strings.ToLower(filepath.Ext(path))

	permitted := allowed
	if len(permitted) == 0 {
		permitted = []string{".csv", ".json", ".xlsx"}
	}
	for _, a := range permitted {
		if ext == a {
			if r, ok := supported[ext]; ok {
				return r, nil
			}
			break
		}
	}
	return nil, &apperrors.UnsupportedSourceFormatError{Path: path, Expected: permitted}
}
