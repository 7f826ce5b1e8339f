package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"salescrm/internal/table"
)

// JSONReader reads a sales drop file. Drops arrive in two shapes:
//
//   - a plain array of record objects, and
//   - the upstream export quirk: an array whose single element is a JSON
//     string that itself encodes a column-oriented document
//     {"column": {"0": value, "1": value, ...}}.
//
// Both decode to the same raw table.
type JSONReader struct{}

func (JSONReader) Read(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode json file %s: %w", path, err)
	}

	// Unwrap the double-encoded export shape.
	if arr, ok := doc.([]any); ok && len(arr) == 1 {
		if inner, ok := arr[0].(string); ok {
			if err := json.Unmarshal([]byte(inner), &doc); err != nil {
				return nil, fmt.Errorf("decode embedded json document in %s: %w", path, err)
			}
		}
	}

	switch v := doc.(type) {
	case []any:
		return recordsToTable(path, v)
	case map[string]any:
		return columnsToTable(path, v)
	}
	return nil, fmt.Errorf("json file %s: expected an array of records or a column document", path)
}

func recordsToTable(path string, arr []any) (*table.Table, error) {
	t := table.New()
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json file %s: element %d is not an object", path, i)
		}
		t.Append(table.Record(obj))
	}
	return t, nil
}

// columnsToTable converts {"column": {"0": v0, "1": v1}} into rows, ordering
// rows by their numeric index key.
func columnsToTable(path string, doc map[string]any) (*table.Table, error) {
	columns := make([]string, 0, len(doc))
	for name := range doc {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	rows := map[int]table.Record{}
	var indexes []int
	for _, name := range columns {
		cells, ok := doc[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("json file %s: column %q is not an index/value object", path, name)
		}
		for key, value := range cells {
			idx, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("json file %s: column %q has non-numeric row index %q", path, name, key)
			}
			if _, ok := rows[idx]; !ok {
				rows[idx] = table.Record{}
				indexes = append(indexes, idx)
			}
			rows[idx][name] = value
		}
	}
	sort.Ints(indexes)

	t := table.New(columns...)
	for _, idx := range indexes {
		t.Append(rows[idx])
	}
	return t, nil
}
