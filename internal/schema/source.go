package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Source resolves the schema registry for a run. Implementations cover the
// built-in reference schemas, a JSON file, and a Postgres table; the core
// only ever sees the resolved Registry.
type Source interface {
	Load(ctx context.Context) (Registry, error)
}

// StaticSource serves a fixed registry. Used for the built-in reference
// schemas and in tests.
type StaticSource struct {
	Registry Registry
}

func (s StaticSource) Load(context.Context) (Registry, error) {
	return s.Registry, nil
}

// FileSource reads a registry from a JSON file shaped as
// {"<source>": {"<column>": {"type": ..., "choices": ..., "value_mapping": ...}}}.
type FileSource struct {
	Path string
}

func (s FileSource) Load(context.Context) (Registry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read schema file: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode schema file %s: %w", s.Path, err)
	}
	if len(reg) == 0 {
		return nil, fmt.Errorf("schema file %s defines no sources", s.Path)
	}
	return reg, nil
}
