// Package files discovers the pipeline's input files: sales drop files in
// the landing directory and the CRM extract. Discovery only lists what is
// on disk; format enforcement happens in the reader layer.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// FileInfo describes one discovered input file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery lists input files under a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// ListDir returns every regular file in dir sorted by name. Drop files are
// named by export date, so name order is chronological order; sorting keeps
// concatenation deterministic no matter how the files are processed.
func (d *Discovery) ListDir(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Stat returns file information for a single expected input file.
func (d *Discovery) Stat(path string) (FileInfo, error) {
	fullPath := path
	if !filepath.IsAbs(path) {
		fullPath = filepath.Join(d.basePath, path)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", fullPath, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory, expected a file", fullPath)
	}
	return FileInfo{
		Path:    fullPath,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
