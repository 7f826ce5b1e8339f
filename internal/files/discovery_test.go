package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDirSortsByName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sales_2024-03.json", "sales_2024-01.json", "sales_2024-02.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive"), 0o755))

	files, err := NewDiscovery(dir).ListDir(".")
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"sales_2024-01.json", "sales_2024-02.json", "sales_2024-03.json"}, names)
}

func TestListDirMissing(t *testing.T) {
	_, err := NewDiscovery(t.TempDir()).ListDir("nope")
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("account_id\n"), 0o644))

	info, err := NewDiscovery(dir).Stat("crm_data.csv")
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)

	_, err = NewDiscovery(dir).Stat(".")
	assert.ErrorContains(t, err, "expected a file")
}
