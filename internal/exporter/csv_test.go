package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salescrm/internal/aggregate"
)

func TestWriteFrame(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	frame := aggregate.NewFrame([]time.Time{d1, d2})
	share := frame.AddColumn("market_share", aggregate.KindRatio)
	share.Set(d1, 0.25)
	share.Set(d2, 0.4)
	count := frame.AddColumn("event_count", aggregate.KindCount)
	count.Set(d1, 3)

	path := filepath.Join(t.TempDir(), "out", "market_share_event_sum.csv")
	require.NoError(t, NewCSVWriter(2, nil).WriteFrame(path, frame))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := "date,market_share,event_count\n" +
		"2024-01-01,0.25,3\n" +
		"2024-02-01,0.40,\n"
	assert.Equal(t, want, string(data))
}

func TestWriteFrameCreatesDirectories(t *testing.T) {
	frame := aggregate.NewFrame(nil)
	frame.AddColumn("market_share", aggregate.KindRatio)

	path := filepath.Join(t.TempDir(), "a", "b", "c.csv")
	require.NoError(t, NewCSVWriter(2, nil).WriteFrame(path, frame))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,market_share\n", string(data))
}
