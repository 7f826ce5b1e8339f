package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRecorderCollects(t *testing.T) {
	r := NewRunRecorder("sales_crm", "")

	r.SetRowsRead("sales", 120)
	r.SetRowsValidated("sales", 120)
	r.SetRowsRead("crm", 40)
	r.ObserveRun(2500*time.Millisecond, true)

	assert.Equal(t, 120.0, testutil.ToFloat64(r.rowsRead.WithLabelValues("sales")))
	assert.Equal(t, 40.0, testutil.ToFloat64(r.rowsRead.WithLabelValues("crm")))
	assert.Equal(t, 120.0, testutil.ToFloat64(r.rowsValidated.WithLabelValues("sales")))
	assert.Equal(t, 2.5, testutil.ToFloat64(r.runDuration))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runSuccess))

	r.ObserveRun(time.Second, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.runSuccess))
}

func TestPushWithoutGatewayIsNoop(t *testing.T) {
	r := NewRunRecorder("sales_crm", "")
	require.NoError(t, r.Push())
}
