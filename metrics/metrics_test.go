package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteSnapshotContainsRecordedSeries(t *testing.T) {
	m := New()
	m.RecordPayment("success")
	m.RecordPayment("success")
	m.RecordPayment("no_path_found")
	m.RecordAttempt(true)
	m.ObserveFee(150)
	m.ObservePathLength(3)
	m.ObserveShardCount(2)

	var buf bytes.Buffer
	require.NoError(t, m.WriteSnapshot(&buf))

	out := buf.String()
	require.Contains(t, out, "lnsim_payments_total")
	require.Contains(t, out, `verdict="success"`)
	require.Contains(t, out, "lnsim_fee_msat")
	require.Contains(t, out, "lnsim_path_length_hops")
	require.Contains(t, out, "lnsim_shards_per_payment")
}

func TestWriteSnapshotOnEmptyMetricsStillSucceeds(t *testing.T) {
	m := New()

	var buf bytes.Buffer
	require.NoError(t, m.WriteSnapshot(&buf))
}
