package record

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/stretchr/testify/require"
)

func samplePayment() *PaymentRecord {
	return &PaymentRecord{
		PaymentID:   42,
		Source:      "alice",
		Destination: "carol",
		Amount:      1_000_000,
		Verdict:     VerdictSuccess,
		AttemptCount: 2,
		TotalFee:    150,
		MaxPathLength: 3,
		Attempts: []AttemptRecord{
			{
				ChannelIDs: []uint64{1, 2},
				Amounts:    []msat.MilliSatoshi{1_000_150, 1_000_000},
				Success:    false,
			},
			{
				ChannelIDs: []uint64{3, 4},
				Amounts:    []msat.MilliSatoshi{1_000_100, 1_000_000},
				Success:    true,
			},
		},
		ObservationBlob:  []byte("observations-placeholder"),
		AdversarySetHash: [32]byte{1, 2, 3},
	}
}

func TestPaymentRecordRoundTrip(t *testing.T) {
	want := samplePayment()

	var buf bytes.Buffer
	require.NoError(t, want.Encode(&buf))

	var got PaymentRecord
	require.NoError(t, got.Decode(&buf))

	require.Equal(t, *want, got)
}

func TestWriterReaderRoundTripsMultipleRecords(t *testing.T) {
	a := samplePayment()
	b := samplePayment()
	b.PaymentID = 43
	b.Verdict = VerdictNoPathFound
	b.Attempts = nil

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(a))
	require.NoError(t, w.Write(b))

	r := NewReader(&buf)

	got1, err := r.Read()
	require.NoError(t, err)
	require.Equal(t, *a, *got1)

	got2, err := r.Read()
	require.NoError(t, err)
	require.Equal(t, *b, *got2)

	_, err = r.Read()
	require.ErrorIs(t, err, io.EOF)
}

func TestManifestRoundTrip(t *testing.T) {
	clk := clock.NewTestClock(time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))
	m := NewManifest(clk)
	m.Seed = 7
	m.Amount = 500_000
	m.Pairs = 100
	m.AdversaryFractions = []float64{0.1, 0.2}
	m.Split = true
	m.PathMetric = "minfee"
	m.MinShard = 10_000
	m.GraphSource = "lnd"
	m.DroppedEdges = 4

	var buf bytes.Buffer
	require.NoError(t, WriteManifest(&buf, m))

	got, err := ReadManifest(&buf)
	require.NoError(t, err)
	require.Equal(t, m.Seed, got.Seed)
	require.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
	require.Equal(t, m.AdversaryFractions, got.AdversaryFractions)
}
