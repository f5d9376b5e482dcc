package simulation

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/lightningnetwork/lnd/ticker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/metrics"
	"github.com/lightningnetwork/lnsim/mpp"
	"github.com/lightningnetwork/lnsim/oracle"
	"github.com/lightningnetwork/lnsim/randsrc"
)

// log is this package's subsystem logger, following the teacher's
// per-package logging convention.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// Driver runs the §4.7 simulation loop against one loaded graph.
type Driver struct {
	g        *graph.Graph
	template *oracle.Template
	cfg      Config
	metrics  *metrics.Metrics
}

// NewDriver builds a driver for g under cfg. m may be nil, in which case
// metrics are not recorded.
func NewDriver(g *graph.Graph, cfg Config, m *metrics.Metrics) *Driver {
	return &Driver{
		g:        g,
		template: oracle.NewTemplate(g, cfg.Seed),
		cfg:      cfg,
		metrics:  m,
	}
}

// Run executes the full adversary-fraction sweep over a freshly sampled set
// of pairs, returning every payment's outcome, skipped ones included (with
// Skipped set), in deterministic (fraction, pair-index) order.
func (d *Driver) Run(ctx context.Context) ([]Outcome, error) {
	pairRNG := randsrc.SubStream(d.cfg.Seed, "simulation/pairs")
	pairs := samplePairs(d.g, pairRNG, d.cfg.PairCount)

	progress := ticker.New(5 * time.Second)
	progress.Resume()
	defer progress.Stop()

	var completed int64
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-progress.Ticks():
				log.Infof("simulation progress: %d payments completed", atomic.LoadInt64(&completed))
			case <-done:
				return
			}
		}
	}()

	var all []Outcome

	for fracIdx, fraction := range d.cfg.AdversaryFractions {
		count := int(fraction * float64(d.g.NodeCount()))
		advRNG := randsrc.SubStream(d.cfg.Seed, fmt.Sprintf("simulation/adversary/%d", fracIdx))
		d.cfg.Selector.Resample(d.g, count, advRNG)
		advHash := adversarySetHash(d.g)

		outcomes := make([]Outcome, len(pairs))

		limit := d.cfg.Concurrency
		if limit <= 0 {
			limit = 1
		}
		sem := semaphore.NewWeighted(int64(limit))
		eg, egCtx := errgroup.WithContext(ctx)

		for i, p := range pairs {
			i, p := i, p

			if err := sem.Acquire(egCtx, 1); err != nil {
				break
			}

			paymentID := uint64(fracIdx)<<32 | uint64(i)

			eg.Go(func() error {
				defer sem.Release(1)

				outcome, err := d.runPayment(paymentID, fraction, p, advHash)
				if err != nil {
					return err
				}

				outcomes[i] = outcome
				atomic.AddInt64(&completed, 1)
				if d.metrics != nil {
					recordMetrics(d.metrics, outcomes[i])
				}

				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("simulation run: %w", err)
		}

		all = append(all, outcomes...)
	}

	return all, nil
}

// runPayment evaluates one sampled pair under one fraction's adversary set:
// connectivity precheck, then pathfinder → hop simulator, with MPP fallback
// when enabled (§4.7 steps 1-3).
func (d *Driver) runPayment(paymentID uint64, fraction float64, p pair, advHash [32]byte) (Outcome, error) {
	srcID, dstID := d.g.NodeID(p.src), d.g.NodeID(p.dst)

	base := Outcome{
		PaymentID:        paymentID,
		Fraction:         fraction,
		Src:              srcID,
		Dst:              dstID,
		Amount:           d.cfg.Amount,
		AdversarySetHash: advHash,
	}

	if p.src == p.dst {
		base.Skipped = true
		base.SkipReason = "source equals destination"
		log.Debugf("payment %d skipped: %s", paymentID, base.SkipReason)
		return base, nil
	}

	if !reachable(d.g, p.src, p.dst) {
		base.Skipped = true
		base.SkipReason = "no path of any length"
		log.Debugf("payment %d (%s -> %s) skipped: %s", paymentID, srcID, dstID, base.SkipReason)
		return base, nil
	}

	view := d.template.NewPaymentView()
	rng := randsrc.SubStream(d.cfg.Seed, fmt.Sprintf("simulation/payment/%d", paymentID))

	result, err := mpp.Run(d.g, view, rng, p.src, p.dst, d.cfg.Amount, mpp.Params{
		Path:     d.cfg.PathParams(),
		MinShard: d.cfg.MinShard,
		Split:    d.cfg.Split,
	})

	if !view.InvariantOK() {
		return Outcome{}, lnsimerr.NewInvariantViolation(
			paymentID, len(result.Shards)-1, -1,
			"channel balance invariant violated after payment",
		)
	}

	base.Result = result
	base.Err = err

	return base, nil
}

func recordMetrics(m *metrics.Metrics, o Outcome) {
	m.RecordPayment(verdictFor(o).String())

	if o.Result == nil {
		return
	}

	m.ObserveShardCount(len(o.Result.Shards))
	for _, shard := range o.Result.Shards {
		for _, attempt := range shard.Attempts {
			m.RecordAttempt(attempt.Success)
			if attempt.Success {
				m.ObserveFee(float64(attempt.Path.Fee))
				m.ObservePathLength(len(attempt.Path.Edges))
			}
		}
	}
}
