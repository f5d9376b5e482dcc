// Command lnsim runs one Lightning Network payment simulation: it loads a
// channel topology, samples (source, destination) pairs, sweeps a set of
// adversary population fractions, and writes a TLV-framed result stream,
// manifest, and metrics snapshot to an output directory (§6).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	goerrors "github.com/go-errors/errors"
	flags "github.com/jessevdk/go-flags"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/lightningnetwork/lnsim/centrality"
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/hopsim"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/metrics"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/pathfind"
	"github.com/lightningnetwork/lnsim/preflight"
	"github.com/lightningnetwork/lnsim/record"
	"github.com/lightningnetwork/lnsim/simulation"
	"github.com/lightningnetwork/lnsim/topology"
	"github.com/lightningnetwork/lnsim/uptime"
)

func main() {
	if err := run(); err != nil {
		if iv, ok := asInvariantViolation(err); ok {
			fmt.Fprintf(os.Stderr, "internal invariant violation (payment %d, attempt %d, hop %d): %s\n",
				iv.PaymentID, iv.Attempt, iv.Hop, iv.Detail)
			var stack *goerrors.Error
			if errors.As(err, &stack) {
				fmt.Fprintln(os.Stderr, stack.ErrorStack())
			}
			os.Exit(4)
		}

		fmt.Fprintf(os.Stderr, "lnsim: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

// asInvariantViolation unwraps a go-errors-wrapped InvariantViolation, the
// internal-bug class of failure that aborts the run rather than being
// recorded as a payment verdict (§7). It walks both stdlib %w wrapping
// (errors.Unwrap, used by every fmt.Errorf wrap in this command) and
// go-errors/errors' own Err field, since *goerrors.Error predates and does
// not implement the stdlib Unwrap convention.
func asInvariantViolation(err error) (lnsimerr.InvariantViolation, bool) {
	for err != nil {
		if iv, ok := err.(lnsimerr.InvariantViolation); ok {
			return iv, true
		}
		if we, ok := err.(*goerrors.Error); ok {
			err = we.Err
			continue
		}
		if next := errors.Unwrap(err); next != nil {
			err = next
			continue
		}
		break
	}

	return lnsimerr.InvariantViolation{}, false
}

// exitCodeFor maps an unrecovered top-level error onto the §6 process exit
// codes not already handled by the preflight pass: 1 for any failure that
// occurs once the run is already underway.
func exitCodeFor(err error) int {
	return 1
}

func run() error {
	var cfg config
	if _, err := flags.Parse(&cfg); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return err
	}

	backend := btclogBackend(os.Stderr)
	setupLoggers(backend)

	hopsim.ForceOnline = cfg.Experimental.OfflineDrawsDisabled()

	var (
		g     *graph.Graph
		stats graph.LoadStats
	)
	topologyFile, err := os.Open(cfg.Topology)
	if err != nil {
		err = fmt.Errorf("opening topology file: %w", err)
	} else {
		defer topologyFile.Close()
		g, stats, err = topology.Load(topology.Dialect(cfg.GraphSource), topologyFile)
	}

	fractions, fracErr := cfg.adversaryFractions()

	checks := []preflight.Check{
		{
			Name: "amount positive",
			Kind: preflight.KindConfig,
			Run: func() error {
				if cfg.Amount == 0 {
					return fmt.Errorf("--amount must be positive")
				}
				return nil
			},
		},
		{
			Name: "pairs positive",
			Kind: preflight.KindConfig,
			Run: func() error {
				if cfg.Pairs <= 0 {
					return fmt.Errorf("--pairs must be positive")
				}
				return nil
			},
		},
		{
			Name: "adversary fractions parse",
			Kind: preflight.KindConfig,
			Run: func() error { return fracErr },
		},
		{
			Name: "topology readable",
			Kind: preflight.KindInput,
			Run:  func() error { return err },
		},
		{
			Name: "adversary selector configured",
			Kind: preflight.KindConfig,
			Run: func() error {
				if cfg.Random {
					return nil
				}
				if cfg.Betweenness == "" && cfg.Degree == "" && cfg.Centrality == "" {
					return fmt.Errorf("one of --random, -b, -d, -c must be given")
				}
				return nil
			},
		},
	}

	if failures := preflight.RunAll(checks); len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "lnsim: %s: %v\n", f.Name, f.Err)
		}
		os.Exit(preflight.ExitCode(failures))
	}

	selector, err := buildSelector(cfg)
	if err != nil {
		return err
	}

	if cfg.UptimeHistory != "" {
		if err := applyUptimeHistory(g, cfg.UptimeHistory); err != nil {
			return fmt.Errorf("applying uptime history: %w", err)
		}
	}

	metric := pathfind.MinFee
	if cfg.PathMetric == "maxprob" {
		metric = pathfind.MaxProb
	}

	driverCfg := simulation.Config{
		Amount:             msat.MilliSatoshi(cfg.Amount),
		Seed:               uint64(cfg.Run),
		PairCount:          cfg.Pairs,
		AdversaryFractions: fractions,
		Split:              cfg.Split,
		PathMetric:         metric,
		MinShard:           msat.MilliSatoshi(cfg.Min),
		Selector:           selector,
		Concurrency:        cfg.Concurrency,
	}

	m := metrics.New()
	driver := simulation.NewDriver(g, driverCfg, m)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	outcomes, err := driver.Run(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeResults(cfg, g, stats, fractions, outcomes, m); err != nil {
		return err
	}

	return nil
}

func writeResults(
	cfg config,
	g *graph.Graph,
	stats graph.LoadStats,
	fractions []float64,
	outcomes []simulation.Outcome,
	m *metrics.Metrics,
) error {

	resultPath := filepath.Join(cfg.OutDir, "results.tlv")
	resultFile, err := os.Create(resultPath)
	if err != nil {
		return fmt.Errorf("creating result stream: %w", err)
	}
	defer resultFile.Close()

	w := record.NewWriter(resultFile)
	for _, o := range outcomes {
		if o.Skipped {
			continue
		}
		pr := simulation.BuildRecord(o, g)
		if err := w.Write(&pr); err != nil {
			return fmt.Errorf("writing payment record: %w", err)
		}
	}

	manifestPath := filepath.Join(cfg.OutDir, "manifest.json")
	manifestFile, err := os.Create(manifestPath)
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	defer manifestFile.Close()

	manifest := record.NewManifest(clock.NewDefaultClock())
	manifest.Seed = cfg.Run
	manifest.Amount = cfg.Amount
	manifest.Pairs = cfg.Pairs
	manifest.AdversaryFractions = fractions
	manifest.Split = cfg.Split
	manifest.PathMetric = cfg.PathMetric
	manifest.MinShard = cfg.Min
	manifest.GraphSource = cfg.GraphSource
	manifest.DroppedEdges = stats.DroppedEdges

	if err := record.WriteManifest(manifestFile, manifest); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	metricsPath := filepath.Join(cfg.OutDir, "metrics.prom")
	metricsFile, err := os.Create(metricsPath)
	if err != nil {
		return fmt.Errorf("creating metrics snapshot: %w", err)
	}
	defer metricsFile.Close()

	if err := m.WriteSnapshot(metricsFile); err != nil {
		return fmt.Errorf("writing metrics snapshot: %w", err)
	}

	return nil
}

// buildSelector constructs the §4.6 adversary-selection strategy implied by
// the CLI flags: --random for uniform sampling, otherwise whichever of
// -b/-d/-c was given, in that order of preference.
func buildSelector(cfg config) (*observation.Selector, error) {
	if cfg.Random {
		return observation.NewUniformSelector(), nil
	}

	path, strategy := cfg.Betweenness, observation.StrategyBetweenness
	if path == "" {
		path, strategy = cfg.Degree, observation.StrategyDegree
	}
	if path == "" {
		path, strategy = cfg.Centrality, observation.StrategyBetweenness
	}
	if path == "" {
		return nil, fmt.Errorf("no adversary selection strategy configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening centrality file: %w", err)
	}
	defer f.Close()

	ranking, err := centrality.Load(f)
	if err != nil {
		return nil, fmt.Errorf("parsing centrality file: %w", err)
	}

	return observation.NewRankedSelector(strategy, ranking), nil
}

func applyUptimeHistory(g *graph.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	clk := clock.NewDefaultClock()
	est, err := uptime.LoadHistory(f, clk.Now)
	if err != nil {
		return err
	}

	est.ApplyToGraph(g, clk.Now().Add(-defaultHistoryWindow), clk.Now())
	return nil
}

// defaultHistoryWindow bounds how far back an uptime history file is
// consulted when no run-specific window is configured.
const defaultHistoryWindow = 30 * 24 * time.Hour
