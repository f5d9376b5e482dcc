package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnsim/lncfg"
)

// config is the CLI surface of §6, parsed with jessevdk/go-flags exactly as
// the teacher parses lnd.conf and lncli flags.
type config struct {
	Amount        uint64   `long:"amount" description:"destination amount, in millisatoshi, every sampled payment attempts to deliver" required:"true"`
	Run           int64    `long:"run" description:"run seed; repeating a run with the same seed and inputs reproduces identical results"`
	Pairs         int      `long:"pairs" description:"number of (source, destination) pairs to sample per adversary fraction" default:"1000"`
	Adversaries   []string `long:"adversaries" description:"adversary population fractions to sweep, as percentages (e.g. 0,5,25)" default:"0"`
	Split         bool     `long:"split" description:"fall back to recursive MPP splitting when a single-path attempt fails"`
	PathMetric    string   `long:"path-metric" description:"pathfinder optimization metric" choice:"minfee" choice:"maxprob" default:"minfee"`
	Min           uint64   `long:"min" description:"minimum MPP shard size, in millisatoshi" default:"1000"`
	GraphSource   string   `long:"graph-source" description:"topology JSON dialect" choice:"lnd" choice:"lnr" required:"true"`
	Topology      string   `long:"topology" description:"path to the topology JSON file" required:"true"`
	Random        bool     `long:"random" description:"sample the adversary set uniformly at random instead of by centrality rank"`
	Betweenness   string   `short:"b" long:"betweenness" description:"path to a betweenness-centrality rank file"`
	Degree        string   `short:"d" long:"degree" description:"path to a degree-centrality rank file"`
	Centrality    string   `short:"c" long:"centrality" description:"path to a generic centrality rank file"`
	OutDir        string   `short:"o" long:"output" description:"output directory for the result stream, manifest, and metrics snapshot" required:"true"`
	Concurrency   int      `long:"concurrency" description:"number of payments to evaluate concurrently" default:"8"`
	UptimeHistory string   `long:"uptime-history" description:"path to a JSON node online/offline event log used to derive per-node success probability"`

	Experimental lncfg.ExperimentalConfig `group:"Experimental" namespace:"experimental"`
}

// adversaryFractions converts the --adversaries percentage strings into
// fractions in [0, 1].
func (c *config) adversaryFractions() ([]float64, error) {
	fractions := make([]float64, 0, len(c.Adversaries))

	for _, raw := range c.Adversaries {
		raw = strings.TrimSpace(raw)
		pct, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --adversaries value %q: %w", raw, err)
		}
		fractions = append(fractions, pct/100)
	}

	return fractions, nil
}
