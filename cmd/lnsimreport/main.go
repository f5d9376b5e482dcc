// Command lnsimreport renders a human-readable summary of one lnsim run's
// result stream: the run manifest, a verdict breakdown, fee/hop-count
// statistics over successful payments, and a per-payment table, styled the
// way cmd/lncli renders RPC responses. The §4.6 observation metrics are not
// printed.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli"

	"github.com/lightningnetwork/lnsim/record"
)

func main() {
	app := cli.NewApp()
	app.Name = "lnsimreport"
	app.Usage = "summarize an lnsim result directory"
	app.Commands = []cli.Command{
		summaryCommand,
		verdictsCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "lnsimreport: %v\n", err)
		os.Exit(1)
	}
}

var inputFlag = cli.StringFlag{
	Name:  "input, i",
	Usage: "path to the run's output directory (containing results.tlv and manifest.json)",
	Value: ".",
}

var summaryCommand = cli.Command{
	Name:   "summary",
	Usage:  "print the manifest and an aggregate verdict/fee/hop breakdown",
	Flags:  []cli.Flag{inputFlag},
	Action: actionDecorator(runSummary),
}

var verdictsCommand = cli.Command{
	Name:   "verdicts",
	Usage:  "print one row per payment record",
	Flags:  []cli.Flag{inputFlag},
	Action: actionDecorator(runVerdicts),
}

// actionDecorator mirrors cmd/lncli's own wrapper: urfave/cli v1 actions
// must return error, so bare functions of that shape need no adaptation,
// but keeping the indirection matches the teacher's command-registration
// style and gives every command one place to add shared setup later.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return f
}

func runSummary(ctx *cli.Context) error {
	dir := ctx.String("input")

	manifest, err := readManifest(dir)
	if err != nil {
		return err
	}

	printManifest(manifest)

	records, err := readRecords(dir)
	if err != nil {
		return err
	}

	printVerdictBreakdown(records)
	printFeeAndHopStats(records)

	return nil
}

func runVerdicts(ctx *cli.Context) error {
	dir := ctx.String("input")

	records, err := readRecords(dir)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"payment", "source", "destination", "verdict", "attempts", "fee (msat)", "max hops"})

	for _, r := range records {
		t.AppendRow(table.Row{
			r.PaymentID, r.Source, r.Destination, r.Verdict, r.AttemptCount,
			uint64(r.TotalFee), r.MaxPathLength,
		})
	}

	t.Render()
	return nil
}

func readManifest(dir string) (record.Manifest, error) {
	f, err := os.Open(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return record.Manifest{}, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	return record.ReadManifest(f)
}

func readRecords(dir string) ([]record.PaymentRecord, error) {
	f, err := os.Open(filepath.Join(dir, "results.tlv"))
	if err != nil {
		return nil, fmt.Errorf("opening result stream: %w", err)
	}
	defer f.Close()

	r := record.NewReader(f)

	var records []record.PaymentRecord
	for {
		pr, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading result stream: %w", err)
		}
		records = append(records, *pr)
	}

	return records, nil
}

func printManifest(m record.Manifest) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("run manifest")
	t.AppendRow(table.Row{"seed", m.Seed})
	t.AppendRow(table.Row{"amount (msat)", m.Amount})
	t.AppendRow(table.Row{"pairs", m.Pairs})
	t.AppendRow(table.Row{"adversary fractions", m.AdversaryFractions})
	t.AppendRow(table.Row{"split", m.Split})
	t.AppendRow(table.Row{"path metric", m.PathMetric})
	t.AppendRow(table.Row{"min shard (msat)", m.MinShard})
	t.AppendRow(table.Row{"graph source", m.GraphSource})
	t.AppendRow(table.Row{"dropped edges", m.DroppedEdges})
	t.AppendRow(table.Row{"generated at", m.GeneratedAt})
	t.Render()
}

func printVerdictBreakdown(records []record.PaymentRecord) {
	counts := make(map[record.Verdict]int)
	for _, r := range records {
		counts[r.Verdict]++
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("verdicts")
	t.AppendHeader(table.Row{"verdict", "count", "fraction"})

	for verdict, count := range counts {
		frac := float64(count) / float64(len(records))
		t.AppendRow(table.Row{verdict, count, fmt.Sprintf("%.2f%%", frac*100)})
	}

	t.Render()
}

func printFeeAndHopStats(records []record.PaymentRecord) {
	var successCount int
	var totalFee, maxFee uint64
	var totalHops, maxHops uint32

	for _, r := range records {
		if r.Verdict != record.VerdictSuccess {
			continue
		}

		successCount++
		fee := uint64(r.TotalFee)
		totalFee += fee
		if fee > maxFee {
			maxFee = fee
		}

		totalHops += r.MaxPathLength
		if r.MaxPathLength > maxHops {
			maxHops = r.MaxPathLength
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("successful payments")

	if successCount == 0 {
		t.AppendRow(table.Row{"no successful payments"})
		t.Render()
		return
	}

	t.AppendHeader(table.Row{"metric", "value"})
	t.AppendRow(table.Row{"count", successCount})
	t.AppendRow(table.Row{"mean fee (msat)", totalFee / uint64(successCount)})
	t.AppendRow(table.Row{"max fee (msat)", maxFee})
	t.AppendRow(table.Row{"mean hops", totalHops / uint32(successCount)})
	t.AppendRow(table.Row{"max hops", maxHops})
	t.Render()
}
