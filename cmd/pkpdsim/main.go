// SPDX-License-Identifier: MIT

// Command pkpdsim builds a standard PK/PD model from a YAML run
// configuration, simulates it and writes the trajectory as CSV or JSON.
//
// Usage:
//
//	pkpdsim -config run.yaml [-format csv|json] [-metrics]
//
// A non-empty simulation.sweep runs one simulation per sweep point in
// parallel. Exit status is 0 on success, 1 on failure and 2 on bad flags.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pkpd/config"
	"github.com/katalvlaran/pkpd/simulate"
	"github.com/katalvlaran/pkpd/standard"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	format     string
	metrics    bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("pkpdsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "YAML run configuration (defaults and PKPD_* env when empty)")
	fs.StringVar(&o.format, "format", "csv", "output format: csv or json")
	fs.BoolVar(&o.metrics, "metrics", false, "write Prometheus metrics to stderr after the run")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if o.format != "csv" && o.format != "json" {
		return o, fmt.Errorf("unknown format %q", o.format)
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "pkpdsim: %v\n", err)
		}
		return 2
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "pkpdsim: %v\n", err)
		return 1
	}
	log, err := cfg.Log.Logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "pkpdsim: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg := prometheus.NewRegistry()
	runs, err := simulateRun(ctx, cfg, log, reg)
	if err != nil {
		log.WithError(err).Error("Simulation failed")
		return 1
	}

	if o.format == "json" {
		err = writeJSON(stdout, runs)
	} else {
		err = writeCSV(stdout, runs)
	}
	if err != nil {
		log.WithError(err).Error("Failed to write output")
		return 1
	}

	if o.metrics {
		families, err := reg.Gather()
		if err == nil {
			err = writeMetrics(stderr, families)
		}
		if err != nil {
			log.WithError(err).Error("Failed to write metrics")
			return 1
		}
	}
	return 0
}

func simulateRun(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, reg prometheus.Registerer) ([]*simulate.Trajectory, error) {
	sc, err := cfg.Model.Standard()
	if err != nil {
		return nil, err
	}
	m, err := standard.Build(sc, standard.WithLogger(log))
	if err != nil {
		return nil, err
	}
	times, err := cfg.Simulation.TimeGrid()
	if err != nil {
		return nil, err
	}
	metrics, err := simulate.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	cache, err := simulate.NewCache(cfg.Simulation.CacheSize)
	if err != nil {
		return nil, err
	}

	opts := []simulate.Option{
		simulate.WithIntegrator(cfg.Simulation.Integrator()),
		simulate.WithParameterValues(cfg.Simulation.Overrides()),
		simulate.WithLogger(log),
		simulate.WithMetrics(metrics),
		simulate.WithCache(cache),
		simulate.WithWorkers(cfg.Simulation.Workers),
	}
	if cfg.Simulation.Timeout > 0 {
		opts = append(opts, simulate.WithTimeout(cfg.Simulation.Timeout))
	}
	if len(cfg.Simulation.Sweep) > 0 {
		return simulate.SimulateBatch(ctx, m, times, cfg.Simulation.SweepParameters(), opts...)
	}
	tr, err := simulate.Simulate(ctx, m, times, opts...)
	if err != nil {
		return nil, err
	}
	return []*simulate.Trajectory{tr}, nil
}

// writeCSV writes one row per run and time point: run, time, then every
// series in trajectory order.
func writeCSV(w io.Writer, runs []*simulate.Trajectory) error {
	cw := csv.NewWriter(w)
	if len(runs) == 0 {
		return nil
	}
	header := append([]string{"run", "time"}, runs[0].Names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for r, tr := range runs {
		for i := 0; i < tr.Len(); i++ {
			rec := make([]string, 0, len(header))
			rec = append(rec, strconv.Itoa(r), formatFloat(tr.Time[i]))
			for _, v := range tr.Row(i) {
				rec = append(rec, formatFloat(v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

type jsonRun struct {
	Model  string               `json:"model"`
	Run    int                  `json:"run"`
	Time   []float64            `json:"time"`
	Series map[string][]float64 `json:"series"`
}

func writeJSON(w io.Writer, runs []*simulate.Trajectory) error {
	out := make([]jsonRun, len(runs))
	for r, tr := range runs {
		out[r] = jsonRun{Model: tr.Model, Run: r, Time: tr.Time, Series: make(map[string][]float64, len(tr.Names))}
		for i, n := range tr.Names {
			out[r].Series[n] = tr.Values[i]
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMetrics(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
