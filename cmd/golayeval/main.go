package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"

	golay "github.com/pd0mz/go-golay"
)

var log = logging.MustGetLogger("golayeval")

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func parseProbabilities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var f float64
		if _, err := fmt.Sscanf(p, "%f", &f); err != nil {
			return nil, fmt.Errorf("bad probability %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func writeMarkdown(w io.Writer, results []golay.SweepResult) error {
	if _, err := fmt.Fprintf(w, "| p | runs | corrected | uncorrected | gain |\n|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "| %.4f | %d | %.4f | %.4f | %+.4f |\n",
			r.ErrorProbability, r.Runs, r.Corrected, r.Uncorrected, r.Corrected-r.Uncorrected); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var (
		probStr  = flag.String("p", "0.001,0.01,0.02,0.05,0.1,0.2", "comma-separated list of error probabilities")
		runs     = flag.Int("runs", 10000, "messages per probability")
		seed     = flag.Int64("seed", 42, "random seed")
		workers  = flag.Int("workers", 0, "parallel probabilities, 0 for no limit")
		format   = flag.String("format", "markdown", "report format: markdown or json")
		outPath  = flag.String("out", "", "output report path, stdout if empty")
		logLevel = flag.String("log-level", "INFO", "log level")
	)
	flag.Parse()

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		fatalf("log level: %v", err)
	}
	golay.SetupLogging(os.Stderr, level)

	probabilities, err := parseProbabilities(*probStr)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Infof("%s: %d probabilities, %d runs each", golay.SoftwareID, len(probabilities), *runs)
	results, err := golay.Sweep(ctx, probabilities, *runs, *seed, *workers)
	if err != nil {
		fatalf("sweep: %v", err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatalf("%v", err)
		}
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("%v", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(results)
	case "markdown":
		err = writeMarkdown(w, results)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fatalf("report: %v", err)
	}
	if *outPath != "" {
		log.Infof("wrote %s", *outPath)
	}
}
