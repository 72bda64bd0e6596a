package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus"

	golay "github.com/pd0mz/go-golay"
	"github.com/pd0mz/go-golay/container"
)

var log = logging.MustGetLogger("golaysim")

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file")
		in         = flag.String("in", "", "input file")
		text       = flag.String("text", "", "input text, used when -in is not given")
		out        = flag.String("out", "", "output prefix, writes <out>.corrected and <out>.uncorrected")
		p          = flag.Float64("p", 0, "channel error probability (overrides config)")
		seed       = flag.Int64("seed", 0, "channel seed (overrides config)")
		kind       = flag.String("container", "", "container kind: raw, png, webp or bmp (overrides config)")
	)
	flag.Parse()

	cfg := golay.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = golay.LoadConfig(*configFile); err != nil {
			fatalf("config: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.ErrorProbability = *p
		case "seed":
			cfg.Seed = *seed
		case "container":
			cfg.Container = *kind
		}
	})
	if err := cfg.Validate(); err != nil {
		fatalf("config: %v", err)
	}
	golay.SetupLogging(os.Stderr, cfg.Level())

	var data []byte
	switch {
	case *in != "":
		var err error
		if data, err = os.ReadFile(*in); err != nil {
			fatalf("%v", err)
		}
	case *text != "":
		data = []byte(*text)
	default:
		fatalf("need -in or -text")
	}

	header, body, err := cfg.ContainerKind().Split(data)
	if err != nil {
		fatalf("%v", err)
	}

	reg := prometheus.NewRegistry()
	pipeline, err := golay.NewPipeline(cfg, golay.WithMetrics(golay.NewMetrics(reg)))
	if err != nil {
		fatalf("%v", err)
	}

	log.Infof("%s: %d bytes (%d header), p=%.4f, container %s",
		golay.SoftwareID, len(data), len(header), cfg.ErrorProbability, cfg.ContainerKind())

	for _, mode := range []golay.Mode{golay.Uncorrected, golay.Corrected} {
		res, err := pipeline.RunBytes(body, mode)
		if err != nil {
			fatalf("%s: %v", mode, err)
		}
		output := container.Join(header, res.Bytes)

		fmt.Printf("%s:\n", mode)
		fmt.Printf("\tblocks..: %d (%d padding bits)\n", res.Blocks, res.Leftover)
		fmt.Printf("\tflips...: %d\n", res.ChannelFlips)
		fmt.Printf("\tfixed...: %d\n", res.CorrectedBits)
		fmt.Printf("\tresidual: %d bits\n", res.ResidualBits)
		if len(res.Substituted) > 0 {
			fmt.Printf("\tpassed..: %d uncorrectable blocks\n", len(res.Substituted))
		}
		if *in == "" {
			fmt.Printf("\ttext....: %q\n", output)
		}

		if *out != "" {
			name := *out + "." + mode.String()
			if err := os.WriteFile(name, output, 0o644); err != nil {
				fatalf("%v", err)
			}
			log.Infof("wrote %s", name)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		log.Warningf("metrics: %v", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels string
			for _, l := range m.GetLabel() {
				labels += fmt.Sprintf(" %s=%s", l.GetName(), l.GetValue())
			}
			log.Debugf("%s%s %v", mf.GetName(), labels, m.GetCounter().GetValue())
		}
	}
}
