// Command hcluster builds a hierarchical clustering dendrogram from a table
// of word counts and prints it.
//
//	hcluster -metric pearson data/blogdata.txt
//	hcluster -transpose -output json data/blogdata.json
//	HCLUSTER_WORKERS=8 hcluster -threshold 0.8 data/blogdata.txt
//	hcluster -output points -iterations 500 data/blogdata.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/goccy/go-json"

	"github.com/TrevorS/hcluster"
	"github.com/TrevorS/hcluster/internal/config"
	"github.com/TrevorS/hcluster/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		logging.Error().Err(err).Msg("hcluster failed")
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hcluster", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.String("format", "", "input format: json, tsv or csv (default: from extension)")
	fs.Bool("transpose", false, "cluster columns instead of rows")
	fs.String("metric", "", fmt.Sprintf("distance metric %v", hcluster.MetricNames()))
	fs.Int("workers", 0, "goroutines evaluating distances (0 = number of CPUs)")
	fs.Float64("threshold", 0, "also print flat clusters cut at this distance")
	fs.String("output", "", "output: text, json or linkage dendrogram, or points for a 2D layout")
	fs.Int("iterations", 0, "gradient descent rounds for -output points")
	fs.Int64("seed", 0, "random seed for -output points")
	fs.String("log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	overrides := map[string]any{}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
		case "log-level":
			overrides["logging.level"] = f.Value.String()
		default:
			overrides[f.Name] = f.Value.(flag.Getter).Get()
		}
	})
	if fs.NArg() > 0 {
		overrides["input"] = fs.Arg(0)
	}

	cfg, err := config.Load(*configPath, overrides)
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ds, err := loadDataset(cfg, stdin)
	if err != nil {
		return err
	}
	if cfg.Transpose {
		if ds, err = ds.Transpose(); err != nil {
			return err
		}
	}
	logging.Info().
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.ColLabels)).
		Bool("transposed", cfg.Transpose).
		Msg("dataset loaded")

	metric, err := hcluster.MetricByName(cfg.Metric)
	if err != nil {
		return err
	}
	if cfg.Output == "points" {
		return writeLayout(stdout, ds, metric, cfg)
	}

	hcfg := hcluster.DefaultConfig()
	hcfg.Metric = metric
	hcfg.Workers = cfg.Workers
	if hcfg.Workers == 0 {
		hcfg.Workers = runtime.NumCPU()
	}

	start := time.Now()
	root, err := hcluster.ClusterWithConfig(ds.Rows, hcfg)
	if err != nil {
		return err
	}
	if root == nil {
		logging.Warn().Msg("empty dataset, nothing to cluster")
		return nil
	}
	runLog := logging.With().Str("metric", cfg.Metric).Int("workers", hcfg.Workers).Logger()
	runLog.Info().
		Int("leaves", root.Size()).
		Float64("depth", root.Depth()).
		Dur("elapsed", time.Since(start)).
		Msg("clustering finished")
	if logging.Debug().Enabled() {
		for k, row := range hcluster.Linkage(root) {
			runLog.Debug().
				Int("merge", k+1).
				Float64("distance", row[2]).
				Int("size", int(row[3])).
				Msg("merged")
		}
	}

	if err := writeTree(stdout, cfg.Output, root, ds.RowLabels); err != nil {
		return err
	}

	if cfg.Threshold > 0 {
		return writeClusters(stdout, hcluster.Cut(root, cfg.Threshold), ds.RowLabels)
	}
	return nil
}

func loadDataset(cfg *config.Config, stdin io.Reader) (*hcluster.Dataset, error) {
	r := stdin
	if cfg.Input != "" && cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch cfg.Format {
	case "json":
		return hcluster.ReadBlogData(r)
	case "csv":
		return hcluster.ReadMatrix(r, ',')
	default:
		return hcluster.ReadMatrix(r, '\t')
	}
}

func writeTree(w io.Writer, output string, root *hcluster.Node, labels []string) error {
	switch output {
	case "json":
		b, err := hcluster.MarshalLabeled(root, labels)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case "linkage":
		enc := json.NewEncoder(w)
		for _, row := range hcluster.Linkage(root) {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	default:
		return hcluster.Fprint(w, root, labels)
	}
}

func writeLayout(w io.Writer, ds *hcluster.Dataset, metric hcluster.DistanceMetric, cfg *config.Config) error {
	start := time.Now()
	points, err := hcluster.Scaledown(ds.Rows, metric, cfg.Iterations, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	logging.Info().
		Str("metric", cfg.Metric).
		Int("points", len(points)).
		Dur("elapsed", time.Since(start)).
		Msg("layout finished")

	for id, p := range points {
		name := fmt.Sprintf("#%d", id)
		if id < len(ds.RowLabels) {
			name = ds.RowLabels[id]
		}
		if _, err := fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", name, p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeClusters(w io.Writer, assignments []int, labels []string) error {
	groups := map[int][]string{}
	count := 0
	for id, c := range assignments {
		name := fmt.Sprintf("#%d", id)
		if id < len(labels) {
			name = labels[id]
		}
		groups[c] = append(groups[c], name)
		count = max(count, c+1)
	}
	logging.Info().Int("clusters", count).Msg("flat clusters extracted")

	for c := 0; c < count; c++ {
		if _, err := fmt.Fprintf(w, "cluster %d: %v\n", c, groups[c]); err != nil {
			return err
		}
	}
	return nil
}
