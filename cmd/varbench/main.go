package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	variants "github.com/biodatageeks/genomic-publications-agent"
	"github.com/biodatageeks/genomic-publications-agent/eval"
	"github.com/biodatageeks/genomic-publications-agent/internal/config"
	"github.com/biodatageeks/genomic-publications-agent/internal/corpus"
	"github.com/biodatageeks/genomic-publications-agent/internal/report"
	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to YAML run configuration")
		snippetsPath  = flag.String("snippets", "", "Path to snippets JSON file (required)")
		referencePath = flag.String("reference", "", "Path to ground-truth CSV file (required)")
		outPath       = flag.String("out", "", "Write threshold CSV to file (default stdout)")
		layout        = flag.String("layout", "flat", "CSV layout: flat or entity")
		sweep         = flag.Bool("sweep", false, "Override configured thresholds with -sweep-min/max/step")
		sweepMin      = flag.Float64("sweep-min", 0, "Sweep minimum threshold")
		sweepMax      = flag.Float64("sweep-max", 1, "Sweep maximum threshold")
		sweepStep     = flag.Float64("sweep-step", 0.1, "Sweep step size")
	)
	flag.Parse()

	if *snippetsPath == "" || *referencePath == "" {
		fmt.Fprintln(os.Stderr, "error: -snippets and -reference required")
		flag.Usage()
		os.Exit(1)
	}
	if *layout != "flat" && *layout != "entity" {
		fmt.Fprintf(os.Stderr, "error: unknown layout %q\n", *layout)
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	snippets, err := corpus.LoadSnippets(*snippetsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading snippets: %v\n", err)
		os.Exit(1)
	}
	ref, err := corpus.LoadReference(*referencePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading reference: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d snippets, %d reference genes\n\n", len(snippets), len(ref.Genes()))

	rec, closeRec, err := cfg.BuildRecognizer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating recognizer: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeRec() }()

	preds, err := collect(context.Background(), rec, snippets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error extracting: %v\n", err)
		os.Exit(1)
	}

	thresholds := cfg.ThresholdList()
	if *sweep {
		thresholds = append(
			eval.SweepValues(*sweepMin, *sweepMax, *sweepStep),
			eval.UnfilteredThreshold(),
		)
	}

	results := eval.Sweep(preds, ref, thresholds)

	out := io.Writer(os.Stdout)
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating %s: %v\n", *outPath, err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch *layout {
	case "entity":
		rows := eval.SweepEntities(
			map[eval.Entity][]eval.Prediction{eval.EntityGene: preds},
			map[eval.Entity]eval.ReferenceSet{eval.EntityGene: ref},
			thresholds,
		)
		err = report.WriteEntityCSV(out, rows)
	default:
		err = report.WriteFlatCSV(out, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing report: %v\n", err)
		os.Exit(1)
	}

	printBest(results)
}

// collect runs the recognizer over every snippet and normalizes mentions
// into gene-scoped predictions. A mention with no gene context falls back
// to the snippet's gene, then to the unscoped bucket.
func collect(ctx context.Context, rec variants.Recognizer, snippets []corpus.Snippet) ([]eval.Prediction, error) {
	var preds []eval.Prediction
	for _, s := range snippets {
		mentions, err := rec.Recognize(ctx, s.Text)
		if err != nil {
			return nil, fmt.Errorf("snippet %s: %w", s.PMID, err)
		}
		for _, m := range mentions {
			c, ok := normalize.Variant(m.Family, m.Text)
			if !ok {
				continue
			}
			gene := m.Gene
			if gene == "" {
				gene = s.Gene
			}
			preds = append(preds, eval.Prediction{
				Gene:       gene,
				Variant:    c,
				Confidence: m.Confidence,
			})
		}
	}
	return preds, nil
}

func printBest(results []eval.ThresholdMetrics) {
	if len(results) == 0 {
		return
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Overall.F1 > best.Overall.F1 {
			best = r
		}
	}
	fmt.Printf("\nBest threshold: %s  Precision: %.2f  Recall: %.2f  F1: %.2f\n",
		best.Threshold.String(), best.Overall.Precision,
		best.Overall.Recall, best.Overall.F1)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n",
		best.Overall.TruePositives, best.Overall.FalsePositives,
		best.Overall.FalseNegatives)
}
