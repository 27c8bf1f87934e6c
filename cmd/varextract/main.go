package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	variants "github.com/biodatageeks/genomic-publications-agent"
	"github.com/biodatageeks/genomic-publications-agent/internal/config"
	"github.com/biodatageeks/genomic-publications-agent/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML run configuration")
		text       = flag.String("text", "", "Text to extract from (instead of file arguments)")
		format     = flag.String("format", "tsv", "Output format: tsv or json")
	)
	flag.Parse()

	if *text == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: varextract [-config CONFIG] [-format tsv|json] -text TEXT | FILE...")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *format != "tsv" && *format != "json" {
		fmt.Fprintf(os.Stderr, "error: unknown format %q\n", *format)
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

	rec, closeRec, err := cfg.BuildRecognizer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating recognizer: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeRec() }()

	ctx := context.Background()
	var records []report.MentionRecord

	if *text != "" {
		records, err = extract(ctx, rec, "", *text, records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		records, err = extract(ctx, rec, id, string(data), records)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error extracting %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	switch *format {
	case "json":
		err = report.WriteMentionsJSON(os.Stdout, records)
	default:
		err = report.WriteMentionsTSV(os.Stdout, records)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}
}

func extract(ctx context.Context, rec variants.Recognizer, id, text string, records []report.MentionRecord) ([]report.MentionRecord, error) {
	mentions, err := rec.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}
	for _, m := range mentions {
		records = append(records, report.Record(id, m))
	}
	return records, nil
}
