//go:build ignore

// Convert publication exports into the snippets JSON format varbench reads.
// Input is a CSV with a header naming pmid, text and optionally gene columns.
// Usage: go run ./scripts/prepare-snippets.go input.csv > snippets.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

type snippet struct {
	PMID string `json:"pmid"`
	Text string `json:"text"`
	Gene string `json:"gene,omitempty"`
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: prepare-snippets.go input.csv > snippets.json")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading header: %v\n", err)
		os.Exit(1)
	}

	pmidCol, textCol, geneCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "pmid":
			pmidCol = i
		case "text", "snippet", "passage":
			textCol = i
		case "gene":
			geneCol = i
		}
	}
	if pmidCol < 0 || textCol < 0 {
		fmt.Fprintf(os.Stderr, "error: header %v lacks pmid or text column\n", header)
		os.Exit(1)
	}

	var snippets []snippet
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error reading row: %v\n", err)
			os.Exit(1)
		}
		if textCol >= len(record) || strings.TrimSpace(record[textCol]) == "" {
			continue
		}

		s := snippet{
			PMID: strings.TrimSpace(record[pmidCol]),
			Text: strings.TrimSpace(record[textCol]),
		}
		if geneCol >= 0 && geneCol < len(record) {
			s.Gene = strings.TrimSpace(record[geneCol])
		}
		snippets = append(snippets, s)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snippets); err != nil {
		fmt.Fprintf(os.Stderr, "error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "wrote %d snippets\n", len(snippets))
}
