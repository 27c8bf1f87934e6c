// Package corpus loads publication snippets and ground-truth variant
// references for benchmark runs.
package corpus

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biodatageeks/genomic-publications-agent/eval"
	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

// Snippet is one publication text fragment to extract mentions from.
type Snippet struct {
	PMID string `json:"pmid"`
	Text string `json:"text"`
	Gene string `json:"gene,omitempty"`
}

// LoadSnippets reads a JSON array of snippets from a file. Snippets with
// empty text are dropped.
func LoadSnippets(path string) ([]Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snippets: %w", err)
	}

	var raw []Snippet
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse snippets %s: %w", path, err)
	}

	snippets := make([]Snippet, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		snippets = append(snippets, s)
	}
	return snippets, nil
}

// LoadReference reads a ground-truth CSV into a ReferenceSet. The file
// needs a header naming at least a "variant" column; a "gene" column is
// optional and defaults to the unscoped bucket. Variant notations are
// canonicalized on load; a notation no sub-grammar parses keeps its raw
// form as key, so it still counts as a false negative downstream.
func LoadReference(path string, opts ...normalize.Option) (eval.ReferenceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadReference(f, opts...)
}

// ReadReference parses ground-truth CSV rows from r.
func ReadReference(r io.Reader, opts ...normalize.Option) (eval.ReferenceSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read reference header: %w", err)
	}

	geneCol, variantCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "gene":
			geneCol = i
		case "variant", "mutation":
			variantCol = i
		}
	}
	if variantCol < 0 {
		return nil, fmt.Errorf("reference header %v lacks a variant column", header)
	}

	ref := eval.NewReferenceSet()
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference row: %w", err)
		}
		if variantCol >= len(record) {
			return nil, fmt.Errorf("reference row %d: missing variant field", line)
		}

		raw := strings.TrimSpace(record[variantCol])
		if raw == "" {
			continue
		}

		gene := eval.Unscoped
		if geneCol >= 0 && geneCol < len(record) {
			gene = strings.TrimSpace(record[geneCol])
		}

		key := raw
		if c, ok := normalize.Any(raw, opts...); ok {
			key = c.Key
		}
		ref.Add(gene, key)
	}

	return ref, nil
}
