// Package report writes benchmark metrics and extracted mentions in the
// formats downstream analysis expects.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	variants "github.com/biodatageeks/genomic-publications-agent"
	"github.com/biodatageeks/genomic-publications-agent/eval"
	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

// entityHeader is the fixed column layout of the entity-scoped threshold
// report. The unfiltered baseline renders its threshold as "None".
var entityHeader = []string{
	"threshold",
	"gene_precision", "gene_recall", "gene_f1",
	"disease_precision", "disease_recall", "disease_f1",
}

// WriteEntityCSV writes one row per threshold with gene- and disease-scoped
// scores.
func WriteEntityCSV(w io.Writer, rows []eval.EntityMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entityHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Threshold.String(),
			num(r.Gene.Precision), num(r.Gene.Recall), num(r.Gene.F1),
			num(r.Disease.Precision), num(r.Disease.Recall), num(r.Disease.F1),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var flatHeader = []string{"threshold", "precision", "recall", "f1", "tp", "fp", "fn"}

// WriteFlatCSV writes one row per threshold with unscoped scores and raw
// counts.
func WriteFlatCSV(w io.Writer, results []eval.ThresholdMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flatHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		m := r.Overall
		record := []string{
			r.Threshold.String(),
			num(m.Precision), num(m.Recall), num(m.F1),
			strconv.Itoa(m.TruePositives),
			strconv.Itoa(m.FalsePositives),
			strconv.Itoa(m.FalseNegatives),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// MentionRecord is one extracted mention prepared for export.
type MentionRecord struct {
	PMID       string  `json:"pmid,omitempty"`
	Text       string  `json:"text"`
	Family     string  `json:"family"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Gene       string  `json:"gene,omitempty"`
	Key        string  `json:"key,omitempty"`
}

// Record converts a mention into its export form, attaching the canonical
// equivalence key when the notation parses.
func Record(pmid string, m variants.Mention) MentionRecord {
	r := MentionRecord{
		PMID:       pmid,
		Text:       m.Text,
		Family:     string(m.Family),
		Start:      m.Start,
		End:        m.End,
		Confidence: m.Confidence,
		Gene:       m.Gene,
	}
	if c, ok := normalize.Variant(m.Family, m.Text); ok {
		r.Key = c.Key
	}
	return r
}

// WriteMentionsTSV writes mention records as tab-separated rows with a
// header.
func WriteMentionsTSV(w io.Writer, records []MentionRecord) error {
	if _, err := fmt.Fprintln(w, "pmid\ttext\tfamily\tstart\tend\tconfidence\tgene\tkey"); err != nil {
		return err
	}
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			r.PMID, r.Text, r.Family, r.Start, r.End,
			num(r.Confidence), r.Gene, r.Key)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteMentionsJSON writes mention records as an indented JSON array.
func WriteMentionsJSON(w io.Writer, records []MentionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
