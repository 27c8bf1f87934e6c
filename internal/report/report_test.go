package report

import (
	"strings"
	"testing"

	variants "github.com/biodatageeks/genomic-publications-agent"
	"github.com/biodatageeks/genomic-publications-agent/eval"
	"github.com/biodatageeks/genomic-publications-agent/grammar"
)

func TestWriteEntityCSV(t *testing.T) {
	rows := []eval.EntityMetrics{
		{
			Threshold: eval.Threshold{Value: 0.5},
			Gene:      eval.Metrics{Precision: 0.5, Recall: 1, F1: 2.0 / 3.0},
			Disease:   eval.Metrics{},
		},
		{
			Threshold: eval.UnfilteredThreshold(),
			Gene:      eval.Metrics{Precision: 1, Recall: 1, F1: 1},
		},
	}

	var b strings.Builder
	if err := WriteEntityCSV(&b, rows); err != nil {
		t.Fatalf("WriteEntityCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 rows", len(lines))
	}
	want := "threshold,gene_precision,gene_recall,gene_f1,disease_precision,disease_recall,disease_f1"
	if lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "0.5,0.5,1,") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "None,1,1,1,") {
		t.Errorf("unfiltered row = %q, want None threshold", lines[2])
	}
}

func TestWriteFlatCSV(t *testing.T) {
	results := []eval.ThresholdMetrics{
		{
			Threshold: eval.Threshold{Value: 0},
			Overall: eval.Metrics{
				TruePositives: 2, FalsePositives: 1, FalseNegatives: 1,
				Precision: 2.0 / 3.0, Recall: 0.5, F1: 4.0 / 7.0,
			},
		},
	}

	var b strings.Builder
	if err := WriteFlatCSV(&b, results); err != nil {
		t.Fatalf("WriteFlatCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if lines[0] != "threshold,precision,recall,f1,tp,fp,fn" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], ",2,1,1") {
		t.Errorf("row = %q, want trailing counts 2,1,1", lines[1])
	}
}

func TestRecord_AttachesKey(t *testing.T) {
	m := variants.Mention{
		Text:       "p.Val600Glu",
		Family:     grammar.FamilyProtein,
		Start:      10,
		End:        21,
		Confidence: 0.9,
		Gene:       "BRAF",
	}

	r := Record("23538602", m)
	if r.Key != "p.V600E" {
		t.Errorf("Key = %q, want p.V600E", r.Key)
	}
	if r.PMID != "23538602" || r.Gene != "BRAF" {
		t.Errorf("record = %+v", r)
	}
}

func TestWriteMentions(t *testing.T) {
	records := []MentionRecord{
		{
			PMID: "1", Text: "c.123A>G", Family: "dna",
			Start: 4, End: 12, Confidence: 0.9, Gene: "BRCA1", Key: "c.123A>G",
		},
	}

	var tsv strings.Builder
	if err := WriteMentionsTSV(&tsv, records); err != nil {
		t.Fatalf("WriteMentionsTSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(tsv.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "c.123A>G\tdna\t4\t12\t") {
		t.Errorf("row = %q", lines[1])
	}

	var js strings.Builder
	if err := WriteMentionsJSON(&js, records); err != nil {
		t.Fatalf("WriteMentionsJSON failed: %v", err)
	}
	if !strings.Contains(js.String(), `"key": "c.123A>G"`) {
		t.Errorf("json = %s", js.String())
	}
}
