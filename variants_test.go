package variants

import (
	"context"
	"strings"
	"testing"

	"github.com/biodatageeks/genomic-publications-agent/eval"
	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

func TestPatternRecognizer_SingleDNAMention(t *testing.T) {
	r := NewPatternRecognizer()
	text := "We identified c.123A>G in the proband."

	mentions, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("mentions = %d, want 1: %+v", len(mentions), mentions)
	}

	m := mentions[0]
	if m.Family != FamilyDNA {
		t.Errorf("Family = %q, want %q", m.Family, FamilyDNA)
	}
	if m.Text != "c.123A>G" {
		t.Errorf("Text = %q, want c.123A>G", m.Text)
	}
	if want := strings.Index(text, "c.123A>G"); m.Start != want || m.End != want+len("c.123A>G") {
		t.Errorf("span = [%d, %d], want [%d, %d]", m.Start, m.End, want, want+len("c.123A>G"))
	}
	if m.Confidence < 0.5 {
		t.Errorf("Confidence = %v, want >= 0.5", m.Confidence)
	}
}

func TestPatternRecognizer_Families(t *testing.T) {
	tests := []struct {
		text   string
		family Family
		want   string
	}{
		{"the c.88+2T>G splice variant", FamilyDNA, "c.88+2T>G"},
		{"transcript change r.123a>g detected", FamilyRNA, "r.123a>g"},
		{"the p.Val600Glu mutation", FamilyProtein, "p.Val600Glu"},
		{"genotyped rs13447455 allele", FamilyDBSNP, "rs13447455"},
		{"position chr7:140453136A>T genomic variant", FamilyChromosomal, "chr7:140453136A>T"},
		{"karyotype showed t(9;22)(q34;q11.2) translocation", FamilyAberration, "t(9;22)(q34;q11.2)"},
		{"expanded HTT:c.52CAG[>36] allele", FamilyRepeat, "HTT:c.52CAG[>36]"},
	}
	r := NewPatternRecognizer()
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			mentions, err := r.Recognize(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("Recognize failed: %v", err)
			}
			if len(mentions) != 1 {
				t.Fatalf("mentions = %+v, want exactly one", mentions)
			}
			if mentions[0].Family != tt.family || mentions[0].Text != tt.want {
				t.Errorf("got %q (%s), want %q (%s)",
					mentions[0].Text, mentions[0].Family, tt.want, tt.family)
			}
		})
	}
}

func TestPatternRecognizer_BlacklistedToken(t *testing.T) {
	r := NewPatternRecognizer()

	mentions, err := r.Recognize(context.Background(),
		"Strong H3K4me3 modification observed at the promoter.")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	for _, m := range mentions {
		t.Errorf("unexpected mention %q at [%d, %d]", m.Text, m.Start, m.End)
	}

	// S22L matches the bare substitution pattern but is a known lab code.
	ms, drops := r.Scan("The S22L mutation construct was transfected.")
	if len(ms) != 0 {
		t.Errorf("mentions = %+v, want none", ms)
	}
	found := false
	for _, d := range drops {
		if d.Text == "S22L" && d.Reason == DropBlacklisted {
			found = true
		}
	}
	if !found {
		t.Errorf("drops = %+v, want blacklisted S22L", drops)
	}
}

func TestPatternRecognizer_MalformedDrop(t *testing.T) {
	r := NewPatternRecognizer()

	// Range start after end fails structural validation.
	mentions, drops := r.Scan("carrying the c.100_50del variant")
	if len(mentions) != 0 {
		t.Errorf("mentions = %+v, want none", mentions)
	}
	found := false
	for _, d := range drops {
		if d.Reason == DropMalformed {
			found = true
		}
	}
	if !found {
		t.Errorf("drops = %+v, want a malformed drop", drops)
	}
}

func TestPatternRecognizer_ContextConfidence(t *testing.T) {
	r := NewPatternRecognizer()

	// Bare amino-acid substitutions start at 0.6; lab-protocol context
	// drives them below the floor.
	mentions, drops := r.Scan("antibody buffer plate primer V600E reagent kit tube")
	if len(mentions) != 0 {
		t.Errorf("mentions = %+v, want none", mentions)
	}
	low := false
	for _, d := range drops {
		if d.Text == "V600E" && d.Reason == DropLowConfidence {
			low = true
		}
	}
	if !low {
		t.Errorf("drops = %+v, want low-confidence V600E", drops)
	}

	// Variant-context keywords raise it instead.
	mentions, _ = r.Scan("the pathogenic V600E mutation")
	if len(mentions) != 1 {
		t.Fatalf("mentions = %+v, want one", mentions)
	}
	if got := mentions[0].Confidence; got <= 0.6 {
		t.Errorf("Confidence = %v, want above the 0.6 baseline", got)
	}
}

func TestPatternRecognizer_OverlapResolution(t *testing.T) {
	r := NewPatternRecognizer()

	// The prefixed HGVS protein form contains a bare substitution; only
	// the longer, more specific match survives.
	mentions, err := r.Recognize(context.Background(),
		"tumors with the p.Val600Glu mutation")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(mentions) != 1 {
		t.Fatalf("mentions = %+v, want one", mentions)
	}
	if mentions[0].Text != "p.Val600Glu" || mentions[0].Pattern != "hgvs_protein" {
		t.Errorf("kept %q (%s), want p.Val600Glu (hgvs_protein)",
			mentions[0].Text, mentions[0].Pattern)
	}
}

func TestPatternRecognizer_Ordering(t *testing.T) {
	r := NewPatternRecognizer()
	text := "Variants rs13447455, c.123A>G and p.Val600Glu were reported as pathogenic mutations."

	mentions, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(mentions) != 3 {
		t.Fatalf("mentions = %+v, want 3", mentions)
	}
	for i := 1; i < len(mentions); i++ {
		if mentions[i].Start < mentions[i-1].End {
			t.Errorf("mentions out of order: %+v", mentions)
		}
	}
}

func TestPatternRecognizer_MentionsRestartable(t *testing.T) {
	r := NewPatternRecognizer()
	seq := r.Mentions("Both c.123A>G and rs13447455 are known variants.")

	var first, second []string
	for m := range seq {
		first = append(first, m.Text)
	}
	for m := range seq {
		second = append(second, m.Text)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("passes = %v / %v, want 2 mentions each", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("sequence not restartable: %v vs %v", first, second)
		}
	}
}

func TestPatternRecognizer_EmptyWhenNothingFound(t *testing.T) {
	r := NewPatternRecognizer()
	mentions, err := r.Recognize(context.Background(),
		"No variant of interest was observed in this cohort.")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(mentions) != 0 {
		t.Errorf("mentions = %+v, want none", mentions)
	}
}

func TestPatternRecognizer_GeneAttachment(t *testing.T) {
	lex := DefaultLexicon().Extend(nil, nil, nil, []string{"BRCA1", "TP53"})
	r := NewPatternRecognizer(WithLexicon(lex))

	mentions, err := r.Recognize(context.Background(),
		"The BRCA1 c.123A>G mutation was found alongside rs13447455.")
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}
	if len(mentions) != 2 {
		t.Fatalf("mentions = %+v, want 2", mentions)
	}
	for _, m := range mentions {
		if m.Gene != "BRCA1" {
			t.Errorf("%q Gene = %q, want BRCA1", m.Text, m.Gene)
		}
	}
}

func TestPipeline_RecognizeNormalizeEvaluate(t *testing.T) {
	lex := DefaultLexicon().Extend(nil, nil, nil, []string{"BRCA1"})
	r := NewPatternRecognizer(WithLexicon(lex))
	text := "The BRCA1 c.123A>G mutation was found alongside rs13447455."

	mentions, err := r.Recognize(context.Background(), text)
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	var preds []eval.Prediction
	for _, m := range mentions {
		c, ok := normalize.Variant(m.Family, m.Text)
		if !ok {
			t.Fatalf("%q did not normalize", m.Text)
		}
		preds = append(preds, eval.Prediction{
			Gene:       m.Gene,
			Variant:    c,
			Confidence: m.Confidence,
		})
	}

	ref := eval.NewReferenceSet()
	for _, raw := range []string{"c.123A>G", "rs13447455"} {
		c, ok := normalize.Any(raw)
		if !ok {
			t.Fatalf("reference %q did not normalize", raw)
		}
		ref.Add("BRCA1", c.Key)
	}

	got := eval.Evaluate(preds, ref, eval.Threshold{Value: 0})
	o := got.Overall
	if o.TruePositives != 2 || o.FalsePositives != 0 || o.FalseNegatives != 0 {
		t.Fatalf("counts = %d/%d/%d, want 2/0/0 (preds %+v)",
			o.TruePositives, o.FalsePositives, o.FalseNegatives, preds)
	}
	if o.Precision != 1 || o.Recall != 1 || o.F1 != 1 {
		t.Errorf("scores = %v/%v/%v, want 1/1/1", o.Precision, o.Recall, o.F1)
	}
	if g, ok := got.PerGene["BRCA1"]; !ok || g.TruePositives != 2 {
		t.Errorf("PerGene[BRCA1] = %+v, want 2 true positives", g)
	}
}

func TestRoundTrip_CanonicalForms(t *testing.T) {
	canonical := []string{
		"c.123A>G",
		"r.123a>g",
		"p.V600E",
		"rs13447455",
		"chr7:140453136A>T",
		"HTT:c.52CAG[>36]",
	}
	r := NewPatternRecognizer()
	for _, form := range canonical {
		mentions, err := r.Recognize(context.Background(),
			"The variant "+form+" was reported.")
		if err != nil {
			t.Fatalf("Recognize failed: %v", err)
		}
		if len(mentions) != 1 {
			t.Fatalf("%q: mentions = %+v, want one", form, mentions)
		}
		c, ok := normalize.Variant(mentions[0].Family, mentions[0].Text)
		if !ok {
			t.Fatalf("%q: canonical form did not normalize", form)
		}
		if c.Key != form {
			t.Errorf("%q round-tripped to %q", form, c.Key)
		}
	}
}
