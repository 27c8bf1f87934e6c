package eval

import (
	"testing"

	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

func pred(gene, key string, conf float64) Prediction {
	return Prediction{
		Gene:       gene,
		Variant:    normalize.Canonical{Key: key},
		Confidence: conf,
	}
}

func TestEvaluate_SingleGene(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("BRCA1", "c.123A>G")
	ref.Add("BRCA1", "c.456C>T")

	preds := []Prediction{
		pred("BRCA1", "c.123A>G", 0.9),
		pred("BRCA1", "p.V600E", 0.9),
	}

	m := Evaluate(preds, ref, Threshold{Value: 0}).Overall
	if m.TruePositives != 1 || m.FalsePositives != 1 || m.FalseNegatives != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1",
			m.TruePositives, m.FalsePositives, m.FalseNegatives)
	}
	if m.Precision != 0.5 || m.Recall != 0.5 || m.F1 != 0.5 {
		t.Errorf("scores = %v/%v/%v, want 0.5 each", m.Precision, m.Recall, m.F1)
	}
}

func TestEvaluate_EmptyPredictions(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("TP53", "p.R175H")

	m := Evaluate(nil, ref, Threshold{Value: 0}).Overall
	if m.TruePositives != 0 || m.FalsePositives != 0 || m.FalseNegatives != 1 {
		t.Errorf("counts = %d/%d/%d, want 0/0/1",
			m.TruePositives, m.FalsePositives, m.FalseNegatives)
	}
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("scores = %v/%v/%v, want all 0 (never NaN)",
			m.Precision, m.Recall, m.F1)
	}
}

func TestEvaluate_EmptyReference(t *testing.T) {
	preds := []Prediction{pred("TP53", "p.R175H", 0.9)}

	m := Evaluate(preds, NewReferenceSet(), Threshold{Value: 0}).Overall
	if m.FalsePositives != 1 {
		t.Errorf("FalsePositives = %d, want 1", m.FalsePositives)
	}
	if m.Recall != 0 {
		t.Errorf("Recall = %v, want 0", m.Recall)
	}
}

func TestEvaluate_DuplicatesCollapse(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("BRCA1", "c.123A>G")

	preds := []Prediction{
		pred("BRCA1", "c.123A>G", 0.9),
		pred("BRCA1", "c.123A>G", 0.7),
		pred("BRCA1", "c.123A>G", 0.8),
	}

	m := Evaluate(preds, ref, Threshold{Value: 0}).Overall
	if m.TruePositives != 1 || m.FalsePositives != 0 {
		t.Errorf("counts = %d TP / %d FP, want exactly one TP",
			m.TruePositives, m.FalsePositives)
	}
}

func TestEvaluate_ThresholdFilters(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("BRCA1", "c.123A>G")

	preds := []Prediction{pred("BRCA1", "c.123A>G", 0.4)}

	m := Evaluate(preds, ref, Threshold{Value: 0.5}).Overall
	if m.TruePositives != 0 || m.FalseNegatives != 1 {
		t.Errorf("counts = %d TP / %d FN, want filtered prediction to become FN",
			m.TruePositives, m.FalseNegatives)
	}

	m = Evaluate(preds, ref, UnfilteredThreshold()).Overall
	if m.TruePositives != 1 {
		t.Errorf("unfiltered TP = %d, want 1", m.TruePositives)
	}
}

func TestEvaluate_MicroAverage(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("BRCA1", "c.123A>G")
	ref.Add("TP53", "p.R175H")
	ref.Add("TP53", "p.R273C")

	preds := []Prediction{
		pred("BRCA1", "c.123A>G", 0.9),
		pred("TP53", "p.R175H", 0.9),
		pred("TP53", "rs999", 0.9),
	}

	res := Evaluate(preds, ref, Threshold{Value: 0})

	// Counts sum across genes before scores derive.
	m := res.Overall
	if m.TruePositives != 2 || m.FalsePositives != 1 || m.FalseNegatives != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1",
			m.TruePositives, m.FalsePositives, m.FalseNegatives)
	}
	if got, want := m.Precision, 2.0/3.0; got != want {
		t.Errorf("Precision = %v, want %v", got, want)
	}

	if g := res.PerGene["BRCA1"]; g.Precision != 1 || g.Recall != 1 {
		t.Errorf("BRCA1 = %+v, want perfect score", g)
	}
}

func TestEvaluate_UnscopedBucket(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add(Unscoped, "rs13447455")
	ref.Add("BRCA1", "c.123A>G")

	preds := []Prediction{
		pred(Unscoped, "rs13447455", 0.9),
		pred(Unscoped, "rs1", 0.9),
		pred("BRCA1", "c.123A>G", 0.9),
	}

	res := Evaluate(preds, ref, Threshold{Value: 0})

	// Predictions without gene context score against the unscoped bucket
	// only; they never match a gene-scoped reference entry.
	u := res.PerGene[Unscoped]
	if u.TruePositives != 1 || u.FalsePositives != 1 {
		t.Errorf("unscoped = %d TP / %d FP, want 1/1",
			u.TruePositives, u.FalsePositives)
	}
	if res.Overall.TruePositives != 2 {
		t.Errorf("overall TP = %d, want 2", res.Overall.TruePositives)
	}
}

func TestReferenceSet_Genes(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add("TP53", "p.R175H")
	ref.Add("BRCA1", "c.123A>G")
	ref.Add("BRCA1", "c.456C>T")

	genes := ref.Genes()
	if len(genes) != 2 || genes[0] != "BRCA1" || genes[1] != "TP53" {
		t.Errorf("Genes() = %v, want [BRCA1 TP53]", genes)
	}
}
