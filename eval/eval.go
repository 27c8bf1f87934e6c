// Package eval scores normalized variant predictions against a per-gene
// reference set and sweeps the scoring across confidence thresholds.
package eval

import (
	"sort"

	"github.com/biodatageeks/genomic-publications-agent/normalize"
)

// Unscoped is the catch-all bucket for predictions with no gene context.
// Reference entries may be registered under it the same way.
const Unscoped = ""

// Prediction is one normalized predicted variant scoped to a gene.
type Prediction struct {
	Gene       string
	Variant    normalize.Canonical
	Confidence float64
}

// ReferenceSet maps a gene symbol to its set of ground-truth equivalence
// keys. The empty gene symbol is the unscoped bucket.
type ReferenceSet map[string]map[string]struct{}

// NewReferenceSet returns an empty reference set.
func NewReferenceSet() ReferenceSet {
	return make(ReferenceSet)
}

// Add registers a ground-truth equivalence key for a gene.
func (r ReferenceSet) Add(gene, key string) {
	set, ok := r[gene]
	if !ok {
		set = make(map[string]struct{})
		r[gene] = set
	}
	set[key] = struct{}{}
}

// Genes returns the gene symbols in sorted order.
func (r ReferenceSet) Genes() []string {
	genes := make([]string, 0, len(r))
	for g := range r {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}

// Metrics holds match counts and derived scores for one evaluation.
type Metrics struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
	F1             float64
}

// finish derives precision, recall and F1 from raw counts. Empty
// denominators yield 0, never NaN.
func finish(tp, fp, fn int) Metrics {
	m := Metrics{
		TruePositives:  tp,
		FalsePositives: fp,
		FalseNegatives: fn,
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// ThresholdMetrics holds the scores computed at one threshold.
type ThresholdMetrics struct {
	Threshold Threshold
	Overall   Metrics
	PerGene   map[string]Metrics
}

// Evaluate compares predictions surviving the threshold against the
// reference set. Matching is per gene by equivalence-key set membership:
// duplicate predicted keys collapse, each matching key consumes exactly one
// reference entry. The overall record micro-averages by summing counts
// across genes before deriving scores.
func Evaluate(preds []Prediction, ref ReferenceSet, t Threshold) ThresholdMetrics {
	byGene := make(map[string]map[string]struct{})
	for _, p := range preds {
		if !t.Keep(p.Confidence) {
			continue
		}
		set, ok := byGene[p.Gene]
		if !ok {
			set = make(map[string]struct{})
			byGene[p.Gene] = set
		}
		set[p.Variant.Key] = struct{}{}
	}

	perGene := make(map[string]Metrics)
	var totalTP, totalFP, totalFN int
	for gene := range genesOf(byGene, ref) {
		predicted := byGene[gene]
		truth := ref[gene]

		var tp, fp, fn int
		for key := range predicted {
			if _, ok := truth[key]; ok {
				tp++
			} else {
				fp++
			}
		}
		for key := range truth {
			if _, ok := predicted[key]; !ok {
				fn++
			}
		}

		perGene[gene] = finish(tp, fp, fn)
		totalTP += tp
		totalFP += fp
		totalFN += fn
	}

	return ThresholdMetrics{
		Threshold: t,
		Overall:   finish(totalTP, totalFP, totalFN),
		PerGene:   perGene,
	}
}

// genesOf yields the union of gene symbols across predictions and reference.
func genesOf(byGene map[string]map[string]struct{}, ref ReferenceSet) map[string]struct{} {
	genes := make(map[string]struct{}, len(byGene)+len(ref))
	for g := range byGene {
		genes[g] = struct{}{}
	}
	for g := range ref {
		genes[g] = struct{}{}
	}
	return genes
}
