package eval

import "strconv"

// Threshold is one sweep point. The unfiltered baseline keeps every
// prediction regardless of confidence.
type Threshold struct {
	Value      float64
	Unfiltered bool
}

// UnfilteredThreshold is the no-threshold baseline.
func UnfilteredThreshold() Threshold {
	return Threshold{Unfiltered: true}
}

// Keep reports whether a prediction with the given confidence survives.
func (t Threshold) Keep(confidence float64) bool {
	return t.Unfiltered || confidence >= t.Value
}

// String renders the threshold for reports; the unfiltered baseline renders
// as "None".
func (t Threshold) String() string {
	if t.Unfiltered {
		return "None"
	}
	return strconv.FormatFloat(t.Value, 'g', -1, 64)
}

// SweepValues generates thresholds from min to max inclusive with the given
// step.
func SweepValues(min, max, step float64) []Threshold {
	if step <= 0 {
		return nil
	}
	var out []Threshold
	for i := 0; ; i++ {
		v := min + float64(i)*step
		if v > max+step/2 {
			break
		}
		out = append(out, Threshold{Value: v})
	}
	return out
}

// DefaultThresholds is the sweep 0 through 10 inclusive plus the unfiltered
// baseline.
func DefaultThresholds() []Threshold {
	return append(SweepValues(0, 10, 1), UnfilteredThreshold())
}

// Sweep evaluates predictions once per threshold, in the given order.
func Sweep(preds []Prediction, ref ReferenceSet, thresholds []Threshold) []ThresholdMetrics {
	out := make([]ThresholdMetrics, 0, len(thresholds))
	for _, t := range thresholds {
		out = append(out, Evaluate(preds, ref, t))
	}
	return out
}

// Entity labels the scoping of an evaluation run.
type Entity string

const (
	EntityGene    Entity = "gene"
	EntityDisease Entity = "disease"
)

// EntityMetrics is one sweep row with gene- and disease-scoped scores. The
// combined counts sum both scopes.
type EntityMetrics struct {
	Threshold Threshold
	Gene      Metrics
	Disease   Metrics
	Combined  Metrics
}

// SweepEntities runs a sweep per entity scope and zips the rows. A scope
// with no predictions and no reference entries contributes zero counts.
func SweepEntities(preds map[Entity][]Prediction, refs map[Entity]ReferenceSet, thresholds []Threshold) []EntityMetrics {
	out := make([]EntityMetrics, 0, len(thresholds))
	for _, t := range thresholds {
		gene := Evaluate(preds[EntityGene], refs[EntityGene], t).Overall
		disease := Evaluate(preds[EntityDisease], refs[EntityDisease], t).Overall
		out = append(out, EntityMetrics{
			Threshold: t,
			Gene:      gene,
			Disease:   disease,
			Combined: finish(
				gene.TruePositives+disease.TruePositives,
				gene.FalsePositives+disease.FalsePositives,
				gene.FalseNegatives+disease.FalseNegatives,
			),
		})
	}
	return out
}
