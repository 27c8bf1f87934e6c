// Package variants extracts genomic variant mentions from biomedical text.
//
// The package recognizes HGVS DNA, RNA and protein notations, dbSNP
// identifiers, chromosomal positions, structural aberrations and repeat
// expansions. Each mention carries a confidence derived from its notation
// family and adjusted by keywords in the surrounding context; known
// false-positive tokens such as histone marks are filtered out.
//
// Two recognizers implement the same contract. PatternRecognizer matches
// the notation grammars directly and needs no external files.
// ModelRecognizer runs an ONNX token-classification model to propose spans,
// which are then validated by the same grammar and context rules:
//
//	rec := variants.NewPatternRecognizer()
//	mentions, _ := rec.Recognize(ctx, "The BRCA1 c.123A>G mutation was found.")
//
// Subpackages normalize mentions into canonical equivalence keys and score
// them against ground-truth reference sets across confidence thresholds.
package variants
