package grammar

import "regexp"

// Pattern fragments shared across grammars. The optional leading group
// captures a reference-sequence accession such as NM_000546.5.
const (
	refSeq = `(?:([A-Za-z][A-Za-z0-9_]*(?:\.[0-9]+)?):)?`
	pos    = `[*-]?[0-9]+(?:[+-][0-9]+)?`
	aa3    = `(?:Ala|Arg|Asn|Asp|Cys|Gln|Glu|Gly|His|Ile|Leu|Lys|Met|Phe|Pro|Ser|Thr|Trp|Tyr|Val|Ter)`
	aa     = `(?:` + aa3 + `|[A-Z])`
)

var grammars = []*Grammar{
	{
		Name:        "hgvs_dna",
		Family:      FamilyDNA,
		Baseline:    0.9,
		Specificity: 5,
		hasPrefix:   true,
		validate:    validRange,
		re: regexp.MustCompile(`(?i)\b` + refSeq + `[cgnmo]\.` + pos + `(?:_` + pos + `)?` +
			`(?:[ACGT]>[ACGT]|delins[ACGT]+|del[ACGT]*|dup[ACGT]*|ins[ACGT]+)\b`),
	},
	{
		Name:        "hgvs_rna",
		Family:      FamilyRNA,
		Baseline:    0.85,
		Specificity: 5,
		hasPrefix:   true,
		validate:    validRange,
		re: regexp.MustCompile(`(?i)\b` + refSeq + `r\.` + pos + `(?:_` + pos + `)?` +
			`(?:[acgu]>[acgu]|delins[acgu]+|del[acgu]*|dup[acgu]*|ins[acgu]+)\b`),
	},
	{
		Name:        "hgvs_protein",
		Family:      FamilyProtein,
		Baseline:    0.9,
		Specificity: 5,
		hasPrefix:   true,
		validate:    validProtein,
		re: regexp.MustCompile(`\b` + refSeq + `p\.(?:` + aa3 + `|\*|[A-Z])[0-9]+(?:_(?:` + aa3 + `|[A-Z])[0-9]+)?` +
			`(?:delins` + aa + `+\b|del\b|dup\b|ins` + aa + `+\b|fs(?:Ter[0-9]+|\*[0-9]+)?\b|` + aa3 + `\b|[A-Z]\b|=|\*)`),
	},
	{
		// Bare substitutions like V600E or Val600Glu. Low baseline: these
		// collide with lab shorthand and survive only in genetic context.
		Name:        "protein_bare",
		Family:      FamilyProtein,
		Baseline:    0.6,
		Specificity: 1,
		validate:    validProtein,
		re:          regexp.MustCompile(`\b(?:` + aa3 + `[0-9]+` + aa3 + `|[A-Z][0-9]+[A-Z])\b`),
	},
	{
		Name:        "dbsnp",
		Family:      FamilyDBSNP,
		Baseline:    0.95,
		Specificity: 4,
		re:          regexp.MustCompile(`(?i)\brs[0-9]+\b`),
	},
	{
		Name:        "chr_position",
		Family:      FamilyChromosomal,
		Baseline:    0.8,
		Specificity: 4,
		validate:    validChromosome,
		re:          regexp.MustCompile(`(?i)\bchr(?:[0-9]{1,2}|X|Y|MT|M):[0-9]+[ACGT]>[ACGT]\b`),
	},
	{
		Name:        "chr_position_basic",
		Family:      FamilyChromosomal,
		Baseline:    0.6,
		Specificity: 2,
		validate:    validChromosome,
		re:          regexp.MustCompile(`(?i)\bchr(?:[0-9]{1,2}|X|Y|MT|M):[0-9]+\b`),
	},
	{
		Name:        "chr_aberration",
		Family:      FamilyAberration,
		Baseline:    0.75,
		Specificity: 3,
		validate:    validAberration,
		re: regexp.MustCompile(`(?i)\b(?:del|dup|inv|t)\([0-9]{1,2}(?:;[0-9]{1,2})?\)` +
			`\([pq][0-9]+(?:\.[0-9]+)?(?:;?[pq][0-9]+(?:\.[0-9]+)?)?\)`),
	},
	{
		Name:        "repeat_expansion",
		Family:      FamilyRepeat,
		Baseline:    0.8,
		Specificity: 4,
		hasPrefix:   true,
		re:          regexp.MustCompile(`\b([A-Z][A-Z0-9-]{1,9}):c\.[0-9]+[ACGT]+\[>?[0-9]+\]`),
	},
}
