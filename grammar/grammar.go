// Package grammar defines the textual grammars for genomic variant notation.
//
// Each grammar pairs a compiled pattern with a notation family, a baseline
// confidence, and a specificity rank used to break ties between overlapping
// matches. Patterns are compiled once at package init and are safe for
// concurrent use.
package grammar

import "regexp"

// Family labels the notation family a grammar recognizes.
type Family string

const (
	FamilyDNA         Family = "dna"
	FamilyRNA         Family = "rna"
	FamilyProtein     Family = "protein"
	FamilyDBSNP       Family = "dbsnp"
	FamilyChromosomal Family = "chromosomal"
	FamilyAberration  Family = "aberration"
	FamilyRepeat      Family = "repeat"
)

// Grammar is one matching rule for a variant notation family.
type Grammar struct {
	Name        string
	Family      Family
	Baseline    float64
	Specificity int

	re        *regexp.Regexp
	hasPrefix bool              // pattern captures a reference-sequence prefix in group 1
	validate  func(string) bool // structural check beyond the coarse pattern
}

// Candidate is a raw match produced by a grammar before any filtering.
type Candidate struct {
	Text     string
	Start    int
	End      int
	Grammar  *Grammar
	Prefixed bool
}

// Valid reports whether the matched text passes the grammar's structural
// check. Grammars without a check accept every pattern match.
func (g *Grammar) Valid(text string) bool {
	if g.validate == nil {
		return true
	}
	return g.validate(text)
}

// EffectiveSpecificity ranks a candidate for overlap tie-breaking. An
// explicit reference-sequence prefix makes a match more specific than a bare
// positional one.
func (c Candidate) EffectiveSpecificity() int {
	if c.Prefixed {
		return c.Grammar.Specificity + 1
	}
	return c.Grammar.Specificity
}

// Find runs every grammar over text and returns all raw candidates in
// unspecified order. Overlap resolution is the caller's concern.
func Find(text string) []Candidate {
	if text == "" {
		return nil
	}
	var out []Candidate
	for _, g := range grammars {
		for _, idx := range g.re.FindAllStringSubmatchIndex(text, -1) {
			c := Candidate{
				Text:    text[idx[0]:idx[1]],
				Start:   idx[0],
				End:     idx[1],
				Grammar: g,
			}
			if g.hasPrefix && len(idx) >= 4 && idx[2] >= 0 {
				c.Prefixed = true
			}
			out = append(out, c)
		}
	}
	return out
}

// Identify returns the most specific grammar whose pattern matches s in its
// entirety, or false when no grammar covers it.
func Identify(s string) (*Grammar, bool) {
	var best *Grammar
	for _, g := range grammars {
		loc := g.re.FindStringIndex(s)
		if loc == nil || loc[0] != 0 || loc[1] != len(s) {
			continue
		}
		if !g.Valid(s) {
			continue
		}
		if best == nil || g.Specificity > best.Specificity {
			best = g
		}
	}
	return best, best != nil
}

// All returns every registered grammar. The returned slice is shared; callers
// must not modify it.
func All() []*Grammar {
	return grammars
}
