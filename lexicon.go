package variants

import (
	"regexp"
	"strings"
)

// Lexicon holds the keyword and blacklist vocabulary used during context
// validation. A Lexicon is immutable after construction and safe to share
// across concurrent scans; Extend returns a new value rather than mutating.
type Lexicon struct {
	positive  []string
	negative  []string
	blacklist map[string]struct{}
	genes     []string
}

// Histone marks (H3K4me3, H3K27ac, H2A, ...) are the most common source of
// false positives in methods sections.
var histoneMark = regexp.MustCompile(`^h[0-9]{1,2}(?:k[0-9]{1,2}(?:me|ac|ub|ph)?[0-9]*|[abxz])$`)

// NewLexicon builds a lexicon from keyword lists. All entries are matched
// case-insensitively; blacklist entries match whole candidate tokens.
func NewLexicon(positive, negative, blacklist, genes []string) *Lexicon {
	l := &Lexicon{
		positive:  lowerAll(positive),
		negative:  lowerAll(negative),
		blacklist: make(map[string]struct{}, len(blacklist)),
		genes:     upperAll(genes),
	}
	for _, b := range blacklist {
		l.blacklist[strings.ToLower(b)] = struct{}{}
	}
	return l
}

// DefaultLexicon returns the built-in biomedical vocabulary.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultPositive, defaultNegative, defaultBlacklist, nil)
}

// Extend returns a new Lexicon with the extra entries appended to the
// receiver's vocabulary.
func (l *Lexicon) Extend(positive, negative, blacklist, genes []string) *Lexicon {
	merged := NewLexicon(
		append(append([]string{}, l.positive...), positive...),
		append(append([]string{}, l.negative...), negative...),
		blacklist,
		append(append([]string{}, l.genes...), genes...),
	)
	for b := range l.blacklist {
		merged.blacklist[b] = struct{}{}
	}
	return merged
}

// Blacklisted reports whether token is a known false-positive form.
func (l *Lexicon) Blacklisted(token string) bool {
	t := strings.ToLower(token)
	if _, ok := l.blacklist[t]; ok {
		return true
	}
	return histoneMark.MatchString(t)
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

func upperAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

var defaultPositive = []string{
	"mutation", "variant", "polymorphism", "substitution", "deletion",
	"insertion", "missense", "nonsense", "frameshift", "splice",
	"pathogenic", "benign", "hgvs", "coding", "exon", "intron", "genomic",
	"genetic", "allele", "genotype", "phenotype", "snp", "indel", "cnv",
}

var defaultNegative = []string{
	"protocol", "buffer", "reagent", "plate", "well", "tube", "sample",
	"antibody", "primer", "probe", "kit", "enzyme", "medium", "culture",
	"histone", "lysine", "acetyl", "methyl", "phospho", "ubiquitin",
}

var defaultBlacklist = []string{
	"h3k", "h2a", "h2b", "h4k", "u5f", "r5b", "e3k", "c5a",
	"f4a", "h1b", "n9d", "b1a", "s22l", "f1a", "f2d", "h2f",
	"o1a", "o3a", "d4l", "g1b", "a1l", "a3c", "l1c", "p1b",
	"e2f", "k1n", "f2c", "g2m", "p3r", "q11d", "c4a", "n2b",
	"l10a", "r494g",
}
