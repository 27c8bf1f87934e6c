// Package normalize maps raw variant notations to canonical equivalence
// keys, so two mentions of the same biological variant compare equal
// regardless of surface form. Normalization is pure and idempotent;
// amino-acid and nucleotide codes are case-insensitive on input.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/biodatageeks/genomic-publications-agent/grammar"
)

// Canonical is the equivalence key of one variant notation.
type Canonical struct {
	Family grammar.Family
	Key    string
	// RefSeq holds the transcript or reference-sequence prefix when the raw
	// notation carried one, regardless of whether the key retains it.
	RefSeq string
}

func (c Canonical) String() string { return c.Key }

// Option adjusts normalization policy.
type Option func(*config)

type config struct {
	retainPrefix bool
}

// RetainPrefix keeps the transcript prefix inside the equivalence key, so
// "NM_000546.5:c.215C>G" and "c.215C>G" compare unequal. The default strips
// the prefix and records it on Canonical.RefSeq only.
func RetainPrefix() Option {
	return func(c *config) { c.retainPrefix = true }
}

var (
	refSeqRE = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*(?:\.[0-9]+)?):`)
	dnaRE    = regexp.MustCompile(`(?i)^([cgnmo])\.(.+)$`)
	rnaRE    = regexp.MustCompile(`(?i)^r\.(.+)$`)
	protRE   = regexp.MustCompile(`(?i)^(?:p\.)?(.+)$`)
	rsRE     = regexp.MustCompile(`(?i)^rs0*([0-9]+)$`)
	chrRE    = regexp.MustCompile(`(?i)^chr(0*[0-9]{1,2}|[xy]|mt?):0*([0-9]+)(?:([acgtun]+)>([acgtun]+))?$`)
	abrRE    = regexp.MustCompile(`^(?:t|del|dup|inv|ins)\([0-9xy]{1,2}(?:;[0-9xy]{1,2})?\)\([pq][0-9]+(?:\.[0-9]+)?(?:;?[pq][0-9]+(?:\.[0-9]+)?)?\)$`)
	repRE    = regexp.MustCompile(`(?i)^([a-z][a-z0-9-]{1,9}):c\.0*([0-9]+)([acgtu]+)\[(>?)0*([0-9]+)\]$`)

	// protShapeRE requires the canonical descriptor to open with a single
	// residue (or a stop) and its position, so arbitrary words whose letters
	// all happen to be one-letter codes never canonicalize as protein.
	protShapeRE = regexp.MustCompile(`^(?:\*|[A-Z])[0-9]`)
)

// Variant canonicalizes raw within one notation family. The second return is
// false when raw does not parse under that family's sub-grammar; unparseable
// strings are unmatchable downstream, not errors.
func Variant(family grammar.Family, raw string, opts ...Option) (Canonical, bool) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Canonical{}, false
	}

	switch family {
	case grammar.FamilyDNA:
		return prefixed(family, raw, cfg, normDNA)
	case grammar.FamilyRNA:
		return prefixed(family, raw, cfg, normRNA)
	case grammar.FamilyProtein:
		return prefixed(family, raw, cfg, normProtein)
	case grammar.FamilyDBSNP:
		m := rsRE.FindStringSubmatch(raw)
		if m == nil {
			return Canonical{}, false
		}
		return Canonical{Family: family, Key: "rs" + m[1]}, true
	case grammar.FamilyChromosomal:
		return normChromosomal(raw)
	case grammar.FamilyAberration:
		return normAberration(raw)
	case grammar.FamilyRepeat:
		return normRepeat(raw)
	}
	return Canonical{}, false
}

// anyOrder is the family precedence for Any: the most self-identifying
// notations first, so a string never binds to a looser family when a
// stricter one parses it.
var anyOrder = []grammar.Family{
	grammar.FamilyDBSNP,
	grammar.FamilyDNA,
	grammar.FamilyRNA,
	grammar.FamilyChromosomal,
	grammar.FamilyRepeat,
	grammar.FamilyAberration,
	grammar.FamilyProtein,
}

// Any canonicalizes raw under the first family that parses it.
func Any(raw string, opts ...Option) (Canonical, bool) {
	for _, f := range anyOrder {
		if c, ok := Variant(f, raw, opts...); ok {
			return c, true
		}
	}
	return Canonical{}, false
}

// prefixed splits an optional reference-sequence prefix off raw, delegates
// the remainder to norm, and applies the prefix policy to the key.
func prefixed(family grammar.Family, raw string, cfg config, norm func(string) (string, bool)) (Canonical, bool) {
	var refSeq string
	if m := refSeqRE.FindStringSubmatch(raw); m != nil {
		refSeq = strings.ToUpper(m[1])
		raw = raw[len(m[0]):]
	}
	key, ok := norm(raw)
	if !ok {
		return Canonical{}, false
	}
	c := Canonical{Family: family, Key: key, RefSeq: refSeq}
	if cfg.retainPrefix && refSeq != "" {
		c.Key = refSeq + ":" + key
	}
	return c, true
}

func normDNA(raw string) (string, bool) {
	m := dnaRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	desc, ok := canonDescriptor(m[2], nucUpper)
	if !ok {
		return "", false
	}
	return strings.ToLower(m[1]) + "." + desc, true
}

func normRNA(raw string) (string, bool) {
	m := rnaRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	desc, ok := canonDescriptor(m[1], nucLower)
	if !ok {
		return "", false
	}
	return "r." + desc, true
}

func normProtein(raw string) (string, bool) {
	m := protRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	desc, ok := canonDescriptor(m[1], aaOne)
	if !ok || !protShapeRE.MatchString(desc) {
		return "", false
	}
	return "p." + desc, true
}

func normChromosomal(raw string) (Canonical, bool) {
	m := chrRE.FindStringSubmatch(raw)
	if m == nil {
		return Canonical{}, false
	}
	chrom := strings.ToUpper(strings.TrimLeft(m[1], "0"))
	if chrom == "" {
		return Canonical{}, false
	}
	if n, err := strconv.Atoi(chrom); err == nil && (n < 1 || n > 22) {
		return Canonical{}, false
	}
	key := "chr" + chrom + ":" + m[2]
	if m[3] != "" {
		key += strings.ToUpper(m[3]) + ">" + strings.ToUpper(m[4])
	}
	return Canonical{Family: grammar.FamilyChromosomal, Key: key}, true
}

func normAberration(raw string) (Canonical, bool) {
	s := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	if !abrRE.MatchString(s) {
		return Canonical{}, false
	}
	return Canonical{Family: grammar.FamilyAberration, Key: s}, true
}

func normRepeat(raw string) (Canonical, bool) {
	m := repRE.FindStringSubmatch(raw)
	if m == nil {
		return Canonical{}, false
	}
	key := fmt.Sprintf("%s:c.%s%s[%s%s]",
		strings.ToUpper(m[1]), m[2], strings.ToUpper(m[3]), m[4], m[5])
	return Canonical{Family: grammar.FamilyRepeat, Key: key}, true
}

// letterCase selects how a descriptor's non-keyword letter runs canonicalize.
type letterCase int

const (
	nucUpper letterCase = iota // DNA nucleotides, uppercase
	nucLower                   // RNA nucleotides, lowercase
	aaOne                      // amino acids, one-letter uppercase
)

// descSymbols are the punctuation bytes a position descriptor may carry.
// UTR (*N) and intronic (+N, -N) positions keep their markers, so the
// position kinds stay distinct after canonicalization.
const descSymbols = ">_+-*.=()"

// canonDescriptor rewrites the part of a notation after its type prefix:
// numeric runs lose leading zeros, keyword runs lowercase, residue runs take
// the family's canonical case.
func canonDescriptor(s string, lc letterCase) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			b.WriteString(canonNumber(s[i:j]))
			i = j
		case isLetter(c):
			j := i
			for j < len(s) && isLetter(s[j]) {
				j++
			}
			run, ok := canonLetterRun(s[i:j], lc)
			if !ok {
				return "", false
			}
			b.WriteString(run)
			i = j
		case strings.IndexByte(descSymbols, c) >= 0:
			b.WriteByte(c)
			i++
		default:
			return "", false
		}
	}
	return b.String(), true
}

func canonNumber(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// editKeywords are tried longest-first so "delins" never splits into
// "del"+"ins".
var editKeywords = []string{"delins", "del", "dup", "inv", "ins", "fs", "ext"}

// canonLetterRun canonicalizes one contiguous letter run, splitting out
// embedded edit keywords ("Glyfs", "delinsAla").
func canonLetterRun(run string, lc letterCase) (string, bool) {
	var b strings.Builder
	for run != "" {
		lower := strings.ToLower(run)
		idx, kw := len(run), ""
		for _, k := range editKeywords {
			if i := strings.Index(lower, k); i >= 0 && (i < idx || (i == idx && len(k) > len(kw))) {
				idx, kw = i, k
			}
		}
		if idx > 0 {
			seg, ok := canonResidues(run[:idx], lc)
			if !ok {
				return "", false
			}
			b.WriteString(seg)
		}
		b.WriteString(kw)
		run = run[idx+len(kw):]
	}
	return b.String(), true
}

func canonResidues(s string, lc letterCase) (string, bool) {
	switch lc {
	case aaOne:
		return aaRunToOne(s)
	case nucLower:
		s = strings.ToLower(s)
		if strings.Trim(s, "acgtun") != "" {
			return "", false
		}
		return s, true
	default:
		s = strings.ToUpper(s)
		if strings.Trim(s, "ACGTUN") != "" {
			return "", false
		}
		return s, true
	}
}
