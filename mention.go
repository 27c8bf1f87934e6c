package variants

import "github.com/biodatageeks/genomic-publications-agent/grammar"

// Family identifies a variant notation family.
type Family = grammar.Family

// Notation families re-exported for callers that never touch the grammar
// layer directly.
const (
	FamilyDNA         = grammar.FamilyDNA
	FamilyRNA         = grammar.FamilyRNA
	FamilyProtein     = grammar.FamilyProtein
	FamilyDBSNP       = grammar.FamilyDBSNP
	FamilyChromosomal = grammar.FamilyChromosomal
	FamilyAberration  = grammar.FamilyAberration
	FamilyRepeat      = grammar.FamilyRepeat
)

// Mention is one variant mention located in a source text. Values are
// immutable once produced by a recognizer; Start and End are byte offsets
// into the scanned text with End exclusive.
type Mention struct {
	Text       string
	Family     Family
	Start      int
	End        int
	Confidence float64
	Gene       string // nearest known gene symbol in context, or ""
	Pattern    string // name of the grammar that produced the match
}

// DropReason explains why a candidate never became a Mention.
type DropReason string

const (
	DropMalformed     DropReason = "malformed"
	DropBlacklisted   DropReason = "blacklisted"
	DropLowConfidence DropReason = "low-confidence"
	DropUnrecognized  DropReason = "unrecognized"
)

// Drop records one discarded candidate for diagnostics. Drops are never
// surfaced as errors; recognizers log them at Debug and expose them through
// Scan for callers that want the detail.
type Drop struct {
	Text   string
	Start  int
	End    int
	Reason DropReason
}
