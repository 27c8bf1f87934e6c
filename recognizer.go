package variants

import (
	"context"
	"iter"
	"log/slog"
	"sort"
	"strings"

	"github.com/biodatageeks/genomic-publications-agent/grammar"
)

// Recognizer produces variant mentions from publication text. Implementations
// must return mentions ordered by start offset and must never synthesize a
// mention that is not present in the text.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]Mention, error)
}

// PatternRecognizer locates variant mentions with the grammar layer and the
// lexicon-driven context validation. It holds no mutable state and is safe
// for concurrent use.
type PatternRecognizer struct {
	cfg config
}

var _ Recognizer = (*PatternRecognizer)(nil)

// NewPatternRecognizer builds a pattern-based recognizer.
func NewPatternRecognizer(opts ...Option) *PatternRecognizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PatternRecognizer{cfg: cfg}
}

// Recognize scans text and returns all surviving mentions ordered by start
// offset. It never fails on well-formed text; dropped candidates are logged
// at Debug.
func (r *PatternRecognizer) Recognize(_ context.Context, text string) ([]Mention, error) {
	mentions, drops := r.Scan(text)
	logDrops(r.cfg.logger, drops)
	return mentions, nil
}

// Scan is Recognize with drop diagnostics, for callers debugging extraction.
func (r *PatternRecognizer) Scan(text string) ([]Mention, []Drop) {
	raw := grammar.Find(text)
	cands := make([]candidate, 0, len(raw))
	for _, c := range raw {
		cands = append(cands, candidate{Candidate: c, base: c.Grammar.Baseline})
	}
	return refine(text, cands, r.cfg)
}

// Mentions returns a restartable sequence over the mentions in text, ordered
// by start offset.
func (r *PatternRecognizer) Mentions(text string) iter.Seq[Mention] {
	return func(yield func(Mention) bool) {
		ms, _ := r.Scan(text)
		for _, m := range ms {
			if !yield(m) {
				return
			}
		}
	}
}

// candidate is a grammar match plus the confidence baseline it enters
// context validation with. The pattern path uses the grammar baseline; the
// model path uses the model's span probability.
type candidate struct {
	grammar.Candidate
	base float64
}

// refine turns raw candidates into mentions: structural validation, overlap
// resolution, blacklist filtering, and context-window confidence adjustment.
func refine(text string, cands []candidate, cfg config) ([]Mention, []Drop) {
	var drops []Drop

	valid := make([]candidate, 0, len(cands))
	for _, c := range cands {
		if !c.Grammar.Valid(c.Text) {
			drops = append(drops, Drop{Text: c.Text, Start: c.Start, End: c.End, Reason: DropMalformed})
			continue
		}
		valid = append(valid, c)
	}

	chosen := resolveOverlaps(valid)

	mentions := make([]Mention, 0, len(chosen))
	for _, c := range chosen {
		if cfg.lexicon.Blacklisted(c.Text) {
			drops = append(drops, Drop{Text: c.Text, Start: c.Start, End: c.End, Reason: DropBlacklisted})
			continue
		}
		before, after := contextAround(text, c.Start, c.End, cfg.window)
		conf := adjustConfidence(c.base, before+" "+after, cfg.lexicon)
		if conf < cfg.minConfidence || conf == 0 {
			drops = append(drops, Drop{Text: c.Text, Start: c.Start, End: c.End, Reason: DropLowConfidence})
			continue
		}
		mentions = append(mentions, Mention{
			Text:       c.Text,
			Family:     c.Grammar.Family,
			Start:      c.Start,
			End:        c.End,
			Confidence: conf,
			Gene:       nearestGene(before, after, cfg.lexicon),
			Pattern:    c.Grammar.Name,
		})
	}
	return mentions, drops
}

// resolveOverlaps keeps at most one candidate per overlapping region:
// longest match wins, equal lengths fall to the more specific grammar, and
// remaining ties resolve by start offset so the result is deterministic.
func resolveOverlaps(cands []candidate) []candidate {
	ranked := make([]candidate, len(cands))
	copy(ranked, cands)
	sort.SliceStable(ranked, func(i, j int) bool {
		li, lj := ranked[i].End-ranked[i].Start, ranked[j].End-ranked[j].Start
		if li != lj {
			return li > lj
		}
		si, sj := ranked[i].EffectiveSpecificity(), ranked[j].EffectiveSpecificity()
		if si != sj {
			return si > sj
		}
		return ranked[i].Start < ranked[j].Start
	})

	var chosen []candidate
	for _, c := range ranked {
		overlaps := false
		for _, k := range chosen {
			if c.Start < k.End && k.Start < c.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			chosen = append(chosen, c)
		}
	}
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].Start < chosen[j].Start })
	return chosen
}

func contextAround(text string, start, end, window int) (before, after string) {
	lo := start - window
	if lo < 0 {
		lo = 0
	}
	hi := end + window
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:start], text[end:hi]
}

// adjustConfidence applies keyword evidence from the surrounding text: each
// distinct positive keyword adds 0.1, each distinct negative keyword
// subtracts 0.2, and the result is clamped to [0,1].
func adjustConfidence(base float64, window string, lex *Lexicon) float64 {
	w := strings.ToLower(window)
	conf := base
	for _, kw := range lex.positive {
		if strings.Contains(w, kw) {
			conf += 0.1
		}
	}
	for _, kw := range lex.negative {
		if strings.Contains(w, kw) {
			conf -= 0.2
		}
	}
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}

// nearestGene returns the gene symbol closest to the match, preferring the
// preceding context. Returns "" when the lexicon carries no gene symbols or
// none appears in the window.
func nearestGene(before, after string, lex *Lexicon) string {
	ub := strings.ToUpper(before)
	ua := strings.ToUpper(after)
	best := ""
	bestDist := -1
	for _, g := range lex.genes {
		if g == "" {
			continue
		}
		if idx := lastWordIndex(ub, g); idx >= 0 {
			dist := len(ub) - (idx + len(g))
			if bestDist < 0 || dist < bestDist {
				best, bestDist = g, dist
			}
		}
	}
	if best != "" {
		return best
	}
	for _, g := range lex.genes {
		if g == "" {
			continue
		}
		if idx := firstWordIndex(ua, g); idx >= 0 {
			if bestDist < 0 || idx < bestDist {
				best, bestDist = g, idx
			}
		}
	}
	return best
}

func lastWordIndex(s, word string) int {
	for at := len(s); at > 0; {
		idx := strings.LastIndex(s[:at], word)
		if idx < 0 {
			return -1
		}
		if wordBounded(s, idx, len(word)) {
			return idx
		}
		at = idx
	}
	return -1
}

func firstWordIndex(s, word string) int {
	for at := 0; at <= len(s)-len(word); {
		idx := strings.Index(s[at:], word)
		if idx < 0 {
			return -1
		}
		idx += at
		if wordBounded(s, idx, len(word)) {
			return idx
		}
		at = idx + 1
	}
	return -1
}

func wordBounded(s string, idx, n int) bool {
	if idx > 0 && isWordByte(s[idx-1]) {
		return false
	}
	if end := idx + n; end < len(s) && isWordByte(s[end]) {
		return false
	}
	return true
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func logDrops(logger *slog.Logger, drops []Drop) {
	for _, d := range drops {
		logger.Debug("candidate dropped",
			"text", d.Text,
			"start", d.Start,
			"end", d.End,
			"reason", string(d.Reason),
		)
	}
}
