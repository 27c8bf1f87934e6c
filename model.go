package variants

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/biodatageeks/genomic-publications-agent/grammar"
	"github.com/biodatageeks/genomic-publications-agent/inference"
)

// chunkOverlap is the number of tokens shared between consecutive chunks
// when an input exceeds the model's sequence length, so span detection works
// across chunk boundaries.
const chunkOverlap = 64

// spanThreshold is the minimum per-token mention probability for a token to
// join a candidate span.
const spanThreshold = 0.5

// ModelRecognizer produces mentions with a token-classification ONNX model.
// Detected spans are re-validated through the grammar layer and the same
// lexicon filtering as the pattern recognizer, so both implementations share
// one contract. Safe for concurrent use; Close releases the session pool.
type ModelRecognizer struct {
	tk   *tokenizer.Tokenizer
	pool *inference.Pool
	cfg  config
}

var _ Recognizer = (*ModelRecognizer)(nil)

// NewModelRecognizer loads a token-classification ONNX model and its
// HuggingFace tokenizer.json.
func NewModelRecognizer(modelPath, tokenizerPath string, opts ...Option) (*ModelRecognizer, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
		}
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	tk, err := pretrained.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}

	return &ModelRecognizer{tk: tk, pool: pool, cfg: cfg}, nil
}

// Recognize runs the model over text, maps labeled token runs back to text
// spans, and keeps the spans the grammar layer can identify as variant
// notation.
func (m *ModelRecognizer) Recognize(ctx context.Context, text string) ([]Mention, error) {
	if text == "" {
		return nil, nil
	}

	en, err := m.tk.EncodeSingle(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}
	if len(en.Ids) == 0 {
		return nil, nil
	}

	probs, err := m.mentionProbs(ctx, en.Ids)
	if err != nil {
		return nil, err
	}

	var cands []candidate
	var drops []Drop
	for _, s := range tokenSpans(en.Offsets, probs) {
		raw := strings.TrimSpace(text[s.start:s.end])
		if raw == "" {
			continue
		}
		start := s.start + strings.Index(text[s.start:s.end], raw)
		g, ok := grammar.Identify(raw)
		if !ok {
			drops = append(drops, Drop{Text: raw, Start: start, End: start + len(raw), Reason: DropUnrecognized})
			continue
		}
		cands = append(cands, candidate{
			Candidate: grammar.Candidate{
				Text:    raw,
				Start:   start,
				End:     start + len(raw),
				Grammar: g,
			},
			base: s.score,
		})
	}

	mentions, refineDrops := refine(text, cands, m.cfg)
	logDrops(m.cfg.logger, append(drops, refineDrops...))
	return mentions, nil
}

// Close releases the ONNX session pool.
func (m *ModelRecognizer) Close() error {
	if m.pool != nil {
		return m.pool.Close()
	}
	return nil
}

// mentionProbs returns, per token, the probability that the token is inside
// a variant mention: the complement of the outside-label softmax mass.
func (m *ModelRecognizer) mentionProbs(ctx context.Context, ids []int) ([]float64, error) {
	probs := make([]float64, len(ids))
	counts := make([]int, len(ids))

	stride := m.cfg.maxSeqLen - chunkOverlap
	if stride <= 0 {
		stride = m.cfg.maxSeqLen
	}
	for start := 0; start < len(ids); start += stride {
		end := start + m.cfg.maxSeqLen
		if end > len(ids) {
			end = len(ids)
		}

		inputIDs := make([]int64, end-start)
		attentionMask := make([]int64, end-start)
		for i, id := range ids[start:end] {
			inputIDs[i] = int64(id)
			attentionMask[i] = 1
		}

		logits, err := m.pool.Infer(ctx, inputIDs, attentionMask)
		if err != nil {
			return nil, err
		}
		for i, tokenLogits := range logits {
			probs[start+i] += 1 - softmaxOutside(tokenLogits)
			counts[start+i]++
		}

		if end >= len(ids) {
			break
		}
	}

	// Average in overlap regions.
	for i := range probs {
		if counts[i] > 1 {
			probs[i] /= float64(counts[i])
		}
	}
	return probs, nil
}

// softmaxOutside returns the softmax probability of label 0, the
// outside-mention class in BIO tagging.
func softmaxOutside(logits []float32) float64 {
	if len(logits) == 0 {
		return 1
	}
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	var sum float64
	for _, l := range logits {
		sum += math.Exp(float64(l - max))
	}
	return math.Exp(float64(logits[0]-max)) / sum
}

type span struct {
	start, end int
	score      float64
}

// tokenSpans groups consecutive above-threshold tokens into text spans,
// skipping special tokens (zero-width offsets). Each span's score is the
// mean token probability.
func tokenSpans(offsets [][]int, probs []float64) []span {
	var spans []span
	open := false
	var cur span
	var sum float64
	var n int

	flush := func() {
		if open && n > 0 {
			cur.score = sum / float64(n)
			spans = append(spans, cur)
		}
		open = false
		sum, n = 0, 0
	}

	for i, off := range offsets {
		if i >= len(probs) || len(off) < 2 || off[0] >= off[1] {
			flush()
			continue
		}
		if probs[i] < spanThreshold {
			flush()
			continue
		}
		if !open {
			cur = span{start: off[0], end: off[1]}
			open = true
		} else {
			cur.end = off[1]
		}
		sum += probs[i]
		n++
	}
	flush()
	return spans
}
