package variants

import (
	"log/slog"
	"runtime"
)

// Option configures a recognizer.
type Option func(*config)

type config struct {
	lexicon       *Lexicon
	window        int
	minConfidence float64
	logger        *slog.Logger
	poolSize      int
	maxSeqLen     int
}

func defaultConfig() config {
	return config{
		lexicon:       DefaultLexicon(),
		window:        50,
		minConfidence: 0.5,
		logger:        slog.Default(),
		poolSize:      runtime.NumCPU(),
		maxSeqLen:     512,
	}
}

// WithLexicon sets the keyword/blacklist vocabulary used for context
// validation (default: DefaultLexicon).
func WithLexicon(l *Lexicon) Option {
	return func(c *config) {
		if l != nil {
			c.lexicon = l
		}
	}
}

// WithContextWindow sets how many bytes around a match are inspected for
// context keywords (default: 50).
func WithContextWindow(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.window = n
		}
	}
}

// WithMinConfidence sets the confidence below which candidates are dropped
// (default: 0.5). Zero keeps everything that survives the blacklist.
func WithMinConfidence(min float64) Option {
	return func(c *config) {
		if min >= 0 && min <= 1 {
			c.minConfidence = min
		}
	}
}

// WithLogger sets the logger used for drop diagnostics (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPoolSize sets the ONNX session pool size for the model-backed
// recognizer (default: runtime.NumCPU()). Ignored by the pattern recognizer.
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithMaxSeqLen sets the model's maximum sequence length in tokens
// (default: 512). Longer inputs are processed in overlapping chunks.
func WithMaxSeqLen(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxSeqLen = n
		}
	}
}
