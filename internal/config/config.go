// Package config loads run configuration for the extraction and benchmark
// tools from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	variants "github.com/biodatageeks/genomic-publications-agent"
	"github.com/biodatageeks/genomic-publications-agent/eval"
)

// Recognizer kinds selectable from configuration.
const (
	KindPattern = "pattern"
	KindModel   = "model"
)

// Config is the YAML run configuration.
type Config struct {
	Recognizer Recognizer `yaml:"recognizer"`
	Lexicon    Lexicon    `yaml:"lexicon"`
	Thresholds Thresholds `yaml:"thresholds"`
}

// Recognizer selects and parameterizes the mention extractor.
type Recognizer struct {
	Kind          string  `yaml:"kind"`
	ModelPath     string  `yaml:"model_path"`
	TokenizerPath string  `yaml:"tokenizer_path"`
	MinConfidence float64 `yaml:"min_confidence"`
	ContextWindow int     `yaml:"context_window"`
	PoolSize      int     `yaml:"pool_size"`
	MaxSeqLen     int     `yaml:"max_seq_len"`
}

// Lexicon extends the built-in context keyword and blacklist lists.
type Lexicon struct {
	Positive  []string `yaml:"positive"`
	Negative  []string `yaml:"negative"`
	Blacklist []string `yaml:"blacklist"`
	Genes     []string `yaml:"genes"`
}

// Thresholds configures the evaluation sweep.
type Thresholds struct {
	Values     []float64 `yaml:"values"`
	Unfiltered *bool     `yaml:"unfiltered"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Recognizer: Recognizer{Kind: KindPattern},
	}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Recognizer.Kind {
	case KindPattern:
	case KindModel:
		if c.Recognizer.ModelPath == "" {
			return fmt.Errorf("recognizer kind %q requires model_path", KindModel)
		}
		if c.Recognizer.TokenizerPath == "" {
			return fmt.Errorf("recognizer kind %q requires tokenizer_path", KindModel)
		}
	default:
		return fmt.Errorf("unknown recognizer kind %q", c.Recognizer.Kind)
	}
	if c.Recognizer.MinConfidence < 0 || c.Recognizer.MinConfidence > 1 {
		return fmt.Errorf("min_confidence %v outside [0, 1]", c.Recognizer.MinConfidence)
	}
	for _, v := range c.Thresholds.Values {
		if v < 0 {
			return fmt.Errorf("negative threshold %v", v)
		}
	}
	return nil
}

// BuildLexicon merges the configured extensions onto the built-in lexicon.
func (c Config) BuildLexicon() *variants.Lexicon {
	lex := variants.DefaultLexicon()
	l := c.Lexicon
	if len(l.Positive)+len(l.Negative)+len(l.Blacklist)+len(l.Genes) == 0 {
		return lex
	}
	return lex.Extend(l.Positive, l.Negative, l.Blacklist, l.Genes)
}

// Options converts the recognizer settings into library options.
func (c Config) Options() []variants.Option {
	opts := []variants.Option{variants.WithLexicon(c.BuildLexicon())}
	r := c.Recognizer
	if r.MinConfidence > 0 {
		opts = append(opts, variants.WithMinConfidence(r.MinConfidence))
	}
	if r.ContextWindow > 0 {
		opts = append(opts, variants.WithContextWindow(r.ContextWindow))
	}
	if r.PoolSize > 0 {
		opts = append(opts, variants.WithPoolSize(r.PoolSize))
	}
	if r.MaxSeqLen > 0 {
		opts = append(opts, variants.WithMaxSeqLen(r.MaxSeqLen))
	}
	return opts
}

// BuildRecognizer constructs the configured recognizer. The caller owns the
// returned closer, which is a no-op for the pattern recognizer.
func (c Config) BuildRecognizer() (variants.Recognizer, func() error, error) {
	switch c.Recognizer.Kind {
	case KindModel:
		m, err := variants.NewModelRecognizer(
			c.Recognizer.ModelPath,
			c.Recognizer.TokenizerPath,
			c.Options()...,
		)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	default:
		r := variants.NewPatternRecognizer(c.Options()...)
		return r, func() error { return nil }, nil
	}
}

// ThresholdList resolves the configured sweep, defaulting to 0 through 1 in
// steps of 0.1 plus the unfiltered baseline.
func (c Config) ThresholdList() []eval.Threshold {
	unfiltered := true
	if c.Thresholds.Unfiltered != nil {
		unfiltered = *c.Thresholds.Unfiltered
	}

	var out []eval.Threshold
	if len(c.Thresholds.Values) == 0 {
		out = eval.SweepValues(0, 1, 0.1)
	} else {
		for _, v := range c.Thresholds.Values {
			out = append(out, eval.Threshold{Value: v})
		}
	}
	if unfiltered {
		out = append(out, eval.UnfilteredThreshold())
	}
	return out
}
