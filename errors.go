package variants

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
// Pattern-based recognition never fails on well-formed text; these concern
// the model-backed recognizer's resources only.
var (
	// ErrModelNotFound indicates the ONNX model file does not exist.
	ErrModelNotFound = errors.New("variants: model file not found")

	// ErrInvalidModel indicates the model file exists but is malformed.
	ErrInvalidModel = errors.New("variants: invalid model format")

	// ErrTokenizerFailed indicates tokenizer loading or encoding failed.
	ErrTokenizerFailed = errors.New("variants: tokenizer failed")
)
