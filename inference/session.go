// Package inference provides ONNX Runtime integration for the
// token-classification models behind the model-backed variant recognizer.
package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ErrPoolClosed indicates the session pool has been closed.
var ErrPoolClosed = errors.New("inference: pool closed")

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// Session wraps an ONNX Runtime session for token-classification inference.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string) (*Session, error) {
	// Check file exists
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	// Input/output names follow the HuggingFace token-classification export
	// convention.
	inputNames := []string{"input_ids", "attention_mask"}
	outputNames := []string{"logits"}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on tokenized input and returns one logit vector per
// token, with one entry per classification label.
func (s *Session) Infer(ctx context.Context, inputIDs, attentionMask []int64) ([][]float32, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("session is closed")
	}

	batchSize := int64(1)
	seqLen := int64(len(inputIDs))

	inputIDsTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, seqLen),
		inputIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating input_ids tensor: %w", err)
	}
	defer func() { _ = inputIDsTensor.Destroy() }()

	attentionMaskTensor, err := ort.NewTensor(
		ort.NewShape(batchSize, seqLen),
		attentionMask,
	)
	if err != nil {
		return nil, fmt.Errorf("creating attention_mask tensor: %w", err)
	}
	defer func() { _ = attentionMaskTensor.Destroy() }()

	inputs := []ort.Value{inputIDsTensor, attentionMaskTensor}

	// Output entries left nil are allocated by Run
	outputs := []ort.Value{nil}

	err = s.session.Run(inputs, outputs)
	if err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	// Output shape is [1, seqLen, labels]; split the flat buffer per token.
	outputData := logitsTensor.GetData()
	if seqLen == 0 || int64(len(outputData))%seqLen != 0 {
		return nil, fmt.Errorf("unexpected output size %d for %d tokens", len(outputData), seqLen)
	}
	labels := int(int64(len(outputData)) / seqLen)

	logits := make([][]float32, seqLen)
	for i := range logits {
		row := make([]float32, labels)
		copy(row, outputData[i*labels:(i+1)*labels])
		logits[i] = row
	}

	return logits, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
