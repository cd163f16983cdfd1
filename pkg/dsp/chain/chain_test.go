package chain

import (
	"testing"
)

type scale struct {
	factor float32
}

func (s *scale) WorkBuffer(input, output []float32) int {
	for i := range input {
		output[i] = input[i] * s.factor
	}
	return len(input)
}

func (s *scale) PredictOutputSize(inputSize int) int {
	return inputSize
}

func TestProcessRunsBlocksInOrder(t *testing.T) {
	c := New("test")
	c.AddBlock(NewBlock("double", "Double", 8000, 8000, &scale{2}))
	c.AddBlock(NewBlock("triple", "Triple", 8000, 8000, &scale{3}))

	metrics := make(map[string]interface{})
	out, err := c.Process([]float32{1, 2}, metrics)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 2 || out[0] != 6 || out[1] != 12 {
		t.Fatalf("Process() = %v, want [6 12]", out)
	}

	for _, key := range []string{"double_duration", "triple_duration"} {
		if _, ok := metrics[key]; !ok {
			t.Errorf("missing metric %s", key)
		}
	}
}

func TestInitializeRejectsRateMismatch(t *testing.T) {
	c := New("test")
	c.AddBlock(NewBlock("a", "A", 8000, 8000, &scale{1}))
	c.AddBlock(NewBlock("b", "B", 16000, 16000, &scale{1}))

	if err := c.Initialize(); err == nil {
		t.Fatal("expected rate mismatch error")
	}
}

func TestEmptyChainErrors(t *testing.T) {
	c := New("test")
	if _, err := c.Process([]float32{1}, nil); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

type tapRecorder struct {
	got []float32
}

func (t *tapRecorder) AppendFloat(f []float32) {
	t.got = append(t.got, f...)
}

func TestTapsObserveBlockOutput(t *testing.T) {
	var tap tapRecorder
	c := New("test")
	c.AddBlock(NewBlock("double", "Double", 8000, 8000, &scale{2}, WithTap(&tap)))

	if _, err := c.Process([]float32{1, 2}, nil); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(tap.got) != 2 || tap.got[0] != 2 || tap.got[1] != 4 {
		t.Fatalf("tap saw %v, want [2 4]", tap.got)
	}
}
