// Package chain runs demodulated audio through an ordered list of DSP
// blocks ahead of the squelch decision.
package chain

import (
	"fmt"

	"github.com/rxgate/rxgate/pkg/util"
)

// FFWorker is a float-in, float-out DSP block.
type FFWorker interface {
	WorkBuffer([]float32, []float32) int
	PredictOutputSize(int) int
}

// Tap observes a block's output, typically for the monitor server.
type Tap interface {
	AppendFloat([]float32)
}

type Block struct {
	Name        string
	DisplayName string
	InputRate   int
	OutputRate  int

	worker       FFWorker
	outputBuffer []float32
	taps         []Tap
}

type BlockOption func(b *Block)

func WithTap(tap Tap) BlockOption {
	return func(b *Block) {
		b.taps = append(b.taps, tap)
	}
}

func NewBlock(name, displayName string, inputRate, outputRate int, worker FFWorker, opts ...BlockOption) *Block {
	ret := &Block{
		Name:        name,
		DisplayName: displayName,
		InputRate:   inputRate,
		OutputRate:  outputRate,
		worker:      worker,
	}

	for _, opt := range opts {
		opt(ret)
	}

	return ret
}

// Chain is an ordered sequence of blocks with matching sample rates.
type Chain struct {
	Name        string
	blocks      []*Block
	initialized bool
}

func New(name string) *Chain {
	return &Chain{Name: name}
}

func (c *Chain) AddBlock(b *Block) {
	c.blocks = append(c.blocks, b)
}

func (c *Chain) OutputRate() int {
	if len(c.blocks) == 0 {
		return 0
	}
	return c.blocks[len(c.blocks)-1].OutputRate
}

func (c *Chain) Initialize() error {
	if c.initialized {
		return nil
	}
	if len(c.blocks) == 0 {
		return fmt.Errorf("chain %s: must specify at least 1 block", c.Name)
	}

	for i := 1; i < len(c.blocks); i++ {
		cur, next := c.blocks[i-1], c.blocks[i]
		if cur.OutputRate != next.InputRate {
			return fmt.Errorf("chain %s: %s -> %s rate mismatch (%d %d)",
				c.Name, cur.Name, next.Name, cur.OutputRate, next.InputRate)
		}
	}

	c.initialized = true

	return nil
}

// Process pushes one input segment through every block in order. Per-block
// durations in microseconds are recorded into metrics.
func (c *Chain) Process(input []float32, metrics map[string]interface{}) ([]float32, error) {
	if !c.initialized {
		if err := c.Initialize(); err != nil {
			return nil, err
		}
	}

	for _, block := range c.blocks {
		if block.outputBuffer == nil || len(block.outputBuffer) < block.worker.PredictOutputSize(len(input))*2 {
			block.outputBuffer = make([]float32, block.worker.PredictOutputSize(len(input))*2)
		}

		var length int
		duration := util.TimeOperationMicroseconds(func() {
			length = block.worker.WorkBuffer(input, block.outputBuffer)
		})
		if metrics != nil {
			metrics[fmt.Sprintf("%s_duration", block.Name)] = duration
		}

		input = block.outputBuffer[:length]

		for _, tap := range block.taps {
			tap.AppendFloat(input)
		}
	}

	return input, nil
}
