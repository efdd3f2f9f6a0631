// SPDX-License-Identifier: MIT
package dsp

import (
	"math"

	"github.com/nicochatzi/rume"
)

// Gate passes its input through unchanged once its branchless-computed
// amplitude exceeds Threshold, and outputs silence otherwise.
type Gate struct {
	Threshold float32

	in, out float32
}

// NewGate builds a Gate with the given threshold, in the range
// [0.0, 1.0] where 0 always passes and 1 never does.
func NewGate(threshold float32) *Gate {
	return &Gate{Threshold: threshold}
}

func (g *Gate) Prepare(rume.AudioConfig) {}

// Process clears the sign bit of the input to get its amplitude without
// branching, then gates the output in one comparison.
func (g *Gate) Process() {
	bits := math.Float32bits(g.in) &^ (1 << 31)
	amplitude := math.Float32frombits(bits)

	if amplitude > g.Threshold {
		g.out = g.in
	} else {
		g.out = 0
	}
}

var (
	GateInput  = rume.NewInputToken[Gate]("in", func(p *Gate, value float32) { p.in = value })
	GateOutput = rume.NewOutputToken[Gate]("out", func(p *Gate) float32 { return p.out })
)
