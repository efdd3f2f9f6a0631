package dsp

import "github.com/nicochatzi/rume"

// Gain scales its input by Factor.
type Gain struct {
	Factor float32

	in  float32
	out float32
}

// NewGain returns a Gain with the given scale factor.
func NewGain(factor float32) *Gain {
	return &Gain{Factor: factor}
}

func (g *Gain) Prepare(rume.AudioConfig) {}

func (g *Gain) Process() {
	g.out = g.in * g.Factor
}

// GainInput is Gain's signal input port.
var GainInput = rume.NewInputToken[Gain]("in", func(p *Gain, v float32) { p.in = v })

// GainFactorInput lets the scale factor itself be driven by a connection,
// so it can be modulated at control-thread rate via an InputEndpoint
// rather than fixed at construction time.
var GainFactorInput = rume.NewInputToken[Gain]("factor", func(p *Gain, v float32) { p.Factor = v })

// GainOutput is Gain's scaled output port.
var GainOutput = rume.NewOutputToken[Gain]("out", func(p *Gain) float32 { return p.out })
