package dsp

import "github.com/nicochatzi/rume"

// Mixer2 sums two inputs into one output.
type Mixer2 struct {
	A, B float32
	out  float32
}

// NewMixer2 returns a zeroed Mixer2.
func NewMixer2() *Mixer2 {
	return &Mixer2{}
}

func (m *Mixer2) Prepare(rume.AudioConfig) {}

func (m *Mixer2) Process() {
	m.out = m.A + m.B
}

// Mixer2InputA is the first input port.
var Mixer2InputA = rume.NewInputToken[Mixer2]("a", func(p *Mixer2, v float32) { p.A = v })

// Mixer2InputB is the second input port.
var Mixer2InputB = rume.NewInputToken[Mixer2]("b", func(p *Mixer2, v float32) { p.B = v })

// Mixer2Output is the summed output port.
var Mixer2Output = rume.NewOutputToken[Mixer2]("out", func(p *Mixer2) float32 { return p.out })
