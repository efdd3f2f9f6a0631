package dsp

import (
	"math"

	"github.com/nicochatzi/rume"
)

const sineTableSize = 256

var sineTable = buildSineTable()

func buildSineTable() [sineTableSize]float32 {
	var table [sineTableSize]float32
	for i := range table {
		x := float32(i) / float32(sineTableSize)
		table[i] = float32(math.Sin(float64(x) * 2 * math.Pi))
	}
	return table
}

// Sine is a wavetable oscillator: frequency and amplitude are inputs,
// sample is the output. The phasor's increment is recomputed every
// sample from the current frequency input, so a frequency of 0 never
// advances the phase.
type Sine struct {
	Frequency float32
	Amplitude float32

	sample       float32
	phasor       Phasor
	samplePeriod float32
}

// NewSine returns a Sine ready to be Prepared.
func NewSine() *Sine {
	return &Sine{phasor: Phasor{max: 1.0}}
}

func (s *Sine) Prepare(cfg rume.AudioConfig) {
	s.samplePeriod = 1.0 / float32(cfg.SampleRate)
}

func (s *Sine) Process() {
	s.phasor.SetIncrement(s.Frequency * s.samplePeriod)

	phase := s.phasor.Get()
	idx := int(phase*float32(sineTableSize)) % sineTableSize
	if idx < 0 {
		idx += sineTableSize
	}

	s.sample = sineTable[idx] * s.Amplitude
	s.phasor.Advance()
}

// SineFrequency is Sine's frequency input port, in Hz.
var SineFrequency = rume.NewInputToken[Sine]("frequency", func(p *Sine, v float32) { p.Frequency = v })

// SineAmplitude is Sine's amplitude input port.
var SineAmplitude = rume.NewInputToken[Sine]("amplitude", func(p *Sine, v float32) { p.Amplitude = v })

// SineSample is Sine's audio-rate output port.
var SineSample = rume.NewOutputToken[Sine]("sample", func(p *Sine) float32 { return p.sample })
