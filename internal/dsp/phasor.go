// Package dsp is a small worked library of concrete processors — enough
// to drive the example graph and exercise the engine's tests. The graph
// engine itself stays processor-agnostic; everything here is ordinary
// domain content built on top of it.
package dsp

import "math"

// Phasor accumulates a normalized phase in [0, max) at a configurable
// increment per step, wrapping on overflow.
type Phasor struct {
	increment   float32
	accumulator float32
	max         float32
}

// NewPhasor returns a Phasor with the given per-step increment and wrap
// point.
func NewPhasor(increment, max float32) *Phasor {
	return &Phasor{increment: increment, max: max}
}

// Reset returns the accumulator to zero.
func (p *Phasor) Reset() {
	p.accumulator = 0
}

// SetIncrement changes the per-step phase increment.
func (p *Phasor) SetIncrement(increment float32) {
	p.increment = increment
}

// Get returns the current phase without advancing it.
func (p *Phasor) Get() float32 {
	return p.accumulator
}

// Shift advances the phase by an arbitrary amount, wrapping at max.
func (p *Phasor) Shift(shift float32) {
	p.accumulator += shift
	if p.max != 0 {
		m := float32(math.Mod(float64(p.accumulator), float64(p.max)))
		if m < 0 {
			m += p.max
		}
		p.accumulator = m
	}
}

// Advance steps the phase by the configured increment and returns the
// new value.
func (p *Phasor) Advance() float32 {
	p.Shift(p.increment)
	return p.Get()
}
