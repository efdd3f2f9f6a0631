package dsp

import "github.com/nicochatzi/rume"

// Const is a processor with a single output that always exposes the
// same value, useful for feeding fixed parameters (a frequency, an
// amplitude) into other processors.
type Const struct {
	value float32
}

// NewConst returns a Const exposing value.
func NewConst(value float32) *Const {
	return &Const{value: value}
}

func (c *Const) Prepare(rume.AudioConfig) {}
func (c *Const) Process()                 {}

// ConstOutput is Const's single output port.
var ConstOutput = rume.NewOutputToken[Const]("value", func(p *Const) float32 {
	return p.value
})
