package rume

// identityProc copies its input to its output each sample. Used across
// the test files in this package to build small fixture chains without
// depending on internal/dsp.
type identityProc struct {
	in, out float32
}

func (p *identityProc) Prepare(AudioConfig) {}
func (p *identityProc) Process()            { p.out = p.in }

var identityIn = NewInputToken[identityProc]("in", func(p *identityProc, v float32) { p.in = v })
var identityOut = NewOutputToken[identityProc]("out", func(p *identityProc) float32 { return p.out })

// fanoutProc exposes three outputs derived from one input, all set in
// the same Process call.
type fanoutProc struct {
	in           float32
	out1, out2, out3 float32
}

func (p *fanoutProc) Prepare(AudioConfig) {}
func (p *fanoutProc) Process() {
	p.out1 = p.in
	p.out2 = p.in * 2
	p.out3 = p.in * 3
}

var fanoutIn = NewInputToken[fanoutProc]("in", func(p *fanoutProc, v float32) { p.in = v })
var fanoutOut1 = NewOutputToken[fanoutProc]("out1", func(p *fanoutProc) float32 { return p.out1 })
var fanoutOut2 = NewOutputToken[fanoutProc]("out2", func(p *fanoutProc) float32 { return p.out2 })
var fanoutOut3 = NewOutputToken[fanoutProc]("out3", func(p *fanoutProc) float32 { return p.out3 })

// prepareCountingProc records how many times Prepare was called.
type prepareCountingProc struct {
	prepareCalls int
}

func (p *prepareCountingProc) Prepare(AudioConfig) { p.prepareCalls++ }
func (p *prepareCountingProc) Process()            {}
