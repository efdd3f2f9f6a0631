package dsp

import (
	"testing"

	"github.com/nicochatzi/rume"
)

// TestScenarioB_SineAtZeroHz builds freq=const 0, amp=const 0.5 feeding
// a Sine into an output endpoint, prepares at 48kHz, and checks every
// one of 10 rendered samples is exactly 0.0 because the phase never
// advances.
func TestScenarioB_SineAtZeroHz(t *testing.T) {
	freq := NewConst(0)
	amp := NewConst(0.5)
	sine := NewSine()
	outStream := rume.NewOutputStream()
	out := rume.NewOutputEndpoint(outStream)

	b := rume.NewBuilder()
	b.Connection(rume.BindOutput(freq, ConstOutput), rume.BindInput(sine, SineFrequency))
	b.Connection(rume.BindOutput(amp, ConstOutput), rume.BindInput(sine, SineAmplitude))
	b.Connection(rume.BindOutput(sine, SineSample), rume.BindInput(out, rume.OutputEndpointInput))

	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	chain.Prepare(rume.AudioConfig{SampleRate: 48000, BufferSize: 64, NumChannels: 1})
	chain.Render(10)

	for i := 0; i < 10; i++ {
		v, err := outStream.Dequeue()
		if err != nil {
			t.Fatalf("dequeue %d failed: %v", i, err)
		}
		if v != 0.0 {
			t.Errorf("sample %d: got %v, want 0.0", i, v)
		}
	}
}

func TestGainScalesInput(t *testing.T) {
	g := NewGain(2.0)
	g.Prepare(rume.AudioConfig{})
	g.in = 3.0
	g.Process()
	if g.out != 6.0 {
		t.Fatalf("got %v, want 6.0", g.out)
	}
}

func TestMixer2SumsInputs(t *testing.T) {
	m := NewMixer2()
	m.Prepare(rume.AudioConfig{})
	m.A, m.B = 1.5, 2.5
	m.Process()
	if m.out != 4.0 {
		t.Fatalf("got %v, want 4.0", m.out)
	}
}
