package rume

import (
	"errors"
	"testing"
)

func TestIdempotentProcessorInsertion(t *testing.T) {
	p := &identityProc{}
	b := NewBuilder()
	b.Processor(p)
	b.Processor(p)
	b.Processor(p)

	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if chain.Len() != 1 {
		t.Fatalf("expected 1 processor after repeated insertion, got %d", chain.Len())
	}
}

func TestIdempotentConnectionInsertion(t *testing.T) {
	a := &identityProc{}
	c := &identityProc{}

	b := NewBuilder()
	conn := func() { b.Connection(BindOutput(a, identityOut), BindInput(c, identityIn)) }
	conn()
	conn()
	conn()

	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if chain.Len() != 2 {
		t.Fatalf("expected 2 processors, got %d", chain.Len())
	}
	if len(chain.processors[0].connections) != 1 {
		t.Fatalf("expected connection registered once, got %d", len(chain.processors[0].connections))
	}
}

func TestEmptyChainRejected(t *testing.T) {
	_, err := NewBuilder().Build()
	if !errors.Is(err, ErrEmptyChain) {
		t.Fatalf("expected ErrEmptyChain, got %v", err)
	}
}

// TestScenarioA_IdentityPassthrough enqueues [1.0, 2.0, 3.0] on an input
// endpoint feeding an output endpoint directly, and checks the output
// stream sees them in order, one per rendered sample.
func TestScenarioA_IdentityPassthrough(t *testing.T) {
	inStream := NewInputStream()
	outStream := NewOutputStream()

	in := NewInputEndpoint(inStream).Build()
	out := NewOutputEndpoint(outStream)

	b := NewBuilder()
	b.Connection(BindOutput(in, InputEndpointOutput), BindInput(out, OutputEndpointInput))
	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	chain.Prepare(DefaultAudioConfig())

	values := []float32{1.0, 2.0, 3.0}
	for _, v := range values {
		v := v
		if err := inStream.Enqueue(&v); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	chain.Render(len(values))

	for _, want := range values {
		got, err := outStream.Dequeue()
		if err != nil {
			t.Fatalf("dequeue failed: %v", err)
		}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

// TestScenarioC_ReverseOrderInsertionIsSorted adds processors in the
// order B, C, A with connections A->B->C, then checks A's execution
// precedes B precedes C and a value set on A's input reaches C's output
// in one render.
func TestScenarioC_ReverseOrderInsertionIsSorted(t *testing.T) {
	a := &identityProc{}
	bProc := &identityProc{}
	c := &identityProc{}

	builder := NewBuilder()
	builder.Processor(bProc)
	builder.Processor(c)
	builder.Processor(a)
	builder.Connection(BindOutput(a, identityOut), BindInput(bProc, identityIn))
	builder.Connection(BindOutput(bProc, identityOut), BindInput(c, identityIn))

	chain, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	order := make(map[uintptr]int, 3)
	for i, cp := range chain.processors {
		order[processorPtr(cp.proc)] = i
	}
	if order[processorPtr(a)] >= order[processorPtr(bProc)] || order[processorPtr(bProc)] >= order[processorPtr(c)] {
		t.Fatalf("expected execution order A, B, C; got positions a=%d b=%d c=%d",
			order[processorPtr(a)], order[processorPtr(bProc)], order[processorPtr(c)])
	}

	chain.Prepare(DefaultAudioConfig())
	a.in = 1.0
	chain.Render(1)

	if c.out != 1.0 {
		t.Fatalf("expected C's output to be 1.0 after one render, got %v", c.out)
	}
}

// TestScenarioD_MultiFanout checks that all three downstream consumers
// of a multi-output processor observe its outputs within the same
// sample they were generated.
func TestScenarioD_MultiFanout(t *testing.T) {
	m := &fanoutProc{}
	d1 := &identityProc{}
	d2 := &identityProc{}
	d3 := &identityProc{}

	b := NewBuilder()
	b.Connection(BindOutput(m, fanoutOut1), BindInput(d1, identityIn))
	b.Connection(BindOutput(m, fanoutOut2), BindInput(d2, identityIn))
	b.Connection(BindOutput(m, fanoutOut3), BindInput(d3, identityIn))

	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	chain.Prepare(DefaultAudioConfig())

	m.in = 2.0
	chain.Render(1)

	if d1.out != 2.0 || d2.out != 4.0 || d3.out != 6.0 {
		t.Fatalf("fanout mismatch: d1=%v d2=%v d3=%v", d1.out, d2.out, d3.out)
	}
}

// TestScenarioE_CycleRejection builds A->B->C->A and expects build to
// fail with ErrCycleDetected.
func TestScenarioE_CycleRejection(t *testing.T) {
	a := &identityProc{}
	bProc := &identityProc{}
	c := &identityProc{}

	builder := NewBuilder()
	builder.Connection(BindOutput(a, identityOut), BindInput(bProc, identityIn))
	builder.Connection(BindOutput(bProc, identityOut), BindInput(c, identityIn))
	builder.Connection(BindOutput(c, identityOut), BindInput(a, identityIn))

	_, err := builder.Build()
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}
}

func TestPrepareObservedOnce(t *testing.T) {
	p := &prepareCountingProc{}
	b := NewBuilder()
	b.Processor(p)
	chain, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	chain.Prepare(DefaultAudioConfig())
	chain.Render(10)

	if p.prepareCalls != 1 {
		t.Fatalf("expected exactly 1 Prepare call, got %d", p.prepareCalls)
	}
}
