package rume

import "github.com/nicochatzi/rume/internal/lfq"

// Default capacities for the queues backing stream endpoints. Input
// queues are small: the control thread pushes parameter changes, which
// are low-frequency relative to the audio thread's consumption rate.
// Output queues are larger to absorb control-thread scheduling jitter
// when draining telemetry or recording taps.
const (
	DefaultInputStreamCapacity  = 256
	DefaultOutputStreamCapacity = 2048
)

// Stream is the float32 ring buffer type shared by every stream
// endpoint. The control thread and the audio thread each only ever use
// one side of it (enqueue from control, dequeue from audio for input
// streams; the reverse for output streams).
type Stream = lfq.SPSC[float32]

// NewInputStream creates the queue backing an InputEndpoint.
func NewInputStream() *Stream {
	return lfq.NewSPSC[float32](DefaultInputStreamCapacity)
}

// NewOutputStream creates the queue backing an OutputEndpoint.
func NewOutputStream() *Stream {
	return lfq.NewSPSC[float32](DefaultOutputStreamCapacity)
}

// OutputEndpoint is a Processor with a single input port: every value
// written to it is pushed onto its stream for the control thread to
// drain. If the stream is full the value is dropped — an output
// endpoint never blocks the audio thread waiting for the control thread
// to catch up.
type OutputEndpoint struct {
	stream *Stream
}

// NewOutputEndpoint wraps stream as a Processor that can be wired into a
// Chain as a sink.
func NewOutputEndpoint(stream *Stream) *OutputEndpoint {
	return &OutputEndpoint{stream: stream}
}

func (e *OutputEndpoint) Prepare(AudioConfig) {}
func (e *OutputEndpoint) Process()            {}

// OutputEndpointInput is the single input port of an OutputEndpoint. The
// enqueue happens in the setter itself, not in Process, so the value
// reaches the stream in the same sample it is transferred in.
var OutputEndpointInput = NewInputToken[OutputEndpoint]("input", func(p *OutputEndpoint, value float32) {
	_ = p.stream.Enqueue(&value)
})

// InputEndpointKind selects what an InputEndpoint does when its stream
// has no new value for a sample.
type InputEndpointKind int

const (
	// InputEndpointFollow holds the last value (after optional smoothing).
	InputEndpointFollow InputEndpointKind = iota
	// InputEndpointTrigger resets to 0 the sample after a value was exposed,
	// absent a new enqueue.
	InputEndpointTrigger
)

type rangedData struct {
	lo, hi float32
}

func (r *rangedData) clamp(value float32) float32 {
	switch {
	case value > r.hi:
		return r.hi
	case value < r.lo:
		return r.lo
	default:
		return value
	}
}

// valueSmoother ramps a value toward a target over a fixed number of
// steps. Retargeting mid-ramp recomputes the increment from the
// currently-exposed value, not from the old target.
type valueSmoother struct {
	target    float32
	increment float32
	steps     uint32
	step      uint32
}

func newValueSmoother(steps uint32) *valueSmoother {
	return &valueSmoother{steps: steps}
}

func (s *valueSmoother) set(current, target float32) {
	s.target = target
	s.increment = (target - current) / float32(s.steps)
	s.step = 0
}

func (s *valueSmoother) process(value *float32) {
	if s.step < s.steps {
		*value += s.increment
		s.step++
	} else {
		*value = s.target
	}
}

// InputEndpoint is a Processor with a single output port, sourced from
// its stream. Each sample it either dequeues a new value (applying any
// range clamp and smoothing) or, absent a new value, holds/ramps/resets
// according to its kind.
type InputEndpoint struct {
	stream *Stream
	value  float32
	rang   *rangedData
	smooth *valueSmoother
	kind   InputEndpointKind
}

func (e *InputEndpoint) Prepare(AudioConfig) {
	e.setValue(e.value)
}

func (e *InputEndpoint) Process() {
	if value, err := e.stream.Dequeue(); err == nil {
		e.setValue(value)
	} else {
		e.processHeldValue()
	}
}

func (e *InputEndpoint) setValue(value float32) {
	newValue := value
	if e.rang != nil {
		newValue = e.rang.clamp(newValue)
	}
	if e.smooth != nil {
		e.smooth.set(e.value, newValue)
		e.smooth.process(&e.value)
	} else {
		e.value = newValue
	}
}

func (e *InputEndpoint) processHeldValue() {
	switch e.kind {
	case InputEndpointTrigger:
		e.value = 0
	case InputEndpointFollow:
		if e.smooth != nil {
			e.smooth.process(&e.value)
		}
	}
}

// InputEndpointOutput is the single output port of an InputEndpoint.
var InputEndpointOutput = NewOutputToken[InputEndpoint]("output", func(p *InputEndpoint) float32 {
	return p.value
})

// InputEndpointBuilder configures an InputEndpoint before it is wired
// into a chain.
type InputEndpointBuilder struct {
	inner *InputEndpoint
}

// NewInputEndpoint starts building an InputEndpoint backed by stream,
// defaulting to Follow with no range and no smoothing.
func NewInputEndpoint(stream *Stream) *InputEndpointBuilder {
	return &InputEndpointBuilder{inner: &InputEndpoint{stream: stream, kind: InputEndpointFollow}}
}

// Init sets the value exposed before any stream value has arrived.
func (b *InputEndpointBuilder) Init(value float32) *InputEndpointBuilder {
	b.inner.value = value
	return b
}

// Kind selects Follow or Trigger behavior.
func (b *InputEndpointBuilder) Kind(kind InputEndpointKind) *InputEndpointBuilder {
	b.inner.kind = kind
	return b
}

// Range clamps incoming values to [lo, hi].
func (b *InputEndpointBuilder) Range(lo, hi float32) *InputEndpointBuilder {
	b.inner.rang = &rangedData{lo: lo, hi: hi}
	return b
}

// Smooth ramps toward each new value linearly over steps samples.
func (b *InputEndpointBuilder) Smooth(steps uint32) *InputEndpointBuilder {
	b.inner.smooth = newValueSmoother(steps)
	return b
}

// Build returns the configured InputEndpoint.
func (b *InputEndpointBuilder) Build() *InputEndpoint {
	return b.inner
}
