package rume

// Builder accumulates processors and connections and freezes them into a
// Chain. Both Processor and Connection are idempotent: registering the
// same processor instance, or the same output/input pairing, twice has
// no additional effect. Order of registration matters only as a
// deterministic tie-break inside topoSort.
type Builder struct {
	procs     []Processor
	procIndex map[uintptr]int
	conns     []Connection
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		procIndex: make(map[uintptr]int),
	}
}

// Processor registers a processor with the chain. Calling it again with
// the same instance is a no-op.
func (b *Builder) Processor(p Processor) *Builder {
	ptr := processorPtr(p)
	if _, exists := b.procIndex[ptr]; exists {
		return b
	}
	b.procIndex[ptr] = len(b.procs)
	b.procs = append(b.procs, p)
	return b
}

// Connection wires an output port to an input port, registering both
// owning processors if they are not already known to the builder.
// Re-adding an identical connection is a no-op.
func (b *Builder) Connection(output Output, input Input) *Builder {
	b.Processor(output.processor())
	b.Processor(input.processor())

	next := NewConnection(output, input)
	for _, existing := range b.conns {
		if existing.equal(next) {
			return b
		}
	}
	b.conns = append(b.conns, next)
	return b
}

// Build sorts the accumulated graph and freezes it into a Chain. It
// returns ErrEmptyChain if no processors were registered and
// ErrCycleDetected if the connections describe a cycle.
func (b *Builder) Build() (*Chain, error) {
	if len(b.procs) == 0 {
		return nil, ErrEmptyChain
	}

	sorted, err := topoSort(b.procs, b.conns)
	if err != nil {
		return nil, err
	}

	connected := make([]*connectedProcessor, len(sorted))
	for i, p := range sorted {
		ptr := processorPtr(p)
		var outs []Connection
		for _, c := range b.conns {
			if processorPtr(c.Output.processor()) == ptr {
				outs = append(outs, c)
			}
		}
		connected[i] = &connectedProcessor{proc: p, connections: outs}
	}

	return &Chain{processors: connected}, nil
}
