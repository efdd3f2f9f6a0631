package rume

// Graph is struct-literal sugar over Builder, standing in for the
// external graph-declaration step spec'd as a collaborator rather than
// a core responsibility. It funnels into the same Processor/Connection/
// Build calls a Builder would make, so it changes nothing about core
// semantics, only how a chain reads at the call site.
type Graph struct {
	Nodes Nodes
	Wires []Wire
}

// Nodes is a flat list of processors to register with the chain.
type Nodes []Processor

// Wire is one output-to-input pairing, built with Connect.
type Wire struct {
	output Output
	input  Input
}

// Connect declares a wire from an output port to an input port.
func Connect(output Output, input Input) Wire {
	return Wire{output: output, input: input}
}

// Build registers every node and wire with a fresh Builder and freezes
// the result into a Chain.
func (g Graph) Build() (*Chain, error) {
	b := NewBuilder()
	for _, p := range g.Nodes {
		b.Processor(p)
	}
	for _, w := range g.Wires {
		b.Connection(w.output, w.input)
	}
	return b.Build()
}
