package rume

// Connection is an immutable pairing of one output port to one input
// port. Transfer copies the output's current scalar into the input.
// Connections compare equal by the identity of both endpoint processors
// and port names, not by value, so a Builder can de-duplicate repeated
// wiring the same way repeated Processor registration is de-duplicated.
type Connection struct {
	Output Output
	Input  Input
}

// NewConnection wires an output port to an input port.
func NewConnection(output Output, input Input) Connection {
	return Connection{Output: output, Input: input}
}

// Transfer copies the current value of the output port into the input
// port. It runs immediately after the output's owning processor renders,
// in the same sample, so a forward edge never lags by one sample.
func (c Connection) Transfer() {
	c.Input.Set(c.Output.Get())
}

func (c Connection) equal(other Connection) bool {
	return processorPtr(c.Output.processor()) == processorPtr(other.Output.processor()) &&
		c.Output.portName() == other.Output.portName() &&
		processorPtr(c.Input.processor()) == processorPtr(other.Input.processor()) &&
		c.Input.portName() == other.Input.portName()
}
