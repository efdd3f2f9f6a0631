package rume

// connectedProcessor pairs a processor with its de-duplicated outgoing
// connections. Rendering a connectedProcessor means running the
// processor once and then transferring every outgoing connection,
// so that any processor later in sorted order already sees this
// sample's value on its inputs.
type connectedProcessor struct {
	proc        Processor
	connections []Connection
}

func (c *connectedProcessor) render() {
	c.proc.Process()
	for _, conn := range c.connections {
		conn.Transfer()
	}
}
