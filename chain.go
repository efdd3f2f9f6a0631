package rume

import "github.com/nicochatzi/rume/internal/log"

// Chain is an immutable, topologically-sorted signal chain, produced by
// Builder.Build. Prepare must be called once before the first Render.
// Render is the sole hot path: it never allocates, never blocks, and
// never takes a lock, so it is safe to call from a real-time audio
// callback.
type Chain struct {
	processors []*connectedProcessor
	prepared   bool
}

// Prepare hands cfg to every processor exactly once, in sorted order.
func (c *Chain) Prepare(cfg AudioConfig) {
	log.Debugf("rume: preparing chain with %d processors (sample rate %d, buffer %d, channels %d)",
		len(c.processors), cfg.SampleRate, cfg.BufferSize, cfg.NumChannels)
	for _, cp := range c.processors {
		cp.proc.Prepare(cfg)
	}
	c.prepared = true
}

// Render renders numSamples samples, one at a time: for each sample,
// every processor runs in sorted order, transferring its outputs to
// connected inputs immediately after it processes.
//
// Calling Render before Prepare is a programming error, not a runtime
// condition to recover from; it panics rather than silently rendering
// unprepared processors.
func (c *Chain) Render(numSamples int) {
	if !c.prepared {
		panic("rume: Render called before Prepare")
	}
	for i := 0; i < numSamples; i++ {
		for _, cp := range c.processors {
			cp.render()
		}
	}
}

// Len reports the number of processors in the chain.
func (c *Chain) Len() int {
	return len(c.processors)
}
