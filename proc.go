// Package rume implements a real-time audio signal-processing graph: a
// directed graph of unit processors connected by typed scalar ports,
// topologically sorted once at build time and rendered one sample at a
// time with no intra-sample feedback.
package rume

// AudioConfig describes the fixed operating parameters handed to every
// processor exactly once, before rendering begins.
type AudioConfig struct {
	SampleRate  int
	BufferSize  int
	NumChannels int
}

// DefaultAudioConfig returns the configuration used when a caller has no
// specific device to match: 48kHz, 64-frame buffers, stereo.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:  48000,
		BufferSize:  64,
		NumChannels: 2,
	}
}

// Processor is the unit of work in a signal chain. Prepare is called
// exactly once, before the first Process. Process renders a single
// sample and must not allocate, block, or acquire a lock — it runs on
// the real-time audio thread once the chain is built.
type Processor interface {
	Prepare(cfg AudioConfig)
	Process()
}
