// SPDX-License-Identifier: MIT
/*
Package audio bridges a PortAudio input device to a rume signal chain.

Thread Safety:
- The PortAudio callback locks its OS thread for the duration of each call
- Pre-allocates conversion buffers to avoid GC in the hot path
- Pushes samples into the chain's input endpoint, then calls Chain.Render;
  nothing downstream of Render ever runs on this thread
*/
package audio

import (
	"runtime"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/nicochatzi/rume"
	"github.com/nicochatzi/rume/internal/log"
)

// DeviceConfig selects and configures the physical input device.
type DeviceConfig struct {
	DeviceID        int
	Channels        int
	SampleRate      float64
	FramesPerBuffer int
	LowLatency      bool
}

// Engine drives a built rume.Chain from a PortAudio input stream. It owns
// the one real-time audio thread in the program: the PortAudio callback.
type Engine struct {
	cfg DeviceConfig

	chain        *rume.Chain
	graphInput   *rume.Stream
	monoBuffer   []float32
	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream
}

// NewEngine resolves the configured input device and prepares an Engine
// to drive chain from it. graphInput is the stream backing the chain's
// input endpoint; the engine enqueues one normalized mono sample per
// frame onto it before each Render call.
func NewEngine(cfg DeviceConfig, chain *rume.Chain, graphInput *rume.Stream) (*Engine, error) {
	inputDevice, err := InputDevice(cfg.DeviceID)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		chain:       chain,
		graphInput:  graphInput,
		monoBuffer:  make([]float32, cfg.FramesPerBuffer),
		inputDevice: inputDevice,
	}

	if cfg.LowLatency {
		e.inputLatency = e.inputDevice.DefaultLowInputLatency
	} else {
		e.inputLatency = e.inputDevice.DefaultHighInputLatency
	}

	return e, nil
}

// StartInputStream opens and starts the PortAudio input stream. This is
// the point at which the hot path begins: PortAudio starts calling
// processInputStream from its own audio thread.
func (e *Engine) StartInputStream() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: e.cfg.Channels,
			Device:   e.inputDevice,
			Latency:  e.inputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Channels: 0,
			Device:   nil,
		},
		FramesPerBuffer: e.cfg.FramesPerBuffer,
		SampleRate:      e.cfg.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, e.processInputStream)
	if err != nil {
		return err
	}
	e.inputStream = stream

	if err := e.inputStream.Start(); err != nil {
		e.inputStream.Close()
		return err
	}

	log.Infof("audio: input stream started on %q", e.inputDevice.Name)
	return nil
}

// StopInputStream stops and closes the PortAudio input stream, if open.
func (e *Engine) StopInputStream() error {
	if e.inputStream == nil {
		return nil
	}

	if err := e.inputStream.Stop(); err != nil {
		return err
	}
	if err := e.inputStream.Close(); err != nil {
		return err
	}
	e.inputStream = nil
	return nil
}

// Close stops the input stream. It is safe to call multiple times.
func (e *Engine) Close() error {
	return e.StopInputStream()
}

// processInputStream is the real-time callback: it downmixes the
// interleaved input to mono, pushes each frame onto the graph's input
// endpoint stream, and renders the chain for the block. No allocation
// occurs past the first warm-up call.
func (e *Engine) processInputStream(in []int32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	channels := e.cfg.Channels
	if channels < 1 {
		channels = 1
	}
	for i := range e.monoBuffer {
		base := i * channels
		if base+channels > len(in) {
			break
		}
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += normalizeSample(in[base+ch])
		}
		e.monoBuffer[i] = sum / float32(channels)
	}

	for i := range e.monoBuffer {
		v := e.monoBuffer[i]
		_ = e.graphInput.Enqueue(&v)
	}

	e.chain.Render(len(e.monoBuffer))
}

// normalizeSample converts a signed 32-bit PCM sample into [-1.0, 1.0];
// after float32 rounding, 0x7FFFFFFF maps to exactly 1.0.
func normalizeSample(s int32) float32 {
	return float32(s) / float32(0x80000000)
}
