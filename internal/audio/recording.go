// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nicochatzi/rume"
)

// Recorder drains a graph output endpoint's stream on the control
// thread and encodes what it finds to a 32-bit PCM WAV file. It never
// touches Chain.Render; a caller must drive rendering separately,
// whether from a live Engine or from RenderOffline below.
type Recorder struct {
	sampleRate int
	channels   int

	isRecording int32
	outputFile  *os.File
	wavEncoder  *wav.Encoder
	sampleBuf   *audio.IntBuffer
}

// NewRecorder builds a Recorder for the given sample rate and channel
// count. Recording starts once StartRecording is called.
func NewRecorder(sampleRate, channels int) *Recorder {
	return &Recorder{sampleRate: sampleRate, channels: channels}
}

// StartRecording opens filename and prepares the WAV encoder. Returns an
// error if a recording is already in progress.
func (r *Recorder) StartRecording(filename string) error {
	if atomic.LoadInt32(&r.isRecording) == 1 {
		return fmt.Errorf("already recording")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	r.outputFile = file

	r.wavEncoder = wav.NewEncoder(file, r.sampleRate, 32, r.channels, 1)
	r.sampleBuf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: r.channels,
			SampleRate:  r.sampleRate,
		},
		Data: make([]int, 0, 4096),
	}

	atomic.StoreInt32(&r.isRecording, 1)
	return nil
}

// StopRecording flushes and closes the WAV file. Safe to call when not
// recording.
func (r *Recorder) StopRecording() error {
	if atomic.LoadInt32(&r.isRecording) == 0 {
		return nil
	}
	atomic.StoreInt32(&r.isRecording, 0)

	if r.wavEncoder != nil {
		if err := r.wavEncoder.Close(); err != nil {
			return err
		}
		r.wavEncoder = nil
	}
	if r.outputFile != nil {
		if err := r.outputFile.Close(); err != nil {
			return err
		}
		r.outputFile = nil
	}
	return nil
}

// Drain dequeues up to maxSamples values from stream, converts them to
// 32-bit PCM, and writes them to the open WAV file. It returns the
// number of samples written and stops as soon as the stream reports
// ErrWouldBlock (nothing more is ready yet).
func (r *Recorder) Drain(stream *rume.Stream, maxSamples int) (int, error) {
	if atomic.LoadInt32(&r.isRecording) == 0 || r.wavEncoder == nil {
		return 0, nil
	}

	r.sampleBuf.Data = r.sampleBuf.Data[:0]
	for i := 0; i < maxSamples; i++ {
		sample, err := stream.Dequeue()
		if err != nil {
			break
		}
		r.sampleBuf.Data = append(r.sampleBuf.Data, pcm32(sample))
	}

	if len(r.sampleBuf.Data) == 0 {
		return 0, nil
	}

	if err := r.wavEncoder.Write(r.sampleBuf); err != nil {
		return 0, err
	}
	return len(r.sampleBuf.Data), nil
}

// WriteSamples encodes samples directly to the open WAV file, for
// callers that already own the dequeue loop (e.g. a control-thread tap
// shared with other consumers of the same stream). A no-op if no
// recording is in progress.
func (r *Recorder) WriteSamples(samples []float32) error {
	if atomic.LoadInt32(&r.isRecording) == 0 || r.wavEncoder == nil || len(samples) == 0 {
		return nil
	}

	r.sampleBuf.Data = r.sampleBuf.Data[:0]
	for _, s := range samples {
		r.sampleBuf.Data = append(r.sampleBuf.Data, pcm32(s))
	}
	return r.wavEncoder.Write(r.sampleBuf)
}

// Close stops any in-progress recording.
func (r *Recorder) Close() error {
	return r.StopRecording()
}

// pcm32 converts a float32 sample in [-1.0, 1.0] to a 32-bit signed PCM
// integer, clamping to avoid wraparound on an out-of-range input.
func pcm32(sample float32) int {
	v := float64(sample) * float64(math.MaxInt32)
	if v > math.MaxInt32 {
		v = math.MaxInt32
	}
	if v < math.MinInt32 {
		v = math.MinInt32
	}
	return int(v)
}

// RenderOffline renders chain for numSamples in blocks of up to 256,
// draining out after every block and encoding the result straight to filename without any live
// device involved — the worked non-realtime backend.
func RenderOffline(chain *rume.Chain, out *rume.Stream, numSamples int, sampleRate, channels int, filename string) error {
	r := NewRecorder(sampleRate, channels)
	if err := r.StartRecording(filename); err != nil {
		return err
	}

	const blockSize = 256
	for rendered := 0; rendered < numSamples; rendered += blockSize {
		n := blockSize
		if remaining := numSamples - rendered; remaining < n {
			n = remaining
		}
		chain.Render(n)
		if _, err := r.Drain(out, n); err != nil {
			_ = r.StopRecording()
			return err
		}
	}

	return r.StopRecording()
}
