// SPDX-License-Identifier: MIT
package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nicochatzi/rume"
	"github.com/nicochatzi/rume/internal/dsp"
)

func TestRecorderStartStop(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.wav")

	r := NewRecorder(48000, 1)
	if err := r.StartRecording(filename); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}

	if err := r.StartRecording(filename); err == nil {
		t.Fatal("expected error starting a recording twice")
	}

	if err := r.StopRecording(); err != nil {
		t.Fatalf("StopRecording failed: %v", err)
	}

	if _, err := os.Stat(filename); err != nil {
		t.Fatalf("expected recording file to exist: %v", err)
	}

	// Idempotent stop.
	if err := r.StopRecording(); err != nil {
		t.Fatalf("second StopRecording failed: %v", err)
	}
}

func TestRecorderDrainWritesSamples(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "drain.wav")

	stream := rume.NewOutputStream()
	for _, v := range []float32{0.1, -0.2, 0.5} {
		v := v
		if err := stream.Enqueue(&v); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
	}

	r := NewRecorder(48000, 1)
	if err := r.StartRecording(filename); err != nil {
		t.Fatalf("StartRecording failed: %v", err)
	}

	n, err := r.Drain(stream, 10)
	if err != nil {
		t.Fatalf("Drain failed: %v", err)
	}
	if n != 3 {
		t.Errorf("got %d samples drained, want 3", n)
	}

	if err := r.StopRecording(); err != nil {
		t.Fatalf("StopRecording failed: %v", err)
	}
}

func TestRenderOfflineProducesWAVFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "offline.wav")

	out := rume.NewOutputStream()
	src := dsp.NewConst(0.25)
	sink := rume.NewOutputEndpoint(out)

	builder := rume.NewBuilder()
	builder.Connection(rume.BindOutput(src, dsp.ConstOutput), rume.BindInput(sink, rume.OutputEndpointInput))
	chain, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	chain.Prepare(rume.DefaultAudioConfig())

	if err := RenderOffline(chain, out, 512, 48000, 1, filename); err != nil {
		t.Fatalf("RenderOffline failed: %v", err)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty WAV file")
	}
}

func TestPCM32Clamps(t *testing.T) {
	tests := []struct {
		in   float32
		desc string
	}{
		{2.0, "above range"},
		{-2.0, "below range"},
		{0.5, "in range"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := pcm32(tt.in)
			if got > 0x7FFFFFFF || got < -0x80000000 {
				t.Errorf("pcm32(%v) = %d, out of int32 range", tt.in, got)
			}
		})
	}
}
