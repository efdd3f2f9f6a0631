// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicochatzi/rume"
	"github.com/nicochatzi/rume/internal/audio"
	"github.com/nicochatzi/rume/internal/config"
	"github.com/nicochatzi/rume/internal/dsp"
	"github.com/nicochatzi/rume/internal/log"
	"github.com/nicochatzi/rume/internal/spectrum"
	"github.com/nicochatzi/rume/internal/telemetry"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the signal chain against a live input device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return runEngine(cfg)
		},
	}
}

// runEngine drives the program through its three phases: startup (cold
// path) wires the graph and opens the device, the concurrent phase (hot
// path) runs the audio callback alongside any control-thread taps, and
// shutdown (cold path) tears everything down on an interrupt.
func runEngine(cfg *config.Config) error {
	if cfg.Debug {
		log.SetLevel(log.LevelDebug)
	}

	if err := audio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer func() {
		if err := audio.Terminate(); err != nil {
			log.Errorf("failed to terminate PortAudio cleanly: %v", err)
		}
	}()

	graphInput := rume.NewInputStream()
	graphOutput := rume.NewOutputStream()

	win, err := spectrum.ParseWindowFunc(cfg.Audio.FFTWindow)
	if err != nil {
		return fmt.Errorf("invalid fft_window: %w", err)
	}

	chain, err := buildExampleChain(graphInput, graphOutput)
	if err != nil {
		return fmt.Errorf("failed to build signal chain: %w", err)
	}
	chain.Prepare(cfg.Graph.ToAudioConfig())

	deviceCfg := audio.DeviceConfig{
		DeviceID:        cfg.Audio.InputDevice,
		Channels:        cfg.Audio.InputChannels,
		SampleRate:      cfg.Audio.SampleRate,
		FramesPerBuffer: cfg.Audio.FramesPerBuffer,
		LowLatency:      cfg.Audio.LowLatency,
	}

	engine, err := audio.NewEngine(deviceCfg, chain, graphInput)
	if err != nil {
		return fmt.Errorf("failed to create audio engine: %w", err)
	}
	defer engine.Close()

	var hub *telemetry.Hub
	if cfg.Transport.Enabled {
		hub = telemetry.NewHub(cfg.Transport.ListenAddr, cfg.Transport.MinInterval)
		hub.Start()
		defer hub.Close()
		log.Infof("telemetry hub listening on %s", cfg.Transport.ListenAddr)
	}

	var recorder *audio.Recorder
	if cfg.Recording.Enabled {
		recorder = audio.NewRecorder(int(cfg.Audio.SampleRate), cfg.Audio.InputChannels)
		filename := recordingFilename(cfg.Recording.OutputDir)
		if err := os.MkdirAll(cfg.Recording.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create recording output dir: %w", err)
		}
		if err := recorder.StartRecording(filename); err != nil {
			return fmt.Errorf("failed to start recording: %w", err)
		}
		defer recorder.StopRecording()
		log.Infof("recording to %s", filename)
	}

	if err := engine.StartInputStream(); err != nil {
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	log.Infof("audio stream started, waiting for interrupt signal (Ctrl+C)...")

	stopTap := make(chan struct{})
	if hub != nil || recorder != nil {
		go runControlThreadTap(graphOutput, hub, recorder, win, stopTap)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	close(stopTap)

	log.Infof("shutdown signal received, stopping engine...")
	return nil
}

// buildExampleChain wires a worked signal chain: a tone generator gated
// past a threshold, scaled by a gain stage whose factor is itself driven
// by a control-rate input endpoint, landing on an output endpoint that
// feeds the control-thread taps below.
func buildExampleChain(in, out *rume.Stream) (*rume.Chain, error) {
	volumeCtrl := rume.NewInputEndpoint(in).Init(1).Range(0, 1).Smooth(64).Build()

	tone := dsp.NewSine()
	tone.Frequency = 220
	tone.Amplitude = 1

	gate := dsp.NewGate(0.05)
	volume := dsp.NewGain(1)
	sink := rume.NewOutputEndpoint(out)

	builder := rume.NewBuilder()
	builder.Connection(rume.BindOutput(tone, dsp.SineSample), rume.BindInput(gate, dsp.GateInput))
	builder.Connection(rume.BindOutput(gate, dsp.GateOutput), rume.BindInput(volume, dsp.GainInput))
	builder.Connection(rume.BindOutput(volumeCtrl, rume.InputEndpointOutput), rume.BindInput(volume, dsp.GainFactorInput))
	builder.Connection(rume.BindOutput(volume, dsp.GainOutput), rume.BindInput(sink, rume.OutputEndpointInput))

	return builder.Build()
}

// runControlThreadTap drains the graph's output stream on the control
// thread, feeding whichever of the telemetry hub, spectrum analyzer, and
// recorder are active. It never runs on the audio thread.
func runControlThreadTap(out *rume.Stream, hub *telemetry.Hub, recorder *audio.Recorder, win spectrum.WindowFunc, stop <-chan struct{}) {
	const analysisSize = 1024
	analyzer := spectrum.NewAnalyzer(analysisSize, 48000, win)
	bands := spectrum.NewBandEnergy(spectrum.DefaultBands(48000 / 2))
	beats := spectrum.NewBeatDetector(0.15, 1.5)

	buf := make([]float32, 0, analysisSize)
	recBuf := make([]float32, 0, 256)
	var rendered uint64

	for {
		select {
		case <-stop:
			if recorder != nil && len(recBuf) > 0 {
				_ = recorder.WriteSamples(recBuf)
			}
			return
		default:
		}

		value, err := out.Dequeue()
		if err != nil {
			time.Sleep(time.Millisecond)
			continue
		}
		rendered++
		buf = append(buf, value)
		if len(buf) > analysisSize {
			buf = buf[len(buf)-analysisSize:]
		}

		if recorder != nil {
			recBuf = append(recBuf, value)
			if len(recBuf) >= cap(recBuf) {
				_ = recorder.WriteSamples(recBuf)
				recBuf = recBuf[:0]
			}
		}

		if hub != nil && analyzer.Feed(buf) {
			bands.Update(analyzer)
			hub.Publish(telemetry.Snapshot{
				RenderedSamples: rendered,
				Magnitudes:      analyzer.Magnitudes(),
				Bands:           bands.Values(),
				Beat:            beats.Detect(buf),
			})
		}
	}
}

func recordingFilename(dir string) string {
	return dir + "/recording.wav"
}
