// SPDX-License-Identifier: MIT
package spectrum

import "math"

// Band defines the name and frequency range of an energy band.
type Band struct {
	Name   string
	LowHz  float64
	HighHz float64

	energy  float64
	numBins int
}

// DefaultBands returns the band layout the control-thread telemetry hub
// reports by default, spanning sub-bass through treble.
func DefaultBands(nyquist float64) []Band {
	return []Band{
		{Name: "sub", LowHz: 20, HighHz: 60},
		{Name: "bass", LowHz: 60, HighHz: 250},
		{Name: "lowMid", LowHz: 250, HighHz: 500},
		{Name: "mid", LowHz: 500, HighHz: 2000},
		{Name: "highMid", LowHz: 2000, HighHz: 4000},
		{Name: "treble", LowHz: 4000, HighHz: nyquist},
	}
}

// BandEnergy accumulates normalized energy per frequency band from an
// Analyzer's magnitude spectrum. It holds no transport of its own; a
// caller reads Values after each Update and forwards them however it
// likes.
type BandEnergy struct {
	bands []Band
}

// NewBandEnergy builds a band energy tracker over the given bands.
func NewBandEnergy(bands []Band) *BandEnergy {
	return &BandEnergy{bands: bands}
}

// Update recomputes band energies from the analyzer's current spectrum.
func (be *BandEnergy) Update(a *Analyzer) {
	magnitudes := a.Magnitudes()

	for i := range be.bands {
		be.bands[i].energy = 0
		be.bands[i].numBins = 0
	}

	for bin, mag := range magnitudes {
		freq := a.FrequencyOfBin(bin)
		for i := range be.bands {
			b := &be.bands[i]
			if freq >= b.LowHz && freq < b.HighHz {
				b.energy += mag * mag
				b.numBins++
				break
			}
		}
	}
}

// Values returns the current normalized, clamped energy per band, keyed
// by band name.
func (be *BandEnergy) Values() map[string]float64 {
	out := make(map[string]float64, len(be.bands))
	for _, b := range be.bands {
		avg := 0.0
		if b.numBins > 0 {
			avg = b.energy / float64(b.numBins)
		}
		out[b.Name] = math.Min(1.0, math.Sqrt(avg)*50.0)
	}
	return out
}
