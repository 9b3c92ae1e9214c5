// Package sound synthesizes the short feedback tones as WAV bytes, served
// once and triggered client-side. Stateless; every render is deterministic.
package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
)

// Cue names one feedback event.
type Cue string

const (
	CueSubmit  Cue = "submit"
	CueReceive Cue = "receive"
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
)

// ErrUnknownCue indicates a cue name outside the fixed set.
var ErrUnknownCue = errors.New("unknown sound cue")

// Cues lists every renderable cue.
func Cues() []Cue {
	return []Cue{CueSubmit, CueReceive, CueWin, CueLose}
}

const (
	sampleRate = 44100
	masterGain = 0.15
)

// Render synthesizes the cue as a 16-bit mono WAV.
func Render(cue Cue) ([]byte, error) {
	var samples []float64
	switch cue {
	case CueSubmit:
		// Data transmission blip: rising sine.
		samples = tone(0.15, func(t, dur float64) (freq, gain float64) {
			return ramp(600, 1200, t/dur), 0.08 * decay(t, dur)
		})
	case CueReceive:
		// Soft ambient swell for an incoming message.
		samples = tone(0.5, func(t, dur float64) (freq, gain float64) {
			return ramp(220, 330, t/dur), 0.08 * swell(t, dur)
		})
	case CueWin:
		// Ethereal A major chord, notes staggered.
		samples = chord(3.4, []float64{440, 554.37, 659.25, 880}, 0.1)
	case CueLose:
		// Dark dissonant drone: two detuned falling voices.
		a := tone(3.0, func(t, dur float64) (freq, gain float64) {
			return ramp(80, 40, t/dur), 0.05 * decay(t, dur)
		})
		b := tone(3.0, func(t, dur float64) (freq, gain float64) {
			return ramp(85, 38, t/dur), 0.05 * decay(t, dur)
		})
		samples = mix(a, b)
	default:
		return nil, ErrUnknownCue
	}
	return encodeWAV(samples), nil
}

func ramp(from, to, progress float64) float64 {
	return from + (to-from)*progress
}

func decay(t, dur float64) float64 {
	return math.Exp(-5 * t / dur)
}

func swell(t, dur float64) float64 {
	attack := dur * 0.2
	if t < attack {
		return t / attack
	}
	return 1 - (t-attack)/(dur-attack)
}

// tone renders dur seconds of a single oscillator with per-sample frequency
// and gain. Frequency is integrated so ramps stay phase-continuous.
func tone(dur float64, shape func(t, dur float64) (freq, gain float64)) []float64 {
	n := int(dur * sampleRate)
	samples := make([]float64, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		freq, gain := shape(t, dur)
		phase += 2 * math.Pi * freq / sampleRate
		samples[i] = gain * math.Sin(phase)
	}
	return samples
}

func chord(dur float64, freqs []float64, stagger float64) []float64 {
	n := int(dur * sampleRate)
	samples := make([]float64, n)
	for v, freq := range freqs {
		start := float64(v) * stagger
		for i := range samples {
			t := float64(i)/sampleRate - start
			if t < 0 || t > 3.0 {
				continue
			}
			gain := 0.08 * swellThenDecay(t)
			samples[i] += gain * math.Sin(2*math.Pi*freq*t)
		}
	}
	return samples
}

func swellThenDecay(t float64) float64 {
	if t < 0.2 {
		return t / 0.2
	}
	return math.Exp(-2 * (t - 0.2))
}

func mix(voices ...[]float64) []float64 {
	longest := 0
	for _, v := range voices {
		if len(v) > longest {
			longest = len(v)
		}
	}
	out := make([]float64, longest)
	for _, v := range voices {
		for i, s := range v {
			out[i] += s
		}
	}
	return out
}

// encodeWAV packs samples as 16-bit little-endian mono PCM.
func encodeWAV(samples []float64) []byte {
	var pcm bytes.Buffer
	for _, s := range samples {
		s *= masterGain / 0.15
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(&pcm, binary.LittleEndian, int16(s*math.MaxInt16))
	}

	var buf bytes.Buffer
	dataLen := uint32(pcm.Len())
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm.Bytes())
	return buf.Bytes()
}
