package audio

import (
	"math"
	"math/rand"
)

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// Instrument constructs a new Voice each time it is triggered.
type Instrument interface {
	Name() string
	NewVoice(sampleRate int) Voice
}

// DefaultKit maps sample indices 0..4 to drum voices.
var DefaultKit = []Instrument{Kick{}, Snare{}, HiHat{}, Tom{}, Clap{}}

func samplesFor(seconds float64, sampleRate int) int {
	return int(seconds * float64(sampleRate))
}

// Kick is a decaying sine with a downward pitch bend.
type Kick struct{}

func (Kick) Name() string { return "kick" }

func (Kick) NewVoice(sampleRate int) Voice {
	return &toneVoice{n: samplesFor(0.25, sampleRate), sr: float64(sampleRate), from: 150, to: 50, decay: 5}
}

// Tom is a pitched drum with a short noise attack.
type Tom struct{}

func (Tom) Name() string { return "tom" }

func (Tom) NewVoice(sampleRate int) Voice {
	return &toneVoice{n: samplesFor(0.35, sampleRate), sr: float64(sampleRate), from: 220, to: 140, decay: 4, click: 0.3}
}

type toneVoice struct {
	i, n     int
	sr       float64
	phase    float64
	from, to float64 // Hz
	decay    float64
	click    float64 // noise mixed into the first 5 ms
}

func (v *toneVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	t := float64(v.i) / float64(v.n)
	freq := v.from + (v.to-v.from)*t
	v.phase += 2 * math.Pi * freq / v.sr
	out := math.Sin(v.phase) * math.Exp(-v.decay*t)
	if v.click > 0 && float64(v.i) < v.sr*0.005 {
		out = out*(1-v.click) + (rand.Float64()*2-1)*v.click
	}
	v.i++
	return out, false
}

// Snare is white noise with an exponential decay.
type Snare struct{}

func (Snare) Name() string { return "snare" }

func (Snare) NewVoice(sampleRate int) Voice {
	return &noiseVoice{n: samplesFor(0.2, sampleRate), decay: 4, gain: 0.8}
}

// HiHat is a short bright noise burst, like a closed hi-hat.
type HiHat struct{}

func (HiHat) Name() string { return "hihat" }

func (HiHat) NewVoice(sampleRate int) Voice {
	return &noiseVoice{n: samplesFor(0.06, sampleRate), decay: 8, gain: 0.5, highpass: true}
}

// Clap is three quick noise bursts followed by a tail.
type Clap struct{}

func (Clap) Name() string { return "clap" }

func (Clap) NewVoice(sampleRate int) Voice {
	return &noiseVoice{n: samplesFor(0.2, sampleRate), decay: 6, gain: 0.7, bursts: samplesFor(0.01, sampleRate)}
}

type noiseVoice struct {
	i, n     int
	decay    float64
	gain     float64
	highpass bool
	prev     float64
	bursts   int // restart the envelope this often for the first three periods
}

func (v *noiseVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	t := float64(v.i) / float64(v.n)
	if v.bursts > 0 && v.i < 3*v.bursts {
		t = float64(v.i%v.bursts) / float64(v.n)
	}
	x := rand.Float64()*2 - 1
	out := x
	if v.highpass {
		out = (x - v.prev) / 2
		v.prev = x
	}
	v.i++
	return out * v.gain * math.Exp(-v.decay*t), false
}

type scaledVoice struct {
	v    Voice
	gain float64
}

func (s *scaledVoice) Sample() (float64, bool) {
	f, done := s.v.Sample()
	return f * s.gain, done
}
