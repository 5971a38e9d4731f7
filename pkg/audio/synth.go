// Package audio turns simulation cues into sound. A Synth builds short beep
// streamers per cue, a Player mixes them onto the speaker, and a Dispatcher
// connects the two to the event bus behind a circuit breaker.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/opd-ai/go-shieldwall/pkg/event"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length tone, optionally sliding from freq to
// endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a tone generator. Pass endFreq equal to freq for a steady
// pitch.
func NewOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with a linear attack/release envelope.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if start := e.total - e.release; e.release > 0 && e.position >= start {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one layer of a cue sound.
type tone struct {
	wave     WaveType
	from, to float64
	length   time.Duration
	attack   time.Duration
	release  time.Duration
	gain     float64
	delay    time.Duration
}

var cueTones = map[event.Type][]tone{
	event.CueReflect: {
		{wave: WaveSquare, from: 520, to: 660, length: 60 * time.Millisecond, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, gain: 0.5},
	},
	event.CueBlockBreak: {
		{wave: WaveNoise, length: 90 * time.Millisecond, attack: time.Millisecond, release: 70 * time.Millisecond, gain: 0.6},
		{wave: WaveSquare, from: 330, to: 180, length: 90 * time.Millisecond, attack: time.Millisecond, release: 60 * time.Millisecond, gain: 0.3},
	},
	event.CueBlockHit: {
		{wave: WaveSquare, from: 150, to: 150, length: 40 * time.Millisecond, attack: time.Millisecond, release: 30 * time.Millisecond, gain: 0.4},
	},
	event.CueEnemyHit: {
		{wave: WaveSaw, from: 880, to: 440, length: 80 * time.Millisecond, attack: 2 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.5},
	},
	event.CueEnemyShot: {
		{wave: WaveSquare, from: 1200, to: 700, length: 50 * time.Millisecond, attack: time.Millisecond, release: 30 * time.Millisecond, gain: 0.25},
	},
	event.CueShipDamage: {
		{wave: WaveNoise, length: 200 * time.Millisecond, attack: 2 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.7},
		{wave: WaveSaw, from: 120, to: 60, length: 200 * time.Millisecond, attack: 2 * time.Millisecond, release: 150 * time.Millisecond, gain: 0.5},
	},
	event.CueBallDrop: {
		{wave: WaveSine, from: 440, to: 110, length: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.6},
	},
	event.CueWaveClear: {
		{wave: WaveSine, from: 523, to: 523, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.5},
		{wave: WaveSine, from: 659, to: 659, length: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.5, delay: 120 * time.Millisecond},
		{wave: WaveSine, from: 784, to: 784, length: 240 * time.Millisecond, attack: 5 * time.Millisecond, release: 160 * time.Millisecond, gain: 0.5, delay: 240 * time.Millisecond},
	},
	event.CueWaveClearFlawless: {
		{wave: WaveSine, from: 523, to: 523, length: 100 * time.Millisecond, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.5},
		{wave: WaveSine, from: 659, to: 659, length: 100 * time.Millisecond, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.5, delay: 100 * time.Millisecond},
		{wave: WaveSine, from: 784, to: 784, length: 100 * time.Millisecond, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, gain: 0.5, delay: 200 * time.Millisecond},
		{wave: WaveSine, from: 1047, to: 1047, length: 300 * time.Millisecond, attack: 5 * time.Millisecond, release: 200 * time.Millisecond, gain: 0.5, delay: 300 * time.Millisecond},
	},
	event.CueGameOver: {
		{wave: WaveSaw, from: 392, to: 98, length: 900 * time.Millisecond, attack: 10 * time.Millisecond, release: 600 * time.Millisecond, gain: 0.6},
	},
	event.CueStart: {
		{wave: WaveSquare, from: 262, to: 1047, length: 250 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.4},
	},
}

// Synth builds cue sounds at a fixed sample rate and master volume.
type Synth struct {
	rate   beep.SampleRate
	volume float64
}

// NewSynth creates a synthesizer.
func NewSynth(sampleRate int, volume float64) *Synth {
	return &Synth{rate: beep.SampleRate(sampleRate), volume: volume}
}

// SampleRate returns the rate every streamer is built at.
func (s *Synth) SampleRate() beep.SampleRate { return s.rate }

// Cue returns a fresh one-shot streamer for cue, or nil when the cue has no sound
// of its own (music control cues included).
func (s *Synth) Cue(cue event.Type) beep.Streamer {
	layers, ok := cueTones[cue]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(layers))
	for _, l := range layers {
		osc := NewOscillator(l.from, l.to, l.length, l.wave, s.rate)
		shaped := NewEnvelope(osc, l.length, l.attack, l.release, s.rate)
		var part beep.Streamer = newVolume(shaped, l.gain)
		if l.delay > 0 {
			part = beep.Seq(beep.Silence(s.rate.N(l.delay)), part)
		}
		parts = append(parts, part)
	}
	return newVolume(beep.Mix(parts...), s.volume)
}

// musicNotes is the bass line looped while a wave is in play.
var musicNotes = []float64{110, 110, 165, 147, 110, 110, 131, 123}

// Music returns an endless background loop.
func (s *Synth) Music() beep.Streamer {
	step := s.rate.N(180 * time.Millisecond)
	release := step / 2
	pos, phase := 0, 0.0

	loop := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			note := musicNotes[(pos/step)%len(musicNotes)]
			within := pos % step

			val := 1.0
			if phase >= 0.5 {
				val = -1
			}
			if left := step - within; left < release {
				val *= float64(left) / float64(release)
			}
			samples[i][0] = val
			samples[i][1] = val

			phase += note / float64(s.rate)
			phase -= math.Floor(phase)
			pos++
		}
		return len(samples), true
	})
	return newVolume(loop, 0.2*s.volume)
}
