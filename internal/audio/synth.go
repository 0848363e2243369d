package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave defines oscillator wave shapes
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// tone is one enveloped note. Slide moves the pitch linearly to freq+Slide
// over the note.
type tone struct {
	freq    float64
	slide   float64
	dur     time.Duration
	wave    Wave
	gain    float64
	attack  time.Duration
	release time.Duration
}

// oscillator renders one tone sample by sample.
type oscillator struct {
	t        tone
	rate     beep.SampleRate
	phase    float64
	pos      int
	total    int
	attack   int
	release  int
	noiseRng *rand.Rand
}

func newOscillator(t tone, rate beep.SampleRate, rng *rand.Rand) *oscillator {
	return &oscillator{
		t:        t,
		rate:     rate,
		total:    rate.N(t.dur),
		attack:   rate.N(t.attack),
		release:  rate.N(t.release),
		noiseRng: rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}
		progress := float64(o.pos) / float64(o.total)
		freq := o.t.freq + o.t.slide*progress

		var val float64
		switch o.t.wave {
		case Sine:
			val = math.Sin(2 * math.Pi * o.phase)
		case Square:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case Saw:
			val = 2 * (o.phase - 0.5)
		case Noise:
			val = o.noiseRng.Float64()*2 - 1
		}
		val *= o.t.gain * o.envelope()

		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

// envelope is a linear attack and release around a flat sustain.
func (o *oscillator) envelope() float64 {
	if o.attack > 0 && o.pos < o.attack {
		return float64(o.pos) / float64(o.attack)
	}
	if left := o.total - o.pos; o.release > 0 && left < o.release {
		return float64(left) / float64(o.release)
	}
	return 1
}

func (o *oscillator) Err() error { return nil }

// phrase renders a tone sequence. A looping phrase starts over when it runs
// out, which is how music tracks keep playing.
type phrase struct {
	tones []tone
	rate  beep.SampleRate
	rng   *rand.Rand
	loop  bool

	idx   int
	cur   *oscillator
	empty int
}

func (p *phrase) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if p.cur == nil {
			if p.idx >= len(p.tones) {
				if !p.loop || len(p.tones) == 0 {
					return n, n > 0
				}
				p.idx = 0
			}
			p.cur = newOscillator(p.tones[p.idx], p.rate, p.rng)
			p.idx++
		}
		m, more := p.cur.Stream(samples[n:])
		n += m
		if m == 0 {
			p.empty++
			if p.empty > len(p.tones) {
				return n, n > 0
			}
		} else {
			p.empty = 0
		}
		if !more || m == 0 {
			p.cur = nil
		}
	}
	return n, true
}

func (p *phrase) Err() error { return nil }

// withVolume scales s by a linear gain; zero mutes it.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
