// Package audio turns the simulation's symbolic cue keys into synthesized
// sound. Nothing is loaded from disk: every cue is a short tone recipe.
package audio

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

type Config struct {
	SampleRate  int     `yaml:"sample_rate" json:"sample_rate"`
	SFXVolume   float64 `yaml:"sfx_volume" json:"sfx_volume"`
	MusicVolume float64 `yaml:"music_volume" json:"music_volume"`
	Muted       bool    `yaml:"muted" json:"muted"`
}

func DefaultConfig() Config {
	return Config{SampleRate: 44100, SFXVolume: 0.6, MusicVolume: 0.25}
}

// musicPrefix marks keys that replace the current track instead of mixing
// over it.
const musicPrefix = "bgm_"

// Bank mixes every playing cue into one stream. It is a beep.Streamer, so
// it can be handed to the speaker or pulled directly.
type Bank struct {
	mu      sync.Mutex
	cfg     Config
	rate    beep.SampleRate
	rng     *rand.Rand
	mixer   *beep.Mixer
	music   *beep.Ctrl
	track   string
	started bool
}

func NewBank(cfg Config) *Bank {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Bank{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		mixer: &beep.Mixer{},
	}
}

// Start opens the system speaker and plays the bank through it.
func (b *Bank) Start() error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	if err := speaker.Init(b.rate, b.rate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b)

	b.mu.Lock()
	b.started = true
	b.mu.Unlock()
	return nil
}

// Known reports whether key has a recipe.
func Known(key string) bool {
	_, ok := recipes[key]
	return ok
}

// Play starts the cue for key. Unknown keys are ignored. A music key
// replaces the current track; playing the current track again is a no-op.
func (b *Bank) Play(key string) {
	r, ok := recipes[key]
	if !ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if strings.HasPrefix(key, musicPrefix) {
		if key == b.track {
			return
		}
		b.stopMusic()
		b.track = key
		if b.cfg.Muted {
			return
		}
		p := &phrase{tones: r.tones, rate: b.rate, rng: b.rng, loop: r.loop}
		b.music = &beep.Ctrl{Streamer: withVolume(p, b.cfg.MusicVolume)}
		b.mixer.Add(b.music)
		return
	}

	if b.cfg.Muted {
		return
	}
	p := &phrase{tones: r.tones, rate: b.rate, rng: b.rng}
	b.mixer.Add(withVolume(p, b.cfg.SFXVolume))
}

// stopMusic detaches the current track; the mixer drops it on its next pull.
func (b *Bank) stopMusic() {
	if b.music != nil {
		b.music.Streamer = nil
		b.music = nil
	}
	b.track = ""
}

// SetMuted silences everything playing now and drops later cues.
func (b *Bank) SetMuted(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.Muted = muted
	if muted {
		b.stopMusic()
		b.mixer.Clear()
	}
}

// Track is the music key currently playing, or "".
func (b *Bank) Track() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.track
}

// Active counts streams still in the mix.
func (b *Bank) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Len()
}

func (b *Bank) Stream(samples [][2]float64) (n int, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mixer.Stream(samples)
}

func (b *Bank) Err() error { return nil }
