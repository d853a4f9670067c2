// Package audio turns simulation events into sound. Player is a
// game.EventSink; it looks each event up by (entity kind, event kind) and
// plays the matching cue through a beep mixer.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// maxVoices caps concurrent cues so a firefight does not saturate.
	maxVoices = 12
)

// Player plays event cues. It degrades to a no-op when the audio device
// cannot be opened or Init was never called.
type Player struct {
	mu          sync.Mutex
	cache       *cueCache
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
	played      int
}

// NewPlayer creates a player with a cold cache. Call Init to open the device.
func NewPlayer() *Player {
	return &Player{
		cache:  newCueCache(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}),
		mixer:  &beep.Mixer{},
		volume: 1,
	}
}

// Init opens the speaker and starts the mixer. A second call is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	p.cache.preload()
	speaker.Play(p.mixer)
	p.initialized = true
	log.Info("audio ready", "rate", int(sampleRate), "cues", p.cache.len())
	return nil
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted mutes or unmutes playback. Events still warm the cache.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// SetVolume sets the master gain (0..1).
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = math.Max(0, math.Min(1, v))
	p.mu.Unlock()
}

// Played returns how many cues have been started.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Emit implements game.EventSink.
func (p *Player) Emit(ev game.Event) {
	key := CueKey{Entity: ev.Entity, Event: ev.Kind}
	cue, ok := CueFor(key)
	if !ok {
		return
	}
	buf := p.cache.get(key)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	if p.mixer.Len() < maxVoices {
		p.mixer.Add(gain(buf.Streamer(0, buf.Len()), cue.Volume*p.volume))
		p.played++
	}
	speaker.Unlock()
}

// gain wraps s in a volume effect. math.Log2(0) is -Inf, so zero is silent.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
