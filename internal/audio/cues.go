package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// CueKey identifies a sound asset: who emitted the event and what happened.
type CueKey struct {
	Entity game.Kind
	Event  game.EventKind
}

// Cue describes a synthesized sound effect.
type Cue struct {
	Freq     float64 // start frequency, Hz
	Sweep    float64 // end frequency; 0 = no sweep
	Duration time.Duration
	Wave     Wave
	Volume   float64 // linear gain, 0..1
}

// cues maps (entity kind, event kind) to its sound. Events with no entry
// are silent.
var cues = map[CueKey]Cue{
	{game.KindPlayer, game.EventFired}:        {Freq: 900, Sweep: 300, Duration: 70 * time.Millisecond, Wave: WaveSquare, Volume: 0.25},
	{game.KindGrunt, game.EventFired}:         {Freq: 600, Sweep: 250, Duration: 80 * time.Millisecond, Wave: WaveSquare, Volume: 0.2},
	{game.KindMobile, game.EventFired}:        {Freq: 700, Sweep: 350, Duration: 60 * time.Millisecond, Wave: WaveSaw, Volume: 0.2},
	{game.KindBoss, game.EventFired}:          {Freq: 180, Sweep: 90, Duration: 140 * time.Millisecond, Wave: WaveSaw, Volume: 0.35},
	{game.KindPlayer, game.EventHit}:          {Freq: 110, Duration: 180 * time.Millisecond, Wave: WaveSaw, Volume: 0.4},
	{game.KindGrunt, game.EventHit}:           {Freq: 220, Sweep: 140, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
	{game.KindMobile, game.EventHit}:          {Freq: 240, Sweep: 160, Duration: 90 * time.Millisecond, Wave: WaveSine, Volume: 0.3},
	{game.KindBoss, game.EventHit}:            {Freq: 140, Sweep: 100, Duration: 120 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	{game.KindGrunt, game.EventDefeated}:      {Freq: 330, Sweep: 80, Duration: 400 * time.Millisecond, Wave: WaveSine, Volume: 0.35},
	{game.KindMobile, game.EventDefeated}:     {Freq: 360, Sweep: 90, Duration: 350 * time.Millisecond, Wave: WaveSine, Volume: 0.35},
	{game.KindPlayer, game.EventDied}:         {Freq: 260, Sweep: 65, Duration: 700 * time.Millisecond, Wave: WaveSaw, Volume: 0.45},
	{game.KindProjectile, game.EventExploded}: {Freq: 0, Duration: 450 * time.Millisecond, Wave: WaveNoise, Volume: 0.5},
	{game.KindBoss, game.EventBossActivated}:  {Freq: 300, Sweep: 600, Duration: 600 * time.Millisecond, Wave: WaveSquare, Volume: 0.3},
	{game.KindBoss, game.EventBossDefeated}:   {Freq: 0, Duration: 900 * time.Millisecond, Wave: WaveNoise, Volume: 0.6},
	{game.KindMobile, game.EventWaveSpawned}:  {Freq: 440, Sweep: 660, Duration: 250 * time.Millisecond, Wave: WaveSine, Volume: 0.25},
	{game.KindPlayer, game.EventVictory}:      {Freq: 523, Sweep: 1046, Duration: 800 * time.Millisecond, Wave: WaveSine, Volume: 0.4},
	{game.KindPlayer, game.EventDefeat}:       {Freq: 392, Sweep: 98, Duration: 1200 * time.Millisecond, Wave: WaveSaw, Volume: 0.4},
}

// CueFor returns the cue for key, or false if that event is silent.
func CueFor(key CueKey) (Cue, bool) {
	c, ok := cues[key]
	return c, ok
}

// oscillator generates a swept wave with a linear release.
type oscillator struct {
	cue      Cue
	phase    float64
	position int
	total    int
	release  int
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(c Cue, rate beep.SampleRate, seed int64) beep.Streamer {
	total := rate.N(c.Duration)
	return &oscillator{
		cue:     c,
		total:   total,
		release: total / 3,
		rate:    rate,
		rng:     rand.New(rand.NewSource(seed)), // #nosec G404 -- noise for synthesis
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		progress := float64(o.position) / float64(o.total)
		freq := o.cue.Freq
		if o.cue.Sweep > 0 {
			freq += (o.cue.Sweep - o.cue.Freq) * progress
		}

		var val float64
		switch o.cue.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		if left := o.total - o.position; left < o.release {
			val *= float64(left) / float64(o.release)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }
