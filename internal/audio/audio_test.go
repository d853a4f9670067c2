package audio

import (
	"sync"
	"testing"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache() *cueCache {
	return newCueCache(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
}

func TestCache_SameKeySameBuffer(t *testing.T) {
	c := testCache()
	key := CueKey{Entity: game.KindGrunt, Event: game.EventFired}

	a := c.get(key)
	b := c.get(key)
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.renderCount())
}

func TestCache_KeyedByEntityAndEvent(t *testing.T) {
	c := testCache()
	grunt := c.get(CueKey{Entity: game.KindGrunt, Event: game.EventFired})
	boss := c.get(CueKey{Entity: game.KindBoss, Event: game.EventFired})
	hit := c.get(CueKey{Entity: game.KindGrunt, Event: game.EventHit})

	assert.NotSame(t, grunt, boss)
	assert.NotSame(t, grunt, hit)
	assert.Equal(t, 3, c.len())
}

func TestCache_SilentKey(t *testing.T) {
	c := testCache()
	assert.Nil(t, c.get(CueKey{Entity: game.KindGrunt, Event: game.EventDied}))
	assert.Zero(t, c.len())
}

func TestCache_ConcurrentGetRendersOnce(t *testing.T) {
	c := testCache()
	key := CueKey{Entity: game.KindProjectile, Event: game.EventExploded}

	var wg sync.WaitGroup
	bufs := make([]*beep.Buffer, 16)
	for i := range bufs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bufs[i] = c.get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, c.renderCount())
	for _, b := range bufs {
		assert.Same(t, bufs[0], b)
	}
}

func TestCache_EveryCueRendersItsDuration(t *testing.T) {
	c := testCache()
	for key, cue := range cues {
		buf := c.get(key)
		require.NotNil(t, buf, "cue %v", key)
		assert.Equal(t, sampleRate.N(cue.Duration), buf.Len(), "cue %v", key)
	}
}

func TestCache_Preload(t *testing.T) {
	c := testCache()
	c.preload()
	fired := 0
	for key := range cues {
		if key.Event == game.EventFired {
			fired++
		}
	}
	assert.Equal(t, fired, c.len())
}

func TestPlayer_EmitWithoutDevice(t *testing.T) {
	p := NewPlayer()
	assert.NotPanics(t, func() {
		p.Emit(game.Event{Kind: game.EventFired, Entity: game.KindPlayer})
		p.Emit(game.Event{Kind: game.EventDied, Entity: game.KindGrunt})
		p.Close()
	})
	assert.Zero(t, p.Played())
	assert.Equal(t, 1, p.cache.len(), "only the audible event warms the cache")
}

func TestPlayer_SubscribedToSim(t *testing.T) {
	p := NewPlayer()
	s := game.NewSim(game.DefaultAssaultLevel(), nil)
	s.AddSink(p)
	for i := 0; i < 120; i++ {
		s.Step()
	}
	p.cache.mu.RLock()
	_, cached := p.cache.store[CueKey{Entity: game.KindGrunt, Event: game.EventFired}]
	p.cache.mu.RUnlock()
	assert.True(t, cached, "grunt shots should have warmed their cue")
}

func TestGain(t *testing.T) {
	silent := gain(beep.Silence(10), 0)
	assert.NotNil(t, silent)
	loud := gain(beep.Silence(10), 1)
	assert.NotNil(t, loud)
}

func TestCueFor_DeathSounds(t *testing.T) {
	_, ok := CueFor(CueKey{Entity: game.KindPlayer, Event: game.EventDied})
	assert.True(t, ok, "the player's death should be audible")
	_, ok = CueFor(CueKey{Entity: game.KindGrunt, Event: game.EventDied})
	assert.False(t, ok, "grunt deaths sound on Defeated")
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer()
	p.SetVolume(1.7)
	assert.Equal(t, 1.0, p.volume)
	p.SetVolume(-0.2)
	assert.Zero(t, p.volume)
	p.SetVolume(0.4)
	assert.InDelta(t, 0.4, p.volume, 1e-9)
}

func TestPlayer_PlayerDeathWarmsCue(t *testing.T) {
	p := NewPlayer()
	s := game.NewSim(game.DefaultAssaultLevel(), nil)
	s.AddSink(p)
	require.True(t, s.Player().Damage(100, false))

	p.cache.mu.RLock()
	_, cached := p.cache.store[CueKey{Entity: game.KindPlayer, Event: game.EventDied}]
	p.cache.mu.RUnlock()
	assert.True(t, cached, "the player's Died event should reach its cue")
}
