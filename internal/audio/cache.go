package audio

import (
	"sync"

	"github.com/Garsondee/Beachhead/internal/game"
	"github.com/gopxl/beep"
)

// cueCache holds rendered cue buffers keyed by asset identity. Buffers are
// rendered once, on first use, and shared by every later playback.
type cueCache struct {
	mu      sync.RWMutex
	format  beep.Format
	store   map[CueKey]*beep.Buffer
	renders int
}

func newCueCache(format beep.Format) *cueCache {
	return &cueCache{format: format, store: make(map[CueKey]*beep.Buffer)}
}

// get returns the cached buffer for key, rendering it on demand. Silent keys
// return nil.
func (c *cueCache) get(key CueKey) *beep.Buffer {
	cue, ok := CueFor(key)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if buf, ok := c.store[key]; ok {
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf, ok := c.store[key]; ok {
		return buf
	}

	buf := beep.NewBuffer(c.format)
	buf.Append(newOscillator(cue, c.format.SampleRate, int64(key.Entity)<<8|int64(key.Event)))
	c.store[key] = buf
	c.renders++
	return buf
}

// preload renders the cues heard every few ticks.
func (c *cueCache) preload() {
	for key := range cues {
		if key.Event == game.EventFired {
			c.get(key)
		}
	}
}

func (c *cueCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *cueCache) renderCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renders
}
