package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// soundCache stores pre-rendered effect buffers
type soundCache struct {
	mu     sync.RWMutex
	cfg    *Config
	format beep.Format
	store  [soundTypeCount]*beep.Buffer
}

func newSoundCache(cfg *Config) *soundCache {
	return &soundCache{
		cfg: cfg,
		format: beep.Format{
			SampleRate:  beep.SampleRate(cfg.SampleRate),
			NumChannels: 2,
			Precision:   2,
		},
	}
}

// get returns a fresh streamer over the cached buffer, rendering it on first use
func (c *soundCache) get(st SoundType) (beep.StreamSeeker, error) {
	if st < 0 || st >= soundTypeCount {
		return nil, ErrUnknownSound
	}

	c.mu.RLock()
	buf := c.store[st]
	c.mu.RUnlock()
	if buf != nil {
		return buf.Streamer(0, buf.Len()), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if buf = c.store[st]; buf == nil {
		s, err := GetSoundEffect(st, c.cfg)
		if err != nil {
			return nil, err
		}
		buf = beep.NewBuffer(c.format)
		buf.Append(s)
		c.store[st] = buf
	}
	return buf.Streamer(0, buf.Len()), nil
}

// preload renders every effect up front so the first hit does not stall the mixer
func (c *soundCache) preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		c.get(st)
	}
}
