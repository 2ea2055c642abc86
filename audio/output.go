package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/band-battle/constants"
)

// Output owns the speaker and mixes band tracks with sound effects.
// A disabled or uninitialized output silently drops everything.
type Output struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	master      *effects.Volume
	cache       *soundCache
	initialized bool
}

// NewOutput creates an output; call Initialize to open the speaker
func NewOutput(cfg *Config) *Output {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	mixer := &beep.Mixer{}
	return &Output{
		cfg:    cfg,
		mixer:  mixer,
		master: newVolume(mixer, cfg.MasterVolume),
		cache:  newSoundCache(cfg),
	}
}

// Initialize sets up the speaker; a disabled config leaves the output silent
func (o *Output) Initialize() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized || !o.cfg.Enabled {
		return nil
	}

	rate := beep.SampleRate(o.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	o.cache.preload()
	speaker.Play(o.master)
	o.initialized = true
	log.Printf("audio: speaker initialized at %d Hz, master volume %.2f", o.cfg.SampleRate, o.cfg.MasterVolume)
	return nil
}

// Enabled reports whether sound is actually reaching the speaker
func (o *Output) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.initialized
}

// SampleRate returns the rate streamers added to this output must use
func (o *Output) SampleRate() beep.SampleRate {
	return beep.SampleRate(o.cfg.SampleRate)
}

// Add mixes a long-lived streamer such as a band track
func (o *Output) Add(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// PlayEffect plays a one-shot sound effect
func (o *Output) PlayEffect(st SoundType) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}
	s, err := o.cache.get(st)
	if err != nil {
		log.Printf("audio: effect %v: %v", st, err)
		return
	}
	speaker.Lock()
	o.mixer.Add(s)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}

	speaker.Lock()
	o.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	o.initialized = false
}
