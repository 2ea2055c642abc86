package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/band-battle/core"
)

// signalBuffer bounds undelivered transport events; overflow is dropped
const signalBuffer = 16

// riffLoop streams consecutive passes of a riff while looping is enabled
type riffLoop struct {
	pass  func() (beep.Streamer, error)
	loop  *atomic.Bool
	onEnd func()

	cur  beep.Streamer
	done bool
	err  error
}

func (l *riffLoop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && !l.done {
		fresh := false
		if l.cur == nil {
			l.cur, l.err = l.pass()
			if l.err != nil {
				l.finish()
				break
			}
			fresh = true
		}

		got, more := l.cur.Stream(samples[n:])
		n += got
		if more && got > 0 {
			continue
		}

		// Pass exhausted
		l.cur = nil
		if (fresh && got == 0) || !l.loop.Load() {
			l.finish()
		}
	}
	if n == 0 && l.done {
		return 0, false
	}
	return n, true
}

func (l *riffLoop) finish() {
	l.done = true
	if l.onEnd != nil {
		l.onEnd()
	}
}

func (l *riffLoop) Err() error { return l.err }

// Track is a band's playback source: a looping riff feeding an analysis tap,
// a volume stage and a pause control.
// It is itself a beep.Streamer to be added to an Output.
type Track struct {
	mu sync.Mutex

	name    string
	loop    atomic.Bool
	source  *riffLoop
	meter   *Meter
	volume  *effects.Volume
	ctrl    *beep.Ctrl
	gain    float64
	playing bool
	ended   bool

	signals chan core.PlaybackEvent
}

// NewTrack creates a paused, looping track for riff
func NewTrack(name string, riff Riff, rate beep.SampleRate) (*Track, error) {
	if len(riff.Steps) == 0 {
		return nil, ErrEmptyRiff
	}

	t := &Track{
		name:    name,
		gain:    1,
		signals: make(chan core.PlaybackEvent, signalBuffer),
	}
	t.loop.Store(true)
	t.source = &riffLoop{
		pass:  func() (beep.Streamer, error) { return riff.Pass(rate) },
		loop:  &t.loop,
		onEnd: t.onEnd,
	}
	t.meter = NewMeter(t.source)
	t.volume = newVolume(t.meter, t.gain)
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: true}
	return t, nil
}

func (t *Track) Name() string { return t.name }

// Stream renders audio; called from the speaker goroutine
func (t *Track) Stream(samples [][2]float64) (n int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctrl.Stream(samples)
}

func (t *Track) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.source.Err()
}

// onEnd runs under t.mu from Stream once the last pass finishes
func (t *Track) onEnd() {
	t.ended = true
	if t.playing {
		t.playing = false
		t.notify(core.PlaybackStop)
	}
}

func (t *Track) notify(ev core.PlaybackEvent) {
	select {
	case t.signals <- ev:
	default:
	}
}

// Play resumes the track; no-op when already playing or finished
func (t *Track) Play() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ended {
		return ErrTrackFinished
	}
	if t.playing {
		return nil
	}
	t.playing = true
	t.ctrl.Paused = false
	t.notify(core.PlaybackStart)
	return nil
}

// Pause halts the track; no-op when not playing
func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.playing {
		return
	}
	t.playing = false
	t.ctrl.Paused = true
	t.notify(core.PlaybackStop)
}

func (t *Track) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Ended reports whether the track stopped after looping was disabled
func (t *Track) Ended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ended
}

// Signals delivers start/stop events in the order they happened
func (t *Track) Signals() <-chan core.PlaybackEvent { return t.signals }

// SetVolume sets the linear gain, clamped to [0, 1]
func (t *Track) SetVolume(v float64) {
	v = min(1, max(0, v))
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gain = v
	setLinearVolume(t.volume, v)
}

func (t *Track) Volume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gain
}

// SetLoop(false) lets the current pass finish, then the track ends
func (t *Track) SetLoop(loop bool) { t.loop.Store(loop) }

func (t *Track) Looping() bool { return t.loop.Load() }

// Connect enables the level tap and returns it
func (t *Track) Connect() core.Analyser {
	t.meter.Connect()
	return t.meter
}

func (t *Track) Disconnect() { t.meter.Disconnect() }
