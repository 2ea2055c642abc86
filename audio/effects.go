package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/vmath"
)

// WaveType selects an oscillator shape
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave value at phase p in [0,1)
func (w WaveType) sample(p float64, rng *vmath.FastRand) float64 {
	switch w {
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*p - 1
	case WaveNoise:
		return rng.Range(-1, 1)
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// oscillator streams a fixed number of samples of one wave at one frequency
type oscillator struct {
	wave      WaveType
	step      float64 // phase increment per sample
	phase     float64
	remaining int
	rng       *vmath.FastRand
}

// NewOscillator streams duration worth of wave at freq Hz
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		wave:      wave,
		step:      freq / float64(rate),
		remaining: rate.N(duration),
		rng:       vmath.NewFastRand(uint64(time.Now().UnixNano())),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && o.remaining > 0 {
		v := o.wave.sample(o.phase, o.rng)
		samples[n] = [2]float64{v, v}
		_, o.phase = math.Modf(o.phase + o.step)
		o.remaining--
		n++
	}
	return n, n > 0
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a streamer of known length
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		total:    rate.N(duration),
		attack:   rate.N(attack),
		release:  rate.N(release),
	}
}

// gain at sample position pos; release wins where it overlaps the attack
func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	if left := e.total - pos; e.release > 0 && left <= e.release && pos >= max(e.attack, e.total-e.release) {
		g = float64(left) / float64(e.release)
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if left := e.total - e.pos; len(samples) > left {
		samples = samples[:left]
	}
	n, ok = e.streamer.Stream(samples)
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; zero or less is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	setLinearVolume(v, vol)
	return v
}

func setLinearVolume(v *effects.Volume, vol float64) {
	v.Silent = vol <= 0
	if v.Silent {
		v.Volume = 0
		return
	}
	v.Volume = math.Log2(vol)
}

// tone is one shaped oscillator voice of an effect
type tone struct {
	freq    float64
	dur     time.Duration
	wave    WaveType
	attack  time.Duration
	release time.Duration
	gain    float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	s := NewEnvelope(NewOscillator(t.freq, t.dur, t.wave, rate), t.dur, t.attack, t.release, rate)
	if t.gain == 0 || t.gain == 1 {
		return s
	}
	return newVolume(s, t.gain)
}

func voices(tones []tone, rate beep.SampleRate) []beep.Streamer {
	out := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		out[i] = t.streamer(rate)
	}
	return out
}

// CreateHitSound is a low square thud with a noise click, for a bubble striking a band
func CreateHitSound(cfg *Config) beep.Streamer {
	d, a, r := constants.HitSoundDuration, constants.HitSoundAttack, constants.HitSoundRelease
	layers := voices([]tone{
		{freq: 90, dur: d, wave: WaveSquare, attack: a, release: r, gain: 0.7},
		{dur: d, wave: WaveNoise, attack: a, release: r, gain: 0.2},
	}, beep.SampleRate(cfg.SampleRate))
	return newVolume(beep.Mix(layers...), cfg.effectVolume(SoundHit))
}

// CreatePopSound is a short high blip, for two bubbles cancelling
func CreatePopSound(cfg *Config) beep.Streamer {
	blip := tone{
		freq:    NoteFreq(84),
		dur:     constants.PopSoundDuration,
		attack:  constants.PopSoundAttack,
		release: constants.PopSoundRelease,
	}
	return newVolume(blip.streamer(beep.SampleRate(cfg.SampleRate)), cfg.effectVolume(SoundPop))
}

// CreateKnockoutSound is a falling two-note saw sting, for an eliminated band
func CreateKnockoutSound(cfg *Config) beep.Streamer {
	notes := voices([]tone{
		{freq: NoteFreq(67), dur: constants.KnockoutNote1Duration, wave: WaveSaw,
			attack: constants.KnockoutAttack, release: constants.KnockoutNote1Release},
		{freq: NoteFreq(55), dur: constants.KnockoutNote2Duration, wave: WaveSaw,
			attack: constants.KnockoutAttack, release: constants.KnockoutNote2Release},
	}, beep.SampleRate(cfg.SampleRate))
	return newVolume(beep.Seq(notes...), cfg.effectVolume(SoundKnockout))
}

// GetSoundEffect builds a fresh streamer for st
func GetSoundEffect(st SoundType, cfg *Config) (beep.Streamer, error) {
	switch st {
	case SoundHit:
		return CreateHitSound(cfg), nil
	case SoundPop:
		return CreatePopSound(cfg), nil
	case SoundKnockout:
		return CreateKnockoutSound(cfg), nil
	}
	return nil, ErrUnknownSound
}
