package constants

import "time"

// Output configuration
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Riff timing
const (
	// RiffStepDuration is the length of one note in a band riff
	RiffStepDuration = 150 * time.Millisecond

	// RiffAttack and RiffRelease shape each riff note
	RiffAttack  = 5 * time.Millisecond
	RiffRelease = 60 * time.Millisecond
)

// Hit Sound Timing
const (
	HitSoundDuration = 80 * time.Millisecond
	HitSoundAttack   = 5 * time.Millisecond
	HitSoundRelease  = 20 * time.Millisecond
)

// Pop Sound Timing
const (
	PopSoundDuration = 60 * time.Millisecond
	PopSoundAttack   = 2 * time.Millisecond
	PopSoundRelease  = 40 * time.Millisecond
)

// Knockout Sound Timing
const (
	KnockoutNote1Duration = 200 * time.Millisecond
	KnockoutNote2Duration = 500 * time.Millisecond
	KnockoutAttack        = 5 * time.Millisecond
	KnockoutNote1Release  = 50 * time.Millisecond
	KnockoutNote2Release  = 400 * time.Millisecond
)

// Meter
const (
	// MeterDecay is the per-block smoothing factor applied to the RMS level
	MeterDecay = 0.8
)
