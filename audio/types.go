package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundHit      SoundType = iota // Bubble hits a band
	SoundPop                       // Two bubbles cancel out
	SoundKnockout                  // A band is eliminated
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundPop:
		return "pop"
	case SoundKnockout:
		return "knockout"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrUnknownSound  = errors.New("unknown sound type")
	ErrEmptyRiff     = errors.New("riff has no steps")
	ErrTrackFinished = errors.New("track finished")
)
