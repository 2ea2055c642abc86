package core

// PlaybackEvent is a transport signal emitted by a playback source
type PlaybackEvent uint8

const (
	PlaybackStart PlaybackEvent = iota + 1
	PlaybackStop
)

func (e PlaybackEvent) String() string {
	switch e {
	case PlaybackStart:
		return "start"
	case PlaybackStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Analyser exposes the current output level of a playing source
type Analyser interface {
	// Level returns the smoothed signal level in [0, 1]
	Level() float64
}
