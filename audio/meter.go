package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/band-battle/constants"
)

// Meter is a pass-through analysis tap measuring the smoothed RMS level of its stream.
// It only measures while connected.
type Meter struct {
	Streamer beep.Streamer

	decay     float64
	level     atomic.Uint64 // float64 bits
	connected atomic.Bool
}

// NewMeter wraps s with a level tap
func NewMeter(s beep.Streamer) *Meter {
	return &Meter{Streamer: s, decay: constants.MeterDecay}
}

func (m *Meter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = m.Streamer.Stream(samples)
	if n == 0 || !m.connected.Load() {
		return n, ok
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += samples[i][0]*samples[i][0] + samples[i][1]*samples[i][1]
	}
	rms := math.Sqrt(sum / float64(2*n))

	prev := math.Float64frombits(m.level.Load())
	m.level.Store(math.Float64bits(min(1, max(rms, prev*m.decay))))
	return n, ok
}

func (m *Meter) Err() error { return m.Streamer.Err() }

// Level returns the current level in [0, 1]; zero while disconnected
func (m *Meter) Level() float64 {
	if !m.connected.Load() {
		return 0
	}
	return math.Float64frombits(m.level.Load())
}

func (m *Meter) Connect() { m.connected.Store(true) }

// Disconnect stops measuring and resets the level
func (m *Meter) Disconnect() {
	m.connected.Store(false)
	m.level.Store(0)
}
