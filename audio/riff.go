package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/band-battle/constants"
)

// Rest marks a silent riff step
const Rest = -1

// NoteFreq returns frequency in Hz for MIDI note number, A4 (69) = 440Hz
func NoteFreq(midi int) float64 {
	if midi < 0 || midi >= 128 {
		return 0
	}
	return 440.0 * math.Pow(2, (float64(midi)-69.0)/12.0)
}

// Riff is a looping note pattern a band plays
type Riff struct {
	Root  int   // MIDI note
	Steps []int // semitone offsets from Root, or Rest
	Wave  WaveType
	Step  time.Duration // zero selects RiffStepDuration
	Gain  float64       // zero selects 1
}

// Team riffs
var (
	RedRiff = Riff{
		Root:  45, // A2
		Steps: []int{0, 0, 12, 0, 10, Rest, 7, 5, 0, 0, 12, 0, 15, 12, 10, 7},
		Wave:  WaveSquare,
		Gain:  0.35,
	}
	BlueRiff = Riff{
		Root:  52, // E3
		Steps: []int{0, 7, 12, 7, 3, 7, 10, Rest, 0, 7, 12, 15, 12, 10, 7, 3},
		Wave:  WaveSaw,
		Gain:  0.3,
	}
)

// Len returns the duration of one pass
func (r Riff) Len() time.Duration {
	return r.step() * time.Duration(len(r.Steps))
}

func (r Riff) step() time.Duration {
	if r.Step <= 0 {
		return constants.RiffStepDuration
	}
	return r.Step
}

// Pass builds a streamer that plays the riff once
func (r Riff) Pass(rate beep.SampleRate) (beep.Streamer, error) {
	if len(r.Steps) == 0 {
		return nil, ErrEmptyRiff
	}

	step := r.step()
	notes := make([]beep.Streamer, 0, len(r.Steps))
	for _, offset := range r.Steps {
		if offset == Rest {
			notes = append(notes, beep.Silence(rate.N(step)))
			continue
		}
		osc := NewOscillator(NoteFreq(r.Root+offset), step, r.Wave, rate)
		notes = append(notes, NewEnvelope(osc, step, constants.RiffAttack, constants.RiffRelease, rate))
	}

	gain := r.Gain
	if gain <= 0 {
		gain = 1
	}
	return newVolume(beep.Seq(notes...), gain), nil
}
