package audio

import "github.com/lixenwraith/band-battle/constants"

// Config controls the audio output
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0 - 1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultConfig returns the default audio configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   constants.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundHit:      0.6,
			SoundPop:      0.4,
			SoundKnockout: 1.0,
		},
	}
}

// effectVolume returns the per-effect gain; master volume is applied by Output
func (c *Config) effectVolume(st SoundType) float64 {
	if v, ok := c.EffectVolumes[st]; ok {
		return v
	}
	return 1.0
}
