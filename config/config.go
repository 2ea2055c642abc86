// Package config loads match settings from TOML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/band-battle/audio"
	"github.com/lixenwraith/band-battle/constants"
)

// Environment overrides
const (
	EnvAudioEnabled = "BAND_BATTLE_AUDIO_ENABLED"
	EnvMasterVolume = "BAND_BATTLE_MASTER_VOLUME" // 0-100
	EnvTickMs       = "BAND_BATTLE_TICK_MS"
)

var ErrInvalid = errors.New("invalid config")

// Config is the full match configuration
type Config struct {
	Match  MatchConfig  `toml:"match"`
	Engine EngineConfig `toml:"engine"`
	Field  FieldConfig  `toml:"field"`
	Red    BandConfig   `toml:"red"`
	Blue   BandConfig   `toml:"blue"`
	Audio  AudioConfig  `toml:"audio"`
}

type MatchConfig struct {
	// Seed for the random source; zero seeds from the clock
	Seed uint64 `toml:"seed"`
	// Autoplay starts both bands without waiting for input
	Autoplay bool `toml:"autoplay"`
}

type EngineConfig struct {
	TickMs int `toml:"tick_ms"`
}

// FieldConfig sets how many field units one terminal cell covers
type FieldConfig struct {
	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`
}

// BandConfig tunes one band. X and Y place the band's top-left corner
// as a fraction of the field size.
type BandConfig struct {
	X            float64 `toml:"x"`
	Y            float64 `toml:"y"`
	AngularSpeed float64 `toml:"angular_speed"`
	MaxVolume    float64 `toml:"max_volume"`
	BubbleRate   float64 `toml:"bubble_rate"`
	BubbleSpeed  float64 `toml:"bubble_speed"`
}

type AudioConfig struct {
	Enabled      bool               `toml:"enabled"`
	MasterVolume int                `toml:"master_volume"` // 0-100
	SampleRate   int                `toml:"sample_rate"`
	Effects      map[string]float64 `toml:"effects"`
}

// Default returns the stock match: red spins clockwise at quarter volume, blue the other way at full
func Default() *Config {
	return &Config{
		Engine: EngineConfig{TickMs: int(constants.GameUpdateInterval / time.Millisecond)},
		Field:  FieldConfig{CellWidth: 8, CellHeight: 16},
		Red: BandConfig{
			X:            0.15,
			Y:            0.2,
			AngularSpeed: 5,
			MaxVolume:    0.25,
			BubbleRate:   constants.BandBubbleRate,
			BubbleSpeed:  constants.BandBubbleSpeed,
		},
		Blue: BandConfig{
			X:            0.7,
			Y:            0.55,
			AngularSpeed: -5,
			MaxVolume:    1,
			BubbleRate:   constants.BandBubbleRate,
			BubbleSpeed:  constants.BandBubbleSpeed,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 50,
			SampleRate:   constants.AudioSampleRate,
			Effects: map[string]float64{
				"hit":      0.6,
				"pop":      0.4,
				"knockout": 1.0,
			},
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode merges TOML from r into cfg; unknown keys are rejected
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Encode writes cfg as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides fields from the environment; unparseable values are ignored
func (c *Config) ApplyEnv() {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = val
		}
	}

	if volume := os.Getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.MasterVolume = min(100, max(0, val))
		}
	}

	if tick := os.Getenv(EnvTickMs); tick != "" {
		if val, err := strconv.Atoi(tick); err == nil && val > 0 {
			c.Engine.TickMs = val
		}
	}
}

// Validate reports the first out-of-range setting
func (c *Config) Validate() error {
	if c.TickInterval() < constants.MinUpdateInterval {
		return fmt.Errorf("%w: engine.tick_ms %d below %v", ErrInvalid, c.Engine.TickMs, constants.MinUpdateInterval)
	}
	if c.Field.CellWidth <= 0 || c.Field.CellHeight <= 0 {
		return fmt.Errorf("%w: field cell size must be positive", ErrInvalid)
	}
	if err := c.Red.validate(); err != nil {
		return fmt.Errorf("%w: red.%v", ErrInvalid, err)
	}
	if err := c.Blue.validate(); err != nil {
		return fmt.Errorf("%w: blue.%v", ErrInvalid, err)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 100 {
		return fmt.Errorf("%w: audio.master_volume %d outside 0-100", ErrInvalid, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive", ErrInvalid)
	}
	for name, v := range c.Audio.Effects {
		if _, ok := effectNames[name]; !ok {
			return fmt.Errorf("%w: unknown audio effect %q", ErrInvalid, name)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: audio.effects.%s %v outside [0, 1]", ErrInvalid, name, v)
		}
	}
	return nil
}

func (b BandConfig) validate() error {
	switch {
	case b.X < 0 || b.X > 1:
		return fmt.Errorf("x %v outside [0, 1]", b.X)
	case b.Y < 0 || b.Y > 1:
		return fmt.Errorf("y %v outside [0, 1]", b.Y)
	case b.MaxVolume < 0 || b.MaxVolume > 1:
		return fmt.Errorf("max_volume %v outside [0, 1]", b.MaxVolume)
	case b.BubbleRate < 0:
		return fmt.Errorf("bubble_rate %v negative", b.BubbleRate)
	case b.BubbleSpeed < 0:
		return fmt.Errorf("bubble_speed %v negative", b.BubbleSpeed)
	}
	return nil
}

// TickInterval returns the scheduler interval
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickMs) * time.Millisecond
}

var effectNames = map[string]audio.SoundType{
	"hit":      audio.SoundHit,
	"pop":      audio.SoundPop,
	"knockout": audio.SoundKnockout,
}

// AudioConfig converts the audio section to the output configuration
func (c *Config) AudioConfig() *audio.Config {
	out := audio.DefaultConfig()
	out.Enabled = c.Audio.Enabled
	out.MasterVolume = float64(c.Audio.MasterVolume) / 100.0
	out.SampleRate = c.Audio.SampleRate
	for name, v := range c.Audio.Effects {
		if st, ok := effectNames[name]; ok {
			out.EffectVolumes[st] = v
		}
	}
	return out
}
