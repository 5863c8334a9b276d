// ABOUTME: Machine configuration loading and defaults
// ABOUTME: TOML config file with an embedded sample for first runs
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Audio configures the playback engine.
type Audio struct {
	SampleRate      int `toml:"sample_rate"`
	Voices          int `toml:"voices"`
	RingCapacity    int `toml:"ring_capacity"`
	RefillThreshold int `toml:"refill_threshold"`
	BatchFrames     int `toml:"batch_frames"`
}

// Library configures the sample library on disk.
type Library struct {
	Dir          string   `toml:"dir"`
	Folders      []string `toml:"folders"`
	MaxDataBytes uint32   `toml:"max_data_bytes"`
}

// Server configures the control surface.
type Server struct {
	Port       int    `toml:"port"`
	Name       string `toml:"name"`
	EnableMDNS bool   `toml:"enable_mdns"`
}

// Config is the full machine configuration.
type Config struct {
	Audio   Audio   `toml:"audio"`
	Library Library `toml:"library"`
	Server  Server  `toml:"server"`
}

// Default returns the built-in configuration: 48kHz, four voices, 2KB
// rings refilled under 512 samples, 512KB asset cap.
func Default() Config {
	return Config{
		Audio: Audio{
			SampleRate:      48000,
			Voices:          4,
			RingCapacity:    1024,
			RefillThreshold: 512,
			BatchFrames:     32,
		},
		Library: Library{
			Folders:      []string{"kick", "snare", "hihat", "tom"},
			MaxDataBytes: 524288,
		},
		Server: Server{
			Port:       8941,
			EnableMDNS: true,
		},
	}
}

// Load reads a TOML config from path, filling gaps with defaults. A
// missing file is not an error; the defaults apply as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.normalize()
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	if c.Library.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		c.Library.Dir = filepath.Join(home, ".padbank", "library")
	}
	if c.Audio.RefillThreshold >= c.Audio.RingCapacity {
		return Config{}, fmt.Errorf("refill_threshold %d must be below ring_capacity %d",
			c.Audio.RefillThreshold, c.Audio.RingCapacity)
	}
	if c.Audio.Voices <= 0 || c.Audio.SampleRate <= 0 || c.Audio.BatchFrames <= 0 {
		return Config{}, fmt.Errorf("voices, sample_rate, and batch_frames must be positive")
	}
	return c, nil
}

// WriteSample writes the annotated sample config to path for the user
// to edit.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "padbank.toml"
	}
	return filepath.Join(home, ".padbank", "padbank.toml")
}
