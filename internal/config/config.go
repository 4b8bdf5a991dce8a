package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration   = 10.0
	DefaultFrameDelta = 1.0 / 60.0
)

// Config is the on-disk description of one simulation run.
type Config struct {
	Model       string             `yaml:"model"`
	Solver      string             `yaml:"solver"`
	Granularity string             `yaml:"granularity"`
	Duration    float64            `yaml:"duration"`
	FrameDelta  float64            `yaml:"frame_delta"`
	InitState   []float64          `yaml:"init_state"`
	Params      map[string]float64 `yaml:"params"`
}

func Default() *Config {
	return &Config{
		Model:       "spring",
		Solver:      "rk4",
		Granularity: string(Normal),
		Duration:    DefaultDuration,
		FrameDelta:  DefaultFrameDelta,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
