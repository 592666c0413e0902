package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type searchConfig struct {
	Nodes        int     `yaml:"nodes"`
	NoiseEpsilon float64 `yaml:"noise_epsilon"`
	Temperature  float64 `yaml:"temperature"`
}

type selfplayConfig struct {
	MeanOpeningPlies    int     `yaml:"mean_opening_plies"`
	MaxOpeningPlies     int     `yaml:"max_opening_plies"`
	MaxGameLength       int     `yaml:"max_game_length"`
	QuickSearchProb     float64 `yaml:"quick_search_prob"`
	QuickSearchNodes    int     `yaml:"quick_search_nodes"`
	QuickNoiseEpsilon   float64 `yaml:"quick_noise_epsilon"`
	NodeRandomFactor    float64 `yaml:"node_random_factor"`
	MinNodes            int     `yaml:"min_nodes"`
	PolicyClipThreshold float64 `yaml:"policy_clip_threshold"`
	BackupWindow        int     `yaml:"backup_window"`
	BackupValueWeight   float64 `yaml:"backup_value_weight"`
}

type arenaConfig struct {
	MaxGameLength int `yaml:"max_game_length"`
}

type exportConfig struct {
	Dir       string `yaml:"dir"`
	ShardSize int    `yaml:"shard_size"`
}

type runConfig struct {
	Mode    string `yaml:"mode"` // selfplay | arena
	Games   int    `yaml:"games"`
	Workers int    `yaml:"workers"`
	Variant string `yaml:"variant"`
	Seed    uint64 `yaml:"seed"`

	Search   searchConfig   `yaml:"search"`
	Selfplay selfplayConfig `yaml:"selfplay"`
	Arena    arenaConfig    `yaml:"arena"`
	Export   exportConfig   `yaml:"export"`
}

func defaultConfig() runConfig {
	return runConfig{
		Mode:    "selfplay",
		Games:   100,
		Workers: 1,
		Variant: "standard",
		Search: searchConfig{
			Nodes:        800,
			NoiseEpsilon: 0.25,
			Temperature:  1,
		},
		Selfplay: selfplayConfig{
			MeanOpeningPlies:    8,
			MaxOpeningPlies:     30,
			MaxGameLength:       400,
			QuickSearchProb:     0.33,
			QuickSearchNodes:    100,
			QuickNoiseEpsilon:   0.1,
			NodeRandomFactor:    0.25,
			MinNodes:            50,
			PolicyClipThreshold: 0.01,
			BackupWindow:        20,
			BackupValueWeight:   0.65,
		},
		Arena: arenaConfig{
			MaxGameLength: 400,
		},
		Export: exportConfig{
			Dir:       "data",
			ShardSize: 8192,
		},
	}
}

// loadConfig reads a yaml run configuration, leaving defaults for any field
// the file omits. An empty path keeps the defaults entirely.
func loadConfig(path string) (runConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
