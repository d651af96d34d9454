package engine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

type HotReloadConfig struct {
	/** @brief Whether changed asset files are re-imported at runtime. */
	Enabled bool `toml:"enabled"`
	/** @brief How many driving ticks pass between reload flushes. */
	EveryTicks int `toml:"every_ticks"`
}

type Config struct {
	/** @brief The relative base path for assets. */
	AssetRoot string `toml:"asset_root"`
	/** @brief The number of import workers. */
	Workers int `toml:"workers"`
	/** @brief The buffered size of the worker job queue. */
	QueueSize int `toml:"queue_size"`

	HotReload HotReloadConfig `toml:"hot_reload"`
}

func DefaultConfig() *Config {
	return &Config{
		AssetRoot: "assets",
		Workers:   runtime.NumCPU(),
		QueueSize: 128,
		HotReload: HotReloadConfig{
			Enabled:    false,
			EveryTicks: 30,
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.QueueSize < 0 {
		return nil, fmt.Errorf("config %q: queue_size must not be negative", path)
	}
	if cfg.HotReload.EveryTicks <= 0 {
		cfg.HotReload.EveryTicks = 1
	}

	return cfg, nil
}
