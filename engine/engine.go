package engine

import (
	"time"

	"github.com/spaghettifunk/atlas/engine/assets"
	"github.com/spaghettifunk/atlas/engine/assets/sources"
	"github.com/spaghettifunk/atlas/engine/core"
	"github.com/spaghettifunk/atlas/engine/systems"
)

/**
 * Pipeline wires the asset subsystems together: the worker pool, the
 * loader with its default directory source, the hot-reload watcher and
 * the event bus. Asset storages are created per asset type by the
 * application, which also owns the driving loop that calls their Process.
 */
type Pipeline struct {
	config   *Config
	jobs     *systems.JobSystem
	loader   *assets.Loader
	reloader *assets.Reloader
	bus      *core.EventBus
	clock    *core.Clock
	metrics  *core.LoadMetrics
}

func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	metrics := core.NewLoadMetrics()
	jobs, err := systems.NewJobSystem(cfg.Workers, cfg.QueueSize, metrics)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	bus := core.NewEventBus()

	loader := assets.NewLoader(jobs)
	loader.SetDefaultSource(sources.NewDirectory(cfg.AssetRoot))

	var reloader *assets.Reloader
	if cfg.HotReload.Enabled {
		reloader, err = assets.NewReloader(assets.HotReloadEvery(cfg.HotReload.EveryTicks), bus)
		if err != nil {
			core.LogError(err.Error())
			return nil, err
		}
		loader.EnableHotReload(reloader)
		core.LogInfo("hot reload enabled, flushing every %d ticks", cfg.HotReload.EveryTicks)
	}

	clock := core.NewClock()
	clock.Start()

	core.LogInfo("asset pipeline initialized with base path '%s' and %d workers", cfg.AssetRoot, cfg.Workers)

	return &Pipeline{
		config:   cfg,
		jobs:     jobs,
		loader:   loader,
		reloader: reloader,
		bus:      bus,
		clock:    clock,
		metrics:  metrics,
	}, nil
}

func (p *Pipeline) Config() *Config {
	return p.config
}

func (p *Pipeline) Loader() *assets.Loader {
	return p.loader
}

func (p *Pipeline) Jobs() *systems.JobSystem {
	return p.jobs
}

func (p *Pipeline) Bus() *core.EventBus {
	return p.bus
}

func (p *Pipeline) Metrics() *core.LoadMetrics {
	return p.metrics
}

// Uptime reports how long the pipeline has been running, as of the latest
// Update.
func (p *Pipeline) Uptime() time.Duration {
	return p.clock.Elapsed()
}

// Update advances the pipeline by one tick. The application calls this
// from its driving loop, alongside the Process calls of its storages.
func (p *Pipeline) Update() {
	p.clock.Update()
	if p.reloader != nil {
		p.reloader.Update()
	}
}

func (p *Pipeline) Shutdown() error {
	if p.reloader != nil {
		if err := p.reloader.Close(); err != nil {
			core.LogError(err.Error())
		}
	}
	return p.jobs.Shutdown()
}
