/*
Demo application for the asset pipeline. It defines a couple of concrete
asset types (a CPU-side texture and a TOML material), loads everything
found in the configured asset root, and drives the processing loop while
reporting progress and hot reloads.
*/
package testbed

import (
	"context"
	"time"

	"github.com/spaghettifunk/atlas/engine"
	"github.com/spaghettifunk/atlas/engine/assets"
	"github.com/spaghettifunk/atlas/engine/assets/formats"
	"github.com/spaghettifunk/atlas/engine/core"
)

// Texture is the demo's finished texture asset. In a real renderer the
// finalize step would upload the pixels and keep a GPU handle instead.
type Texture struct {
	Name         string
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []uint8
}

// Material is loaded from hand-edited TOML files.
type Material struct {
	Name       string  `toml:"name"`
	DiffuseMap string  `toml:"diffuse_map"`
	Shininess  float32 `toml:"shininess"`
}

type Demo struct {
	pipeline  *engine.Pipeline
	textures  *assets.AssetStorage[*formats.ImageData, *Texture]
	materials *assets.AssetStorage[*Material, *Material]
	progress  *assets.ProgressCounter

	textureHandles  map[string]assets.Handle[*Texture]
	materialHandles map[string]assets.Handle[*Material]
	// Last seen version per texture handle, to notice hot reloads.
	seenVersions map[uint32]uint32

	reported bool
}

func NewDemo(p *engine.Pipeline) *Demo {
	d := &Demo{
		pipeline:        p,
		textures:        assets.NewAssetStorage[*formats.ImageData, *Texture](),
		materials:       assets.NewAssetStorage[*Material, *Material](),
		progress:        assets.NewProgressCounter(),
		textureHandles:  make(map[string]assets.Handle[*Texture]),
		materialHandles: make(map[string]assets.Handle[*Material]),
		seenVersions:    make(map[uint32]uint32),
	}

	d.textures.SetEventBus(p.Bus())
	d.materials.SetEventBus(p.Bus())

	p.Bus().Register(core.EVENT_CODE_ASSET_RELOADED, func(ctx core.EventContext) bool {
		core.LogInfo("asset file %s changed, re-importing", ctx.Path)
		return false
	})
	p.Bus().Register(core.EVENT_CODE_LOAD_FAILED, func(ctx core.EventContext) bool {
		core.LogWarn("load of %q (handle %d) failed: %v", ctx.Name, ctx.HandleID, ctx.Err)
		return false
	})

	return d
}

func (d *Demo) LoadTexture(name string) {
	h := assets.Load(d.pipeline.Loader(), name, formats.ImageFormat{FlipY: true}, d.progress, d.textures)
	d.textureHandles[name] = h
}

func (d *Demo) LoadMaterial(name string) {
	h := assets.Load(d.pipeline.Loader(), name, formats.TOMLFormat[Material]{}, d.progress, d.materials)
	d.materialHandles[name] = h
}

// Update runs one driving tick: pipeline upkeep, then merging both
// storages' queues and sweeping released slots.
func (d *Demo) Update() {
	d.pipeline.Update()

	d.textures.Process(finalizeTexture)
	d.materials.Process(finalizeMaterial)

	d.textures.ProcessCustomDrop(func(t *Texture) {
		// Renderer seam: this is where a GPU texture would be destroyed.
		core.LogDebug("released texture %q", t.Name)
	})
	d.materials.ProcessCustomDrop(nil)

	for name, h := range d.textureHandles {
		if t, version, ok := d.textures.GetWithVersion(h); ok {
			if seen := d.seenVersions[h.ID()]; version != seen {
				if seen != 0 {
					core.LogInfo("texture %q changed (%dx%d, version %d)", name, t.Width, t.Height, version)
				}
				d.seenVersions[h.ID()] = version
			}
		}
	}

	d.report()
}

func (d *Demo) report() {
	if d.reported {
		return
	}
	switch d.progress.Complete() {
	case assets.CompletionLoading:
		return
	case assets.CompletionComplete:
		core.LogInfo("all %d assets loaded in %.2fs, avg import %.2fms",
			d.progress.NumAssets(), d.pipeline.Uptime().Seconds(), d.pipeline.Metrics().AverageJobMS())
	case assets.CompletionFailed:
		core.LogError("%d of %d assets failed to load:", d.progress.NumFailed(), d.progress.NumAssets())
		for _, e := range d.progress.Errors() {
			core.LogError("  %s", e.Error())
		}
	}
	d.reported = true
}

// Run drives the demo until the context is cancelled, so hot reloads keep
// working after the initial load completes.
func (d *Demo) Run(ctx context.Context) error {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.shutdown()
			return nil
		case <-ticker.C:
			d.Update()
		}
	}
}

func (d *Demo) shutdown() {
	for _, h := range d.textureHandles {
		h.Release()
	}
	for _, h := range d.materialHandles {
		h.Release()
	}
	d.textures.ProcessCustomDrop(func(t *Texture) {
		core.LogDebug("released texture %q", t.Name)
	})
	d.materials.ProcessCustomDrop(nil)
}

func finalizeTexture(data *formats.ImageData) (assets.ProcessingState[*formats.ImageData, *Texture], error) {
	t := &Texture{
		Name:         data.Name,
		Width:        data.Width,
		Height:       data.Height,
		ChannelCount: data.ChannelCount,
		Pixels:       data.Pixels,
	}
	return assets.Loaded[*formats.ImageData, *Texture](t), nil
}

func finalizeMaterial(data *Material) (assets.ProcessingState[*Material, *Material], error) {
	return assets.Loaded[*Material, *Material](data), nil
}
