package cli

import (
	"github.com/glyphmark/glyphmark/pkg/config"
	"github.com/glyphmark/glyphmark/pkg/processor"
	"github.com/glyphmark/glyphmark/pkg/registry"
	"github.com/glyphmark/glyphmark/pkg/render/shields"
	"github.com/glyphmark/glyphmark/pkg/render/svg"
)

// environment is everything a command needs: the loaded config, the
// registry over builtin plus extra definitions, and a processor wired
// for the configured target.
type environment struct {
	cfg *config.Config
	reg *registry.Registry
	prc *processor.Processor
}

// buildEnvironment assembles the processing pipeline from the global
// flags. target and assetsDir, when non-empty, override the config.
func buildEnvironment(opts *globalOptions, target, assetsDir string) (*environment, error) {
	overrides := map[string]any{}
	if target != "" {
		overrides["render.target"] = target
	}
	if assetsDir != "" {
		overrides["render.assets_dir"] = assetsDir
	}
	cfg, err := config.Load(opts.configPath, overrides)
	if err != nil {
		return nil, err
	}

	defs, err := config.BuiltinDefinitions()
	if err != nil {
		return nil, err
	}
	if opts.defsPath != "" {
		extra, err := config.LoadDefinitionsFile(opts.defsPath)
		if err != nil {
			return nil, err
		}
		defs = config.Merge(defs, extra)
	}

	reg, err := registry.New(defs)
	if err != nil {
		return nil, err
	}

	prcOpts := []processor.Option{
		processor.WithMaxDepth(cfg.Process.MaxDepth),
		processor.WithContext(cfg.DefaultContext()),
		processor.WithLimits(registry.Limits{
			MaxGraphemes: cfg.Limits.MaxGraphemes,
			MaxLength:    cfg.Limits.MaxChromeLength,
		}),
	}
	switch cfg.Render.Target {
	case "svg":
		prcOpts = append(prcOpts, processor.WithRenderer(&svg.Renderer{Dir: cfg.Render.AssetsDir}))
	default:
		prcOpts = append(prcOpts, processor.WithRenderer(&shields.Renderer{Style: cfg.Render.ShieldsStyle}))
	}

	prc := processor.New(reg, prcOpts...)
	if len(cfg.Palette) > 0 {
		if err := prc.ExtendPalette(cfg.Palette); err != nil {
			return nil, err
		}
	}

	return &environment{cfg: cfg, reg: reg, prc: prc}, nil
}
