// Package config loads the builtin renderable definitions shipped with
// the binary, optional user-supplied definition files, and the layered
// runtime configuration (embedded defaults, config file, environment).
package config

import (
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/registry"
)

// Config is the resolved runtime configuration.
type Config struct {
	Render  RenderConfig      `koanf:"render"`
	Process ProcessConfig     `koanf:"process"`
	Limits  LimitsConfig      `koanf:"limits"`
	Palette map[string]string `koanf:"palette"`
}

// RenderConfig selects the primitive backend and its settings.
type RenderConfig struct {
	Target       string `koanf:"target"`
	AssetsDir    string `koanf:"assets_dir"`
	ShieldsStyle string `koanf:"shields_style"`
}

// ProcessConfig tunes the processor itself.
type ProcessConfig struct {
	MaxDepth int    `koanf:"max_depth"`
	Context  string `koanf:"context"`
}

// LimitsConfig carries the per-context content budgets. Zero means
// unlimited.
type LimitsConfig struct {
	MaxGraphemes    int `koanf:"max_graphemes"`
	MaxChromeLength int `koanf:"max_chrome_length"`
}

const envPrefix = "GLYPHMARK_"

// DefaultPath returns the per-user config file location. The file does
// not have to exist.
func DefaultPath() string {
	p, err := xdg.ConfigFile("glyphmark/config.toml")
	if err != nil {
		return "glyphmark.toml"
	}
	return p
}

// Load layers the runtime configuration: embedded defaults, then the
// config file at path (or DefaultPath when path is empty, skipped when
// absent), then GLYPHMARK_* environment variables, then the overrides
// map (command-line flags). Override keys use koanf dotted paths, e.g.
// "render.target".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading embedded defaults")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing config file %s", path)
		}
	} else if explicit {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", path)
	}

	// Only the first underscore separates levels; the schema is two
	// levels deep and leaf keys contain underscores themselves
	// (GLYPHMARK_PROCESS_MAX_DEPTH -> process.max_depth).
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "loading environment")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "applying overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "unmarshaling configuration")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Render.Target {
	case "markdown", "svg":
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown render target %q", c.Render.Target).
			WithDetail("target", c.Render.Target)
	}
	if _, ok := registry.ParseContext(c.Process.Context); !ok {
		return errors.Newf(errors.ErrConfigValid, "unknown context %q", c.Process.Context).
			WithDetail("context", c.Process.Context)
	}
	if c.Process.MaxDepth < 1 {
		return errors.Newf(errors.ErrConfigValid, "max_depth must be at least 1, got %d", c.Process.MaxDepth)
	}
	if c.Limits.MaxGraphemes < 0 || c.Limits.MaxChromeLength < 0 {
		return errors.New(errors.ErrConfigValid, "limits must not be negative")
	}
	return nil
}

// DefaultContext returns the configured processing context.
func (c *Config) DefaultContext() registry.Context {
	ctx, _ := registry.ParseContext(c.Process.Context)
	return ctx
}
