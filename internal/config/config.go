// Package config handles configuration loading for the heatmatrix CLI.
//
// A config file is TOML or YAML, chosen by extension. Flags override file
// values, and file values override the built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cometsanalytics/heatmatrix/pkg/cache"
	"github.com/cometsanalytics/heatmatrix/pkg/colormap"
	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap"
	"github.com/cometsanalytics/heatmatrix/pkg/heatmap/dendrogram"
	"github.com/cometsanalytics/heatmatrix/pkg/plot"
)

// Environment variables that override file values.
const (
	EnvCacheDir     = "HEATMATRIX_CACHE_DIR"
	EnvCacheBackend = "HEATMATRIX_CACHE_BACKEND"
	EnvRedisAddr    = "HEATMATRIX_REDIS_ADDR"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// ValidBackends is the set of supported cache backends.
var ValidBackends = map[string]bool{
	BackendFile:   true,
	BackendMemory: true,
	BackendRedis:  true,
	BackendNone:   true,
}

// Config represents the CLI configuration.
type Config struct {
	Heatmap HeatmapConfig `toml:"heatmap" yaml:"heatmap"`
	Labels  LabelsConfig  `toml:"labels" yaml:"labels"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
}

// HeatmapConfig contains the layout options.
type HeatmapConfig struct {
	XKey            string `toml:"x_key" yaml:"x_key"`
	YKey            string `toml:"y_key" yaml:"y_key"`
	ZKey            string `toml:"z_key" yaml:"z_key"`
	PKey            string `toml:"p_key" yaml:"p_key"`
	SortColumn      string `toml:"sort_column" yaml:"sort_column"`
	ShowAnnotations bool   `toml:"show_annotations" yaml:"show_annotations"`
	ShowDendrogram  bool   `toml:"show_dendrogram" yaml:"show_dendrogram"`
	PValueMin       string `toml:"pvalue_min" yaml:"pvalue_min"`
	PValueMax       string `toml:"pvalue_max" yaml:"pvalue_max"`
}

// LabelsConfig contains the hover and color bar captions.
type LabelsConfig struct {
	X            string `toml:"x" yaml:"x"`
	Y            string `toml:"y" yaml:"y"`
	Z            string `toml:"z" yaml:"z"`
	Significance string `toml:"significance" yaml:"significance"`
}

// RenderConfig contains the renderer settings attached to each figure.
type RenderConfig struct {
	TickBudget     int     `toml:"tick_budget" yaml:"tick_budget"`
	ExportFormat   string  `toml:"export_format" yaml:"export_format"`
	ExportFilename string  `toml:"export_filename" yaml:"export_filename"`
	ExportWidth    int     `toml:"export_width" yaml:"export_width"`
	ExportHeight   int     `toml:"export_height" yaml:"export_height"`
	ExportScale    float64 `toml:"export_scale" yaml:"export_scale"`
	DisplayLogo    bool    `toml:"display_logo" yaml:"display_logo"`
	ModeBar        *bool   `toml:"mode_bar" yaml:"mode_bar"`
	Colormap       string  `toml:"colormap" yaml:"colormap"`
}

// CacheConfig contains caching settings.
type CacheConfig struct {
	Backend       string `toml:"backend" yaml:"backend"`
	Dir           string `toml:"dir" yaml:"dir"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	TTL           string `toml:"ttl" yaml:"ttl"`
	MemoryEntries int    `toml:"memory_entries" yaml:"memory_entries"`
}

// Load reads configuration from a TOML or YAML file. An empty path or a
// missing file yields DefaultConfig.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (must be .toml, .yaml or .yml)", filepath.Base(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", filepath.Base(path))
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := heatmap.DefaultOptions()
	pc := plot.DefaultConfig()
	modeBar := pc.DisplayModeBar
	return &Config{
		Heatmap: HeatmapConfig{
			XKey: opts.XKey,
			YKey: opts.YKey,
			ZKey: opts.ZKey,
			PKey: opts.PKey,
		},
		Labels: LabelsConfig{
			X:            opts.Labels.X,
			Y:            opts.Labels.Y,
			Z:            opts.Labels.Z,
			Significance: opts.Labels.Significance,
		},
		Render: RenderConfig{
			TickBudget:     dendrogram.DefaultTickBudget,
			ExportFormat:   pc.ToImageButtonOptions.Format,
			ExportFilename: pc.ToImageButtonOptions.Filename,
			ExportWidth:    pc.ToImageButtonOptions.Width,
			ExportHeight:   pc.ToImageButtonOptions.Height,
			ExportScale:    pc.ToImageButtonOptions.Scale,
			DisplayLogo:    pc.DisplayLogo,
			ModeBar:        &modeBar,
			Colormap:       "rdbu",
		},
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           cache.TTLPlot.String(),
			MemoryEntries: cache.DefaultMemoryEntries,
		},
	}
}

func applyDefaults(cfg *Config) {
	d := DefaultConfig()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&cfg.Heatmap.XKey, d.Heatmap.XKey)
	fill(&cfg.Heatmap.YKey, d.Heatmap.YKey)
	fill(&cfg.Heatmap.ZKey, d.Heatmap.ZKey)
	fill(&cfg.Heatmap.PKey, d.Heatmap.PKey)

	fill(&cfg.Labels.X, d.Labels.X)
	fill(&cfg.Labels.Y, d.Labels.Y)
	fill(&cfg.Labels.Z, d.Labels.Z)
	fill(&cfg.Labels.Significance, d.Labels.Significance)

	if cfg.Render.TickBudget == 0 {
		cfg.Render.TickBudget = d.Render.TickBudget
	}
	fill(&cfg.Render.ExportFormat, d.Render.ExportFormat)
	fill(&cfg.Render.ExportFilename, d.Render.ExportFilename)
	if cfg.Render.ExportWidth == 0 {
		cfg.Render.ExportWidth = d.Render.ExportWidth
	}
	if cfg.Render.ExportHeight == 0 {
		cfg.Render.ExportHeight = d.Render.ExportHeight
	}
	if cfg.Render.ExportScale == 0 {
		cfg.Render.ExportScale = d.Render.ExportScale
	}
	if cfg.Render.ModeBar == nil {
		cfg.Render.ModeBar = d.Render.ModeBar
	}
	fill(&cfg.Render.Colormap, d.Render.Colormap)

	fill(&cfg.Cache.Backend, d.Cache.Backend)
	fill(&cfg.Cache.TTL, d.Cache.TTL)
	if cfg.Cache.MemoryEntries == 0 {
		cfg.Cache.MemoryEntries = d.Cache.MemoryEntries
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if err := c.HeatmapOptions().Validate(); err != nil {
		return err
	}
	if err := errors.ValidateTickBudget(c.Render.TickBudget); err != nil {
		return err
	}
	if !plot.ValidExportFormats[c.Render.ExportFormat] {
		return errors.NewValidationError("export_format", "must be one of: svg, png, jpeg, webp (got "+c.Render.ExportFormat+")")
	}
	if _, ok := colormap.Get(c.Render.Colormap); !ok {
		return errors.NewValidationError("colormap", "must be one of: "+strings.Join(colormap.Names(), ", ")+" (got "+c.Render.Colormap+")")
	}
	if !ValidBackends[c.Cache.Backend] {
		return errors.NewValidationError("cache.backend", "must be one of: file, memory, redis, none (got "+c.Cache.Backend+")")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.NewValidationError("cache.redis_addr", "required for the redis backend")
	}
	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return errors.NewValidationError("cache.ttl", err.Error())
	}
	return nil
}

// LoadEnv reads envFile into the process environment when it exists and
// applies the HEATMATRIX_* overrides to c.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", envFile)
		}
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	return c.Validate()
}

// HeatmapOptions returns the layout options described by c.
func (c *Config) HeatmapOptions() heatmap.Options {
	h, l := c.Heatmap, c.Labels
	return heatmap.DefaultOptions().WithOverrides(heatmap.Overrides{
		XKey:            nonEmpty(h.XKey),
		YKey:            nonEmpty(h.YKey),
		ZKey:            nonEmpty(h.ZKey),
		PKey:            nonEmpty(h.PKey),
		SortColumn:      &h.SortColumn,
		ShowAnnotations: &h.ShowAnnotations,
		ShowDendrogram:  &h.ShowDendrogram,
		PValueMin:       &h.PValueMin,
		PValueMax:       &h.PValueMax,
		XLabel:          nonEmpty(l.X),
		YLabel:          nonEmpty(l.Y),
		ZLabel:          nonEmpty(l.Z),
		PLabel:          nonEmpty(l.Significance),
	})
}

// PlotConfig returns the renderer settings described by c.
func (c *Config) PlotConfig() plot.Config {
	pc := plot.DefaultConfig()
	r := c.Render
	if r.ModeBar != nil {
		pc.DisplayModeBar = *r.ModeBar
	}
	pc.DisplayLogo = r.DisplayLogo
	pc.ToImageButtonOptions = plot.ImageOptions{
		Format:   r.ExportFormat,
		Filename: r.ExportFilename,
		Height:   r.ExportHeight,
		Width:    r.ExportWidth,
		Scale:    r.ExportScale,
	}
	return pc
}

// CacheTTL returns the cache entry lifetime. An invalid value yields the
// default plot TTL.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return cache.TTLPlot
	}
	return d
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
