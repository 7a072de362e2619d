package config

import (
	"encoding/json"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Source names accepted by Config.Source.
const (
	SourceADB     = "adb"
	SourceDesktop = "desktop"
)

// UI backends accepted by Config.UI.
const (
	UITk     = "tk"
	UIEbiten = "ebiten"
)

// Scaler names accepted by Config.Scaler.
const (
	ScalerNearest  = "nearest"
	ScalerBilinear = "bilinear"
	ScalerCatmull  = "catmullrom"
)

// Config holds runtime configuration for the capture pipeline and the window.
// Fields may be loaded from a JSON file, the environment (DROIDCAST_*) and
// overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" mapstructure:"debug"`

	// Frame source
	Source         string `json:"source" mapstructure:"source"`
	ADBPath        string `json:"adb_path" mapstructure:"adb_path"`
	Serial         string `json:"serial" mapstructure:"serial"`
	DisplayID      string `json:"display_id" mapstructure:"display_id"`
	CaptureTimeout int    `json:"capture_timeout_ms" mapstructure:"capture_timeout_ms"`

	// Desktop source region; zero width or height grabs the whole screen.
	RegionX int `json:"region_x" mapstructure:"region_x"`
	RegionY int `json:"region_y" mapstructure:"region_y"`
	RegionW int `json:"region_w" mapstructure:"region_w"`
	RegionH int `json:"region_h" mapstructure:"region_h"`

	// Capture loop
	AutoStart         bool `json:"auto_start" mapstructure:"auto_start"`
	IntervalMs        int  `json:"interval_ms" mapstructure:"interval_ms"`
	DecodeUpstream    bool `json:"decode_upstream" mapstructure:"decode_upstream"`
	DecodeErrorsFatal bool `json:"decode_errors_fatal" mapstructure:"decode_errors_fatal"`

	// Window and surface
	UI          string `json:"ui" mapstructure:"ui"`
	WindowW     int    `json:"window_w" mapstructure:"window_w"`
	WindowH     int    `json:"window_h" mapstructure:"window_h"`
	MaxSurfaceW int    `json:"max_surface_w" mapstructure:"max_surface_w"`
	MaxSurfaceH int    `json:"max_surface_h" mapstructure:"max_surface_h"`
	KeepAspect  bool   `json:"keep_aspect" mapstructure:"keep_aspect"`
	Scaler      string `json:"scaler" mapstructure:"scaler"`
	DarkMode    bool   `json:"dark_mode" mapstructure:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		Source:            SourceADB,
		ADBPath:           "adb",
		Serial:            "",
		DisplayID:         "",
		CaptureTimeout:    15000,
		AutoStart:         true,
		IntervalMs:        50,
		DecodeUpstream:    true,
		DecodeErrorsFatal: false,
		UI:                UITk,
		WindowW:           480,
		WindowH:           900,
		MaxSurfaceW:       1440,
		MaxSurfaceH:       2560,
		KeepAspect:        false,
		Scaler:            ScalerBilinear,
		DarkMode:          false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))
	if c.Source != SourceADB && c.Source != SourceDesktop {
		c.Source = SourceADB
	}
	c.ADBPath = strings.TrimSpace(c.ADBPath)
	if c.ADBPath == "" {
		c.ADBPath = "adb"
	}
	c.Serial = strings.TrimSpace(c.Serial)
	c.DisplayID = strings.TrimSpace(c.DisplayID)
	if c.CaptureTimeout < 0 {
		c.CaptureTimeout = 0
	}
	if c.RegionW < 0 || c.RegionH < 0 {
		c.RegionW, c.RegionH = 0, 0
	}
	if c.IntervalMs <= 0 {
		c.IntervalMs = 50
	}
	if c.IntervalMs > 10000 {
		c.IntervalMs = 10000
	}
	c.UI = strings.ToLower(strings.TrimSpace(c.UI))
	if c.UI != UITk && c.UI != UIEbiten {
		c.UI = UITk
	}
	if c.WindowW < 100 {
		c.WindowW = 100
	}
	if c.WindowH < 100 {
		c.WindowH = 100
	}
	if c.MaxSurfaceW < c.WindowW {
		c.MaxSurfaceW = c.WindowW
	}
	if c.MaxSurfaceH < c.WindowH {
		c.MaxSurfaceH = c.WindowH
	}
	switch c.Scaler {
	case ScalerNearest, ScalerBilinear, ScalerCatmull:
	default:
		c.Scaler = ScalerBilinear
	}
	return nil
}

// Interval returns the fixed inter-frame sleep.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Timeout returns the per-capture timeout; zero disables it.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.CaptureTimeout) * time.Millisecond
}

// Region returns the desktop capture rectangle (empty for the whole screen).
func (c *Config) Region() image.Rectangle {
	if c.RegionW <= 0 || c.RegionH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.RegionX, c.RegionY, c.RegionX+c.RegionW, c.RegionY+c.RegionH)
}

// SetRegion stores r; an empty rectangle clears the region.
func (c *Config) SetRegion(r image.Rectangle) {
	if r.Empty() {
		c.RegionX, c.RegionY, c.RegionW, c.RegionH = 0, 0, 0, 0
		return
	}
	c.RegionX, c.RegionY = r.Min.X, r.Min.Y
	c.RegionW, c.RegionH = r.Dx(), r.Dy()
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	p, err := xdg.ConfigFile(filepath.Join("droidcast", "config.json"))
	if err != nil {
		return "droidcast.json"
	}
	return p
}

// Load reads configuration from the given JSON file path and the DROIDCAST_*
// environment. If the file does not exist it returns DefaultConfig() with
// environment overrides applied. On parse error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("DROIDCAST")
	v.AutomaticEnv()
	// Seed defaults so AutomaticEnv can resolve every key during Unmarshal.
	seed, err := toMap(cfg)
	if err != nil {
		return cfg, err
	}
	for k, val := range seed {
		v.SetDefault(k, val)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func toMap(c *Config) (map[string]any, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
