package config

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def := DefaultConfig()
	if cfg.ADBPath != def.ADBPath || cfg.IntervalMs != def.IntervalMs || cfg.Source != def.Source {
		t.Fatalf("expected defaults, got adb=%q interval=%d source=%q", cfg.ADBPath, cfg.IntervalMs, cfg.Source)
	}
	if cfg.Interval() != 50*time.Millisecond {
		t.Fatalf("default interval should be 50ms, got %v", cfg.Interval())
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"adb_path": "/opt/platform-tools/adb", "serial": "emulator-5554", "interval_ms": 120, "keep_aspect": true}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ADBPath != "/opt/platform-tools/adb" || cfg.Serial != "emulator-5554" || cfg.IntervalMs != 120 || !cfg.KeepAspect {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.MaxSurfaceW != DefaultConfig().MaxSurfaceW {
		t.Fatalf("expected default max surface width, got %d", cfg.MaxSurfaceW)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DROIDCAST_SERIAL", "R58M123")
	t.Setenv("DROIDCAST_INTERVAL_MS", "200")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Serial != "R58M123" || cfg.IntervalMs != 200 {
		t.Fatalf("env not applied: serial=%q interval=%d", cfg.Serial, cfg.IntervalMs)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg == nil || cfg.ADBPath != "adb" {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{
		Source:      "ftp",
		IntervalMs:  -5,
		UI:          "qt",
		WindowW:     10,
		WindowH:     2000,
		MaxSurfaceW: 0,
		MaxSurfaceH: 100,
		Scaler:      "lanczos",
	}
	_ = c.Validate()
	if c.Source != SourceADB || c.ADBPath != "adb" || c.IntervalMs != 50 || c.UI != UITk {
		t.Fatalf("bad normalisation: %+v", c)
	}
	if c.WindowW != 100 || c.MaxSurfaceW != 100 || c.MaxSurfaceH != 2000 {
		t.Fatalf("surface must cover window: w=%d maxW=%d maxH=%d", c.WindowW, c.MaxSurfaceW, c.MaxSurfaceH)
	}
	if c.Scaler != ScalerBilinear {
		t.Fatalf("unknown scaler should fall back to bilinear, got %q", c.Scaler)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	c := DefaultConfig()
	c.Serial = "abc"
	c.UI = UIEbiten
	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Serial != "abc" || got.UI != UIEbiten {
		t.Fatalf("saved values lost: %+v", got)
	}
}

func TestRegion(t *testing.T) {
	c := DefaultConfig()
	if !c.Region().Empty() {
		t.Fatalf("default region should be empty")
	}
	c.SetRegion(image.Rect(10, 20, 110, 70))
	if c.RegionW != 100 || c.RegionH != 50 || c.Region() != image.Rect(10, 20, 110, 70) {
		t.Fatalf("region = %v", c.Region())
	}
	c.SetRegion(image.Rectangle{})
	if c.RegionW != 0 || !c.Region().Empty() {
		t.Fatalf("clearing failed: %+v", c)
	}
}
