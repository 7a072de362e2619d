package capture

import (
	"image"
	"testing"
	"time"

	"github.com/soocke/droidcast-go/config"
)

func TestSourceFromConfig_ADB(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ADBPath = "/opt/platform-tools/adb"
	cfg.Serial = "R58M123"
	cfg.DisplayID = "2"
	src, ok := SourceFromConfig(cfg, nil).(*ADBSource)
	if !ok {
		t.Fatalf("expected *ADBSource")
	}
	if src.Path != cfg.ADBPath || src.Serial != "R58M123" || src.DisplayID != "2" || src.Timeout != 15*time.Second {
		t.Fatalf("unexpected source %+v", src)
	}
}

func TestSourceFromConfig_Desktop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source = config.SourceDesktop
	cfg.SetRegion(image.Rect(0, 0, 200, 100))
	region := func() image.Rectangle { return image.Rect(5, 5, 10, 10) }
	src, ok := SourceFromConfig(cfg, region).(*DesktopSource)
	if !ok {
		t.Fatalf("expected *DesktopSource")
	}
	if src.Rect != image.Rect(0, 0, 200, 100) || src.Region == nil || src.Region() != image.Rect(5, 5, 10, 10) {
		t.Fatalf("unexpected source %+v", src)
	}
}

func TestLoopOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.IntervalMs = 80
	cfg.DecodeUpstream = false
	opts := LoopOptionsFromConfig(cfg)
	if opts.Interval != 80*time.Millisecond || !opts.DeferDecode || opts.DecodeErrorsFatal {
		t.Fatalf("opts = %+v", opts)
	}
}
