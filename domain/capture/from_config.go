package capture

import (
	"image"

	"github.com/soocke/droidcast-go/config"
)

// SourceFromConfig builds the frame source selected by cfg.Source. region is
// consulted by the desktop source on every grab and may be nil.
func SourceFromConfig(cfg *config.Config, region func() image.Rectangle) FrameSource {
	if cfg.Source == config.SourceDesktop {
		return &DesktopSource{Rect: cfg.Region(), Region: region}
	}
	return &ADBSource{
		Path:      cfg.ADBPath,
		Serial:    cfg.Serial,
		DisplayID: cfg.DisplayID,
		Timeout:   cfg.Timeout(),
	}
}

// LoopOptionsFromConfig maps the loop-related settings.
func LoopOptionsFromConfig(cfg *config.Config) LoopOptions {
	return LoopOptions{
		Interval:          cfg.Interval(),
		DeferDecode:       !cfg.DecodeUpstream,
		DecodeErrorsFatal: cfg.DecodeErrorsFatal,
	}
}
