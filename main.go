package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soocke/droidcast-go/app"
	"github.com/soocke/droidcast-go/config"
	"github.com/soocke/droidcast-go/debug"
	"github.com/soocke/droidcast-go/domain/capture"
	"github.com/soocke/droidcast-go/ui/images"
)

var version = "0.1.0"

var flags struct {
	cfgFile    string
	adb        string
	serial     string
	display    string
	interval   int
	source     string
	ui         string
	keepAspect bool
	autoStart  bool
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:          "droidcast",
	Short:        "Mirror an Android device screen into a desktop window",
	Long:         "droidcast repeatedly runs `adb exec-out screencap -p` and shows the frames in a window.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("starting", "version", version, "source", cfg.Source, "ui", cfg.UI, "config", path)
		return app.Run(ctx, cfg, path, logger)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <file.png>",
	Short: "Capture a single frame and write it as PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		return snapshot(cmd.Context(), cfg, args[0], logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("droidcast v%s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.cfgFile, "config", "", "config file (default is "+config.DefaultPath()+")")
	pf.StringVar(&flags.adb, "adb", "", "adb executable")
	pf.StringVarP(&flags.serial, "serial", "s", "", "device serial (adb -s)")
	pf.StringVar(&flags.display, "display", "", "display id passed to screencap -d")
	pf.StringVar(&flags.source, "source", "", "frame source: adb or desktop")
	pf.BoolVar(&flags.debug, "debug", false, "debug logging and runtime stats")

	f := rootCmd.Flags()
	f.IntVar(&flags.interval, "interval", 0, "milliseconds between captures")
	f.StringVar(&flags.ui, "ui", "", "display backend: tk or ebiten")
	f.BoolVar(&flags.keepAspect, "keep-aspect", false, "letterbox instead of stretching")
	f.BoolVar(&flags.autoStart, "autostart", true, "start mirroring when the window opens")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config, applies flags that were set explicitly and builds
// the logger.
func setup(cmd *cobra.Command) (*config.Config, string, *slog.Logger, error) {
	path := flags.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, nil, fmt.Errorf("load config %s: %w", path, err)
	}
	applyFlags(cmd, cfg)
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}
	return cfg, path, logger, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("adb") {
		cfg.ADBPath = flags.adb
	}
	if changed("serial") {
		cfg.Serial = flags.serial
	}
	if changed("display") {
		cfg.DisplayID = flags.display
	}
	if changed("source") {
		cfg.Source = flags.source
	}
	if changed("debug") {
		cfg.Debug = flags.debug
	}
	if changed("interval") {
		cfg.IntervalMs = flags.interval
	}
	if changed("ui") {
		cfg.UI = flags.ui
	}
	if changed("keep-aspect") {
		cfg.KeepAspect = flags.keepAspect
	}
	if changed("autostart") {
		cfg.AutoStart = flags.autoStart
	}
}

func snapshot(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) error {
	src := capture.SourceFromConfig(cfg, nil)
	start := time.Now()
	data, err := src.Capture(ctx)
	if err != nil {
		return err
	}
	frame, err := capture.DecodeFrame(data)
	if err != nil {
		return err
	}
	defer frame.Release()
	if err := images.WritePNG(path, frame.Image()); err != nil {
		return err
	}
	logger.Info("snapshot written",
		"path", path,
		"width", frame.Width(),
		"height", frame.Height(),
		"received", humanize.IBytes(uint64(len(data))),
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
