package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/ww357/iiif-downloader/internal/compose"
	"github.com/ww357/iiif-downloader/internal/config"
	"github.com/ww357/iiif-downloader/internal/logging"
	"github.com/ww357/iiif-downloader/internal/pipeline"
	"github.com/ww357/iiif-downloader/internal/tiling"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("iiif-dl %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	cfg := config.New()

	fs := flag.NewFlagSet("iiif-dl", flag.ExitOnError)
	dir := fs.String("dir", cfg.Output.Dir, "destination directory (created if absent)")
	name := fs.String("name", cfg.Output.Name, "output file name, without extension")
	format := fs.String("format", cfg.Output.Format, "output format: tiff, png or jpg")
	tileSize := fs.Int("tile-size", cfg.Download.TileSize, "tile size in pixels (64-4096), 0 = server default")
	workers := fs.Int("workers", cfg.Download.Workers, "concurrent tile downloads (1-16)")
	mode := fs.String("log-mode", cfg.Log.Mode, "log mode: debug or release")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "iiif-dl - download a full-resolution image from an IIIF service")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: iiif-dl [options] <service-url>")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Example: iiif-dl https://map-view.nls.uk/iiif/2/12807%%2F128076885\n")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	serviceURL := fs.Arg(0)

	logger, err := logging.New(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(serviceURL, *dir, *name, *format, *tileSize, *workers, logger); err != nil {
		logger.Fatal("download failed", zap.Error(err))
	}
}

func run(serviceURL, dir, name, formatName string, tileSize, workers int, logger *zap.Logger) error {
	if name == "" {
		return fmt.Errorf("output file name must not be empty")
	}
	if tileSize != 0 && (tileSize < tiling.MinTileSize || tileSize > tiling.MaxTileSize) {
		return fmt.Errorf("tile size must be between %d and %d pixels",
			tiling.MinTileSize, tiling.MaxTileSize)
	}
	format, err := compose.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create destination directory: %w", err)
	}

	// Ctrl-C requests a cooperative cancel; the run winds down and reports
	// a cancelled outcome instead of dying mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcome, err := pipeline.Run(ctx, pipeline.Options{
		ServiceURL: serviceURL,
		TileSize:   tileSize,
		Workers:    workers,
		Sink:       logging.NewSink(logger),
	})
	if err != nil {
		return err
	}
	if outcome.Cancelled {
		logger.Warn("download cancelled, no file written")
		return nil
	}

	outputPath := filepath.Join(dir, name+"."+format.Extension())
	logger.Info("saving image", zap.String("path", outputPath))
	if err := compose.Save(outputPath, outcome.Canvas.Image(), format); err != nil {
		return err
	}

	logger.Info("download complete",
		zap.String("path", outputPath),
		zap.Int("width", outcome.ImageWidth),
		zap.Int("height", outcome.ImageHeight),
		zap.Int("tiles", outcome.TotalRegions),
		zap.Int("failed", len(outcome.Failed)),
		zap.String("format", string(format)),
		zap.Duration("elapsed", outcome.Elapsed),
	)
	for _, f := range outcome.Failed {
		logger.Warn("region left blank",
			zap.Int("x", f.Region.X), zap.Int("y", f.Region.Y),
			zap.Int("w", f.Region.Width), zap.Int("h", f.Region.Height),
			zap.String("reason", f.Reason))
	}
	return nil
}
