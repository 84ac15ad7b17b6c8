package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ww357/iiif-downloader/internal/compose"
	"github.com/ww357/iiif-downloader/internal/iiif"
	"github.com/ww357/iiif-downloader/internal/tiling"
)

// Bounds on the fetch worker pool.
const (
	MinWorkers     = 1
	MaxWorkers     = 16
	DefaultWorkers = 4
)

// logEvery spaces out per-tile progress log lines on large runs.
const logEvery = 25

// Options configures one run.
type Options struct {
	// ServiceURL is the IIIF service or info.json URL as the user gave it;
	// it is normalized before use.
	ServiceURL string

	// TileSize is the explicit tile-size preference in pixels, or 0 to
	// let the server decide.
	TileSize int

	// Workers bounds fetch concurrency. Values outside
	// [MinWorkers, MaxWorkers] are clamped; 0 means DefaultWorkers.
	Workers int

	// Client performs the HTTP work. A fresh client is created when nil.
	Client *iiif.Client

	// Sink receives progress, status, and log events. NopSink when nil.
	Sink Sink
}

type tileResult struct {
	region tiling.Region
	url    string
	tile   *image.NRGBA
	err    error
}

// Run executes one download and returns its Outcome.
//
// Fatal conditions — descriptor errors and a tile failure before any
// success — return a nil Outcome and the error. Cancellation returns a
// non-nil Outcome with Cancelled set and a nil error. Encoding is left to
// the caller, which owns the output format and destination.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	start := time.Now()

	sink := opts.Sink
	if sink == nil {
		sink = NopSink{}
	}
	client := opts.Client
	if client == nil {
		client = iiif.NewClient()
	}
	workers := opts.Workers
	if workers == 0 {
		workers = DefaultWorkers
	}
	workers = min(max(workers, MinWorkers), MaxWorkers)

	base := iiif.NormalizeServiceURL(opts.ServiceURL)
	sink.Status("Getting image information...")
	sink.Log("service URL: " + base)

	desc, err := client.FetchDescriptor(ctx, base)
	if err != nil {
		return nil, err
	}

	sink.Status(fmt.Sprintf("Image size: %d x %d pixels", desc.Width, desc.Height))
	sink.Log(fmt.Sprintf("image dimensions: %d x %d", desc.Width, desc.Height))

	geom := tiling.Resolve(desc, opts.TileSize)
	sink.Log(fmt.Sprintf("using tile size: %d x %d (overlap: %dpx)",
		geom.TileWidth, geom.TileHeight, geom.Overlap))
	if desc.MaxArea > 0 {
		sink.Log(fmt.Sprintf("respecting server maxArea: %d", desc.MaxArea))
	}

	regions := tiling.Plan(desc.Width, desc.Height, geom)
	total := len(regions)
	sink.Log(fmt.Sprintf("total tiles to download: %d", total))
	sink.Status(fmt.Sprintf("Downloading %d tiles...", total))

	canvas := compose.NewCanvas(desc.Width, desc.Height)

	workCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// Buffered to the region count so a worker's send never blocks after
	// the drain loop has stopped accepting results.
	results := make(chan tileResult, total)

	var group errgroup.Group
	group.SetLimit(workers)
	go func() {
		for _, r := range regions {
			region := r
			if workCtx.Err() != nil {
				break
			}
			group.Go(func() error {
				url := iiif.RegionURL(base, region.X, region.Y, region.Width, region.Height)
				tile, err := client.FetchTile(workCtx, url, region.Width, region.Height)
				results <- tileResult{region: region, url: url, tile: tile, err: err}
				return nil
			})
		}
		group.Wait()
		close(results)
	}()

	outcome := &Outcome{
		ImageWidth:   desc.Width,
		ImageHeight:  desc.Height,
		TotalRegions: total,
	}

	// Single-consumer drain: counters and canvas writes happen only here.
	for res := range results {
		if ctx.Err() != nil {
			stopWorkers()
			sink.Log("download cancelled by user")
			sink.Status("Download cancelled")
			outcome.Cancelled = true
			outcome.Elapsed = time.Since(start)
			return outcome, nil
		}

		if res.err != nil {
			// A failure before any success points at a systemic problem
			// (wrong URL, refused client) rather than one flaky tile.
			if outcome.Succeeded == 0 {
				stopWorkers()
				return nil, res.err
			}
			sink.Log(fmt.Sprintf("error downloading tile %s: %v", res.url, res.err))
			outcome.Failed = append(outcome.Failed, FailedRegion{
				Region: res.region,
				Reason: res.err.Error(),
			})
			continue
		}

		canvas.Place(res.tile, res.region.X, res.region.Y)
		outcome.Succeeded++

		percent := float64(outcome.Succeeded) / float64(total) * 100
		sink.Progress(percent)
		sink.Status(fmt.Sprintf("Downloaded %d/%d tiles", outcome.Succeeded, total))
		if outcome.Succeeded%logEvery == 0 || outcome.Succeeded == total {
			sink.Log(fmt.Sprintf("progress: %d/%d tiles (%.1f%%)",
				outcome.Succeeded, total, percent))
		}
	}

	outcome.Canvas = canvas
	outcome.Elapsed = time.Since(start)
	sink.Status("Download complete")
	return outcome, nil
}
