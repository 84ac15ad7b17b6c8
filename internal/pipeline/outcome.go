package pipeline

import (
	"time"

	"github.com/ww357/iiif-downloader/internal/compose"
	"github.com/ww357/iiif-downloader/internal/tiling"
)

// FailedRegion records one region whose fetch failed after the run had
// already produced at least one successful tile.
type FailedRegion struct {
	Region tiling.Region
	Reason string
}

// Outcome is the terminal report of one run.
type Outcome struct {
	// ImageWidth and ImageHeight are the full image extent from the
	// descriptor.
	ImageWidth  int
	ImageHeight int

	// TotalRegions is the number of planned fetch regions; Succeeded
	// counts those that arrived and were composited.
	TotalRegions int
	Succeeded    int

	// Failed lists regions skipped under the partial-failure policy.
	// Their canvas areas remain transparent.
	Failed []FailedRegion

	// Cancelled is set when the run stopped on a cancellation request.
	// Cancellation is a distinct terminal state, not a failure.
	Cancelled bool

	// Canvas holds the assembled image. Nil when the run was cancelled.
	Canvas *compose.Canvas

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}
