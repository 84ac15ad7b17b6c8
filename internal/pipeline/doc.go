// Package pipeline runs one download from descriptor to finished canvas.
//
// A run is strictly one-shot: fetch the descriptor, resolve the tile
// geometry, plan the regions, fetch every region under a bounded worker
// pool, composite tiles into the canvas, and report an Outcome. No state
// survives between runs.
//
// # Concurrency Model
//
// Fetching and decoding happen on an errgroup worker pool bounded by the
// configured worker count. Completed results flow through a channel into a
// single drain loop on the calling goroutine; that loop is the only writer
// of the canvas and the progress counters, so neither needs locking.
// Completion order is arbitrary and irrelevant — planned regions are
// disjoint.
//
// # Failure And Cancellation Policy
//
// A tile failure before any success aborts the whole run: an immediate
// failure almost always means a wrong URL or a refused client rather than
// a flaky tile, and silently producing a blank image would hide that. Once
// one tile has landed, later failures are logged, recorded in the outcome,
// and their canvas areas stay transparent.
//
// Cancellation is cooperative via the run context, checked once per
// drained result. In-flight requests are not forcibly interrupted, but the
// same context is attached to every tile request, so they abort on their
// own; either way their results are discarded and the run reports
// cancelled, which is not an error.
package pipeline
