// Package compose assembles decoded tiles into a single canvas and encodes
// the finished canvas into its output container.
//
// # Canvas Ownership
//
// A Canvas belongs to exactly one run. It starts fully transparent, is
// mutated in place as tiles arrive, and is read once at the end by the
// encoder. The pipeline serializes all Place calls on a single consumer,
// so the canvas itself carries no locking.
//
// # Output Kinds
//
//   - tiff: lossless, deflate-compressed, alpha channel preserved
//   - png:  lossless, alpha channel preserved
//   - jpg:  lossy; the canvas is flattened onto an opaque white background
//     (its alpha channel acting as the blend mask) and encoded at quality 95
//
// Regions whose tiles failed stay transparent in the lossless kinds and
// come out white in the lossy kind.
package compose
