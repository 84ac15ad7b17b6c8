// Package tiling derives the tile geometry for a run and partitions the
// full image extent into fetchable regions. Everything here is pure
// integer math over a parsed descriptor; no I/O.
package tiling

import (
	"math"

	"github.com/ww357/iiif-downloader/internal/iiif"
)

// Bounds on the user's explicit tile-size preference, and the size used
// when the server advertises nothing and the user expressed no preference.
const (
	MinTileSize     = 64
	MaxTileSize     = 4096
	DefaultTileSize = 1024
)

// fallbackTileWidth is the last-resort width for an advertised tile spec
// that carries no usable width field under either name.
const fallbackTileWidth = 512

// Geometry is the resolved tile extent used to partition the image.
type Geometry struct {
	TileWidth  int
	TileHeight int

	// Overlap is the server-advertised tile overlap in pixels. It is
	// reported for logging only; planned regions never overlap.
	Overlap int
}

// Resolve derives the tile geometry from a descriptor and the user's
// tile-size preference (explicit pixels, or 0 to let the server decide).
//
// When the server advertises tile specs, the first spec serving scale
// factor 1 wins, falling back to the first spec outright. Missing fields
// degrade: width falls back to 512, height to the width. Without any
// specs, the user preference applies when it sits in [MinTileSize,
// MaxTileSize], else DefaultTileSize.
//
// Finally the server's maxArea limit is enforced: an oversized tile is
// scaled down by sqrt(maxArea/area) in both dimensions, preserving the
// tile's aspect ratio, with a floor of one pixel per dimension.
//
// Resolve never fails on a descriptor that passed parsing.
func Resolve(d *iiif.Descriptor, preferred int) Geometry {
	return clampArea(advertisedGeometry(d, preferred), d.MaxArea)
}

func advertisedGeometry(d *iiif.Descriptor, preferred int) Geometry {
	if len(d.Tiles) == 0 {
		size := DefaultTileSize
		if preferred >= MinTileSize && preferred <= MaxTileSize {
			size = preferred
		}
		return Geometry{TileWidth: size, TileHeight: size}
	}

	chosen := d.Tiles[0]
	for _, t := range d.Tiles {
		if t.HasScaleFactor(1) {
			chosen = t
			break
		}
	}

	w := chosen.Width
	if w <= 0 {
		w = fallbackTileWidth
	}
	h := chosen.Height
	if h <= 0 {
		h = w
	}
	overlap := chosen.Overlap
	if overlap < 0 {
		overlap = 0
	}
	return Geometry{TileWidth: w, TileHeight: h, Overlap: overlap}
}

func clampArea(g Geometry, maxArea int) Geometry {
	if maxArea <= 0 {
		return g
	}
	area := g.TileWidth * g.TileHeight
	if area <= maxArea {
		return g
	}
	scale := math.Sqrt(float64(maxArea) / float64(area))
	g.TileWidth = max(1, int(float64(g.TileWidth)*scale))
	g.TileHeight = max(1, int(float64(g.TileHeight)*scale))
	return g
}
