package tiling

// Region is one rectangular fetch unit: a zero-based top-left offset into
// the full image plus the extent of this region. Regions at the right and
// bottom edges are truncated to the image bounds.
type Region struct {
	X, Y          int
	Width, Height int
}

// Plan partitions the [0,imageWidth) x [0,imageHeight) rectangle into
// regions of at most the geometry's tile extent.
//
// The result exactly tiles the image: regions are pairwise disjoint and
// their union covers every pixel. Order is row-major (top row left to
// right, then the next row down); this is only the fetch submission order,
// compositing does not depend on it.
func Plan(imageWidth, imageHeight int, g Geometry) []Region {
	regions := make([]Region, 0,
		((imageWidth+g.TileWidth-1)/g.TileWidth)*((imageHeight+g.TileHeight-1)/g.TileHeight))

	for y := 0; y < imageHeight; y += g.TileHeight {
		h := min(g.TileHeight, imageHeight-y)
		for x := 0; x < imageWidth; x += g.TileWidth {
			w := min(g.TileWidth, imageWidth-x)
			regions = append(regions, Region{X: x, Y: y, Width: w, Height: h})
		}
	}
	return regions
}
