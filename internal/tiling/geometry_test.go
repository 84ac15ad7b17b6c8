package tiling

import (
	"math"
	"testing"

	"github.com/ww357/iiif-downloader/internal/iiif"
)

func TestResolve_NoAdvertisedTiles(t *testing.T) {
	tests := []struct {
		name      string
		preferred int
		wantSize  int
	}{
		{"server decides", 0, DefaultTileSize},
		{"explicit preference", 512, 512},
		{"minimum allowed", MinTileSize, MinTileSize},
		{"maximum allowed", MaxTileSize, MaxTileSize},
		{"below minimum falls back", 32, DefaultTileSize},
		{"above maximum falls back", 8192, DefaultTileSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &iiif.Descriptor{Width: 10000, Height: 10000}
			g := Resolve(d, tt.preferred)
			if g.TileWidth != tt.wantSize || g.TileHeight != tt.wantSize {
				t.Errorf("got %dx%d, want %dx%d", g.TileWidth, g.TileHeight, tt.wantSize, tt.wantSize)
			}
			if g.Overlap != 0 {
				t.Errorf("overlap: got %d, want 0", g.Overlap)
			}
		})
	}
}

func TestResolve_PrefersScaleFactorOne(t *testing.T) {
	d := &iiif.Descriptor{
		Width:  10000,
		Height: 10000,
		Tiles: []iiif.TileSpec{
			{Width: 256, Height: 256, ScaleFactors: []int{2, 4}},
			{Width: 512, Height: 512, Overlap: 1, ScaleFactors: []int{1, 2}},
		},
	}

	g := Resolve(d, 0)
	if g.TileWidth != 512 || g.TileHeight != 512 {
		t.Errorf("got %dx%d, want 512x512 (first spec serving scale factor 1)",
			g.TileWidth, g.TileHeight)
	}
	if g.Overlap != 1 {
		t.Errorf("overlap: got %d, want 1", g.Overlap)
	}
}

func TestResolve_FallsBackToFirstSpec(t *testing.T) {
	d := &iiif.Descriptor{
		Width:  10000,
		Height: 10000,
		Tiles: []iiif.TileSpec{
			{Width: 256, Height: 256, ScaleFactors: []int{2, 4}},
			{Width: 512, Height: 512, ScaleFactors: []int{8}},
		},
	}

	g := Resolve(d, 0)
	if g.TileWidth != 256 || g.TileHeight != 256 {
		t.Errorf("got %dx%d, want 256x256 (first spec)", g.TileWidth, g.TileHeight)
	}
}

func TestResolve_SpecFieldFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		spec  iiif.TileSpec
		wantW int
		wantH int
	}{
		{"height falls back to width", iiif.TileSpec{Width: 300, ScaleFactors: []int{1}}, 300, 300},
		{"no width at all", iiif.TileSpec{ScaleFactors: []int{1}}, fallbackTileWidth, fallbackTileWidth},
		{"height only", iiif.TileSpec{Height: 128, ScaleFactors: []int{1}}, fallbackTileWidth, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &iiif.Descriptor{Width: 10000, Height: 10000, Tiles: []iiif.TileSpec{tt.spec}}
			g := Resolve(d, 0)
			if g.TileWidth != tt.wantW || g.TileHeight != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", g.TileWidth, g.TileHeight, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResolve_MaxAreaClamp(t *testing.T) {
	// Documented scenario: naive 1024x1024 (area 1,048,576) against
	// maxArea 500,000 scales by sqrt(500000/1048576) to 707x707.
	d := &iiif.Descriptor{Width: 10000, Height: 10000, MaxArea: 500000}
	g := Resolve(d, 0)

	if g.TileWidth != g.TileHeight {
		t.Errorf("square tile should stay square: got %dx%d", g.TileWidth, g.TileHeight)
	}
	if area := g.TileWidth * g.TileHeight; area > 500000 {
		t.Errorf("clamped area %d exceeds maxArea 500000", area)
	}
	if g.TileWidth != 707 {
		t.Errorf("clamped width: got %d, want 707", g.TileWidth)
	}
}

func TestResolve_MaxAreaPreservesAspectRatio(t *testing.T) {
	d := &iiif.Descriptor{
		Width:   10000,
		Height:  10000,
		MaxArea: 500000,
		Tiles:   []iiif.TileSpec{{Width: 2048, Height: 1024, ScaleFactors: []int{1}}},
	}
	g := Resolve(d, 0)

	if area := g.TileWidth * g.TileHeight; area > 500000 {
		t.Errorf("clamped area %d exceeds maxArea", area)
	}

	naive := 2048.0 / 1024.0
	got := float64(g.TileWidth) / float64(g.TileHeight)
	if math.Abs(got-naive) > 0.01 {
		t.Errorf("aspect ratio: got %.4f, want %.4f within rounding", got, naive)
	}
}

func TestResolve_MaxAreaNoClampNeeded(t *testing.T) {
	d := &iiif.Descriptor{
		Width:   10000,
		Height:  10000,
		MaxArea: 2_000_000,
	}
	g := Resolve(d, 0)
	if g.TileWidth != DefaultTileSize || g.TileHeight != DefaultTileSize {
		t.Errorf("got %dx%d, want untouched %dx%d",
			g.TileWidth, g.TileHeight, DefaultTileSize, DefaultTileSize)
	}
}

func TestResolve_MaxAreaFloorOnePixel(t *testing.T) {
	d := &iiif.Descriptor{
		Width:   100,
		Height:  100,
		MaxArea: 1,
		Tiles:   []iiif.TileSpec{{Width: 3, Height: 3, ScaleFactors: []int{1}}},
	}
	g := Resolve(d, 0)
	if g.TileWidth < 1 || g.TileHeight < 1 {
		t.Errorf("dimensions must floor at 1 pixel: got %dx%d", g.TileWidth, g.TileHeight)
	}
}

func TestResolve_NegativeOverlapNormalized(t *testing.T) {
	d := &iiif.Descriptor{
		Width:  100,
		Height: 100,
		Tiles:  []iiif.TileSpec{{Width: 64, Overlap: -2, ScaleFactors: []int{1}}},
	}
	if g := Resolve(d, 0); g.Overlap != 0 {
		t.Errorf("overlap: got %d, want 0", g.Overlap)
	}
}
