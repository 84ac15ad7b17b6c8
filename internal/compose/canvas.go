package compose

import (
	"image"
	"image/draw"
)

// Canvas is the pixel buffer accumulating decoded tiles at their image
// offsets. All pixels start fully transparent.
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas allocates a transparent width x height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Place copies the tile pixel-for-pixel into the canvas with its top-left
// corner at (x, y). The copy is a source write: tile pixels replace canvas
// pixels entirely, transparency included. Planned regions are disjoint, so
// no pixel is ever written twice.
func (c *Canvas) Place(tile image.Image, x, y int) {
	b := tile.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, dst, tile, b.Min, draw.Src)
}

// Image exposes the underlying buffer for encoding.
func (c *Canvas) Image() *image.NRGBA { return c.img }
