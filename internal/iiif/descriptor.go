package iiif

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Descriptor is the parsed info.json: the image's pixel dimensions plus the
// tiling capabilities the server advertises. It is built once per run and
// never mutated afterwards.
type Descriptor struct {
	// Width and Height are the full image extent in pixels. Both are
	// guaranteed positive by ParseDescriptor.
	Width  int
	Height int

	// Tiles holds the advertised tile geometries in server order. Empty
	// when the server advertises none.
	Tiles []TileSpec

	// MaxArea is the server's upper bound on pixels per requested region,
	// or 0 when the server declares no limit.
	MaxArea int
}

// TileSpec is one candidate tile geometry from the descriptor's tiles
// array. Zero values mean the server omitted the field; the geometry
// resolver applies the fallback chain.
type TileSpec struct {
	// Width is the tile width in pixels, taken from "width" with the
	// legacy "tileWidth" field as fallback.
	Width int

	// Height is the tile height in pixels, taken from "height" with the
	// legacy "tileHeight" field as fallback. 0 when unspecified.
	Height int

	// Overlap is the advertised tile overlap in pixels. Informational:
	// region requests use non-overlapping tiling regardless.
	Overlap int

	// ScaleFactors lists the downscale factors this spec serves.
	ScaleFactors []int
}

// HasScaleFactor reports whether the spec advertises the given factor.
func (t TileSpec) HasScaleFactor(factor int) bool {
	for _, sf := range t.ScaleFactors {
		if sf == factor {
			return true
		}
	}
	return false
}

// flexInt unmarshals a JSON value that servers encode inconsistently as a
// number, a numeric string, or null. Anything unusable becomes 0 instead
// of an error; required-field validation happens at the descriptor level.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	*f = flexInt(v)
	return nil
}

type rawTileSpec struct {
	Width        flexInt   `json:"width"`
	TileWidth    flexInt   `json:"tileWidth"`
	Height       flexInt   `json:"height"`
	TileHeight   flexInt   `json:"tileHeight"`
	Overlap      flexInt   `json:"overlap"`
	ScaleFactors []flexInt `json:"scaleFactors"`
}

type rawDescriptor struct {
	Width   flexInt           `json:"width"`
	Height  flexInt           `json:"height"`
	Tiles   []json.RawMessage `json:"tiles"`
	MaxArea flexInt           `json:"maxArea"`
}

// ParseDescriptor parses an info.json body.
//
// Width and height must be present and coercible to positive integers; a
// violation returns *DescriptorFormatError. A body that is not valid JSON
// returns the decoding error unchanged. Malformed entries in the tiles
// array are skipped rather than failing the document.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var raw rawDescriptor
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if raw.Width <= 0 || raw.Height <= 0 {
		return nil, &DescriptorFormatError{
			Reason: "width and height must be positive integers",
		}
	}

	d := &Descriptor{
		Width:   int(raw.Width),
		Height:  int(raw.Height),
		MaxArea: int(raw.MaxArea),
	}

	for _, entry := range raw.Tiles {
		var rt rawTileSpec
		if err := json.Unmarshal(entry, &rt); err != nil {
			continue
		}
		spec := TileSpec{
			Width:   int(rt.Width),
			Height:  int(rt.Height),
			Overlap: int(rt.Overlap),
		}
		if spec.Width == 0 {
			spec.Width = int(rt.TileWidth)
		}
		if spec.Height == 0 {
			spec.Height = int(rt.TileHeight)
		}
		for _, sf := range rt.ScaleFactors {
			spec.ScaleFactors = append(spec.ScaleFactors, int(sf))
		}
		d.Tiles = append(d.Tiles, spec)
	}

	return d, nil
}
