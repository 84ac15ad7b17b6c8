package iiif

import (
	"fmt"
	"strings"
)

// NormalizeServiceURL canonicalizes a user-supplied IIIF URL into a service
// base URL: any query string or fragment is removed, a trailing /info.json
// is stripped, and so is any trailing slash.
//
// The function is pure and total, and applying it twice gives the same
// result as applying it once. Plain string surgery is deliberate here:
// IIIF identifiers often contain percent-escaped slashes (e.g.
// "12807%2F128076885") that a URL parser would re-encode.
func NormalizeServiceURL(raw string) string {
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	for {
		trimmed := strings.TrimRight(raw, "/")
		trimmed = strings.TrimSuffix(trimmed, "/info.json")
		if trimmed == raw {
			return raw
		}
		raw = trimmed
	}
}

// InfoURL returns the descriptor URL for a canonical service base URL.
func InfoURL(base string) string {
	return base + "/info.json"
}

// RegionURL returns the request URL for one image region: the region
// rectangle at full (unscaled) size, no rotation, default quality.
//
// Tiles always travel as JPEG. Virtually every image server supports it,
// and the bytes are re-encoded into the final output anyway, so the tile
// transport format does not leak into the result.
func RegionURL(base string, x, y, w, h int) string {
	return fmt.Sprintf("%s/%d,%d,%d,%d/full/0/default.jpg", base, x, y, w, h)
}
