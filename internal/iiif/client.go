package iiif

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

// Per-phase request timeouts. Tile payloads are much larger than the JSON
// descriptor, so tile requests get the longer budget.
const (
	descriptorTimeout = 30 * time.Second
	tileTimeout       = 60 * time.Second
)

// Client fetches descriptors and tile regions from an IIIF image service.
//
// One Client is meant to be shared by all fetch workers of a run: the
// wrapped http.Client and its connection pool are safe for concurrent use,
// and reusing connections matters when a run issues hundreds of tile
// requests against the same host.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client backed by a fresh connection pool. Timeouts
// are applied per request, not on the http.Client, because descriptor and
// tile fetches use different budgets.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

// setHeaders applies a browser-like header set. Some image servers refuse
// requests that identify as generic HTTP libraries.
func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

func (c *Client) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// FetchDescriptor retrieves {base}/info.json and parses it.
//
// Network, timeout, status, and JSON-syntax failures surface as
// *DescriptorFetchError; a document missing a positive width or height
// surfaces as *DescriptorFormatError.
func (c *Client) FetchDescriptor(ctx context.Context, base string) (*Descriptor, error) {
	url := InfoURL(base)

	body, err := c.get(ctx, url, descriptorTimeout)
	if err != nil {
		return nil, &DescriptorFetchError{URL: url, Err: err}
	}

	d, err := ParseDescriptor(body)
	if err != nil {
		var formatErr *DescriptorFormatError
		if errors.As(err, &formatErr) {
			return nil, err
		}
		return nil, &DescriptorFetchError{URL: url, Err: err}
	}
	return d, nil
}

// FetchTile retrieves one region and decodes it into a 4-channel buffer of
// exactly width x height pixels. Servers occasionally return a buffer
// larger than the requested region; the decoded image is cropped to the
// region's top-left width x height sub-rectangle in that case.
//
// All failures surface as *TileFetchError.
func (c *Client) FetchTile(ctx context.Context, url string, width, height int) (*image.NRGBA, error) {
	body, err := c.get(ctx, url, tileTimeout)
	if err != nil {
		return nil, &TileFetchError{URL: url, Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, &TileFetchError{URL: url, Err: fmt.Errorf("failed to decode tile: %w", err)}
	}

	// Clone forces every decoder's native type (YCbCr, paletted, ...)
	// into the NRGBA representation the canvas is built from.
	tile := imaging.Clone(img)
	if tile.Bounds().Dx() != width || tile.Bounds().Dy() != height {
		tile = imaging.Crop(tile, image.Rect(0, 0, width, height))
	}
	return tile, nil
}
