// Package iiif speaks the client side of the IIIF Image API.
//
// It covers everything that touches the wire: canonicalizing a user-supplied
// service URL, fetching and parsing the info.json descriptor, synthesizing
// region-request URLs, and retrieving individual tile regions as decoded
// pixel buffers.
//
// # Descriptor Tolerance
//
// Image servers in the wild are sloppy about info.json. Numeric fields are
// accepted as JSON numbers or numeric strings, tile specs may use the legacy
// tileWidth/tileHeight field names, and a malformed tile-spec entry is
// skipped rather than failing the whole document. Only the required width
// and height fields are validated strictly; everything else degrades to
// defaults.
//
// # Error Taxonomy
//
//   - DescriptorFetchError: network failure, timeout, non-2xx status, or an
//     unparseable body while retrieving info.json.
//   - DescriptorFormatError: info.json parsed but is missing a positive
//     width or height.
//   - TileFetchError: network, status, or decode failure for one tile
//     region. Callers decide whether a tile failure is fatal.
//
// All three unwrap to their underlying cause where one exists.
//
// # Concurrency
//
// A single Client is intended to be shared: it wraps one http.Client whose
// connection pool is safe for concurrent use by any number of fetch workers.
package iiif
