package iiif

import "fmt"

// DescriptorFetchError reports a failure to retrieve or read info.json:
// a transport error, a timeout, a non-2xx status, or a body that is not
// valid JSON.
type DescriptorFetchError struct {
	URL string
	Err error
}

func (e *DescriptorFetchError) Error() string {
	return fmt.Sprintf("fetch descriptor %s: %v", e.URL, e.Err)
}

func (e *DescriptorFetchError) Unwrap() error { return e.Err }

// DescriptorFormatError reports an info.json document that parsed but is
// missing a required field or carries an unusable value for one.
type DescriptorFormatError struct {
	Reason string
}

func (e *DescriptorFormatError) Error() string {
	return "invalid descriptor: " + e.Reason
}

// TileFetchError reports a failure to retrieve or decode a single tile
// region.
type TileFetchError struct {
	URL string
	Err error
}

func (e *TileFetchError) Error() string {
	return fmt.Sprintf("fetch tile %s: %v", e.URL, e.Err)
}

func (e *TileFetchError) Unwrap() error { return e.Err }
