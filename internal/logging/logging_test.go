package logging

import (
	"testing"

	"github.com/ww357/iiif-downloader/internal/pipeline"
)

var _ pipeline.Sink = (*Sink)(nil)

func TestNew(t *testing.T) {
	for _, mode := range []string{"debug", "release", ""} {
		logger, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", mode, err)
		}
		if logger == nil {
			t.Fatalf("New(%q) returned nil logger", mode)
		}
	}
}

func TestSink_DoesNotPanic(t *testing.T) {
	logger, err := New("release")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sink := NewSink(logger)
	sink.Status("Downloading 4 tiles...")
	sink.Log("progress: 4/4 tiles (100.0%)")
	sink.Progress(100)
}
