package pipeline

// Sink receives run notifications. The pipeline calls it from the drain
// goroutine only and makes no assumption about where the events land — a
// logger, a UI thread, a test recorder. Implementations that hand events
// to another goroutine do their own marshaling.
type Sink interface {
	// Progress reports overall completion as a percentage in [0, 100].
	Progress(percent float64)

	// Status reports a short human-readable description of the current
	// phase, suitable for a status line.
	Status(message string)

	// Log reports a free-text log line.
	Log(line string)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) Progress(float64) {}
func (NopSink) Status(string)    {}
func (NopSink) Log(string)       {}
