// Package logging builds the CLI's zap logger and adapts it onto the
// pipeline's event sink.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given mode. "release" produces structured
// production output; anything else gets the colored development console.
func New(mode string) (*zap.Logger, error) {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return config.Build()
}

// Sink routes pipeline events onto a zap logger. Status and log lines
// surface at info level; per-tile progress stays at debug so release
// output is not flooded by large runs.
type Sink struct {
	log *zap.SugaredLogger
}

// NewSink wraps a logger into a pipeline event sink.
func NewSink(log *zap.Logger) *Sink {
	return &Sink{log: log.Sugar()}
}

func (s *Sink) Progress(percent float64) { s.log.Debugf("progress %.1f%%", percent) }
func (s *Sink) Status(message string)    { s.log.Info(message) }
func (s *Sink) Log(line string)          { s.log.Info(line) }
