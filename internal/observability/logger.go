package observability

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger returns the global logger tagged with a component name. It reads
// log.Logger on every call so it follows later logging.Apply calls.
func Logger(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

// ObserveCodec runs fn, records its outcome and logs failures. fn returns the
// size of the payload it produced or consumed.
func ObserveCodec(codec, op, typeName string, fn func() (int, error)) error {
	start := time.Now()
	size, err := fn()
	elapsed := time.Since(start)
	RecordCodec(codec, op, size, elapsed, err)

	logger := Logger(codec)
	event := logger.Trace()
	if err != nil {
		event = logger.Debug().Err(err)
	}
	event.
		Str("op", op).
		Str("type", typeName).
		Int("bytes", size).
		Dur("duration", elapsed).
		Msg("codec")
	return err
}
