package instrumentation

import "github.com/rs/zerolog"

// LogListener writes each event as a structured log line. Failed calls are
// logged at warn level, everything else at debug.
func LogListener(logger zerolog.Logger) Listener {
	return func(e Event) {
		ev := logger.Debug()
		if e.Err != nil {
			ev = logger.Warn().Err(e.Err)
		}
		if e.HasStatus() {
			ev = ev.Int("status", e.HTTPStatus)
		}
		ev.Str("method", e.Method).
			Str("url", e.URL).
			Int64("duration_ms", e.DurationMS()).
			Msg("Likee API request")
	}
}
