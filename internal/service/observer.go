package service

import (
	"lys-checkout/internal/evaluator"

	"github.com/rs/zerolog"
)

// NewLoggingObserver returns an evaluator observer that logs each catalogue fallback.
// A missing MOQ means the product has no requirement and is logged at debug level;
// other fallbacks are logged as warnings.
func NewLoggingObserver(logger zerolog.Logger) evaluator.Observer {
	l := logger.With().Str("component", "evaluator").Logger()
	return evaluator.ObserverFunc(func(field evaluator.Field, id string) {
		event := l.Warn()
		if field == evaluator.FieldMOQ {
			event = l.Debug()
		}
		event.
			Str("field", string(field)).
			Str("id", id).
			Msg("catalogue value missing, using default")
	})
}
