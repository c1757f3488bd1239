package nlp

import (
	"time"

	"go.uber.org/zap"
)

// Engine is the stateless front door to the intent/slot pipeline. It holds
// no mutable state; the logger is the only dependency.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Analyze normalizes raw text, classifies it and extracts the slot record
// for the winning intent. It never fails: malformed or empty input yields a
// low-confidence conversation result. Identical (text, now) pairs produce
// identical results.
func (e *Engine) Analyze(text string, now time.Time) Result {
	normalized := Normalize(text)
	cls := Classify(normalized)

	result := Result{Classification: cls}
	switch cls.Intent {
	case IntentSchedule:
		result.Schedule = ExtractScheduleSlots(normalized, now)
	case IntentQuery:
		result.Query = ExtractQuerySlots(normalized)
	case IntentUpdate:
		result.Update = ExtractUpdateSlots(normalized, now)
	case IntentDelete:
		result.Delete = ExtractDeleteSlots(normalized)
	}

	e.logger.Debug("analyzed message",
		zap.String("intent", string(cls.Intent)),
		zap.Float64("confidence", cls.Confidence),
		zap.String("method", string(cls.Method)))

	return result
}
