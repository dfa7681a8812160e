package audit

import (
	"context"
	"errors"
	"log/slog"

	"allograft/internal/platform/middleware"
	"allograft/internal/sentinel"
	dErrors "allograft/pkg/domain-errors"
)

// Emitter is the interface for audit event emission. Satisfied by Publisher.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Recorder provides structured audit logging with event emission. Services use
// it to pair a text log line with the durable stream append.
type Recorder struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewRecorder creates a recorder. textLogger is optional; emitter is optional
// so unit tests can construct services without a stream.
func NewRecorder(textLogger *slog.Logger, emitter Emitter) *Recorder {
	return &Recorder{textLogger: textLogger, emitter: emitter}
}

// Record logs the transition and appends it to the stream. The device summary
// and request id are enriched from context. A nil emitter makes this a pure
// log call; an emitter failure propagates so the caller can abort.
func (r *Recorder) Record(ctx context.Context, action Action, actor, subject, detail string) error {
	requestID := middleware.GetRequestID(ctx)
	device := middleware.GetDevice(ctx)

	if r.textLogger != nil {
		r.textLogger.InfoContext(ctx, string(action),
			"actor", actor,
			"subject", subject,
			"detail", detail,
			"request_id", requestID,
			"log_type", "audit",
		)
	}

	if r.emitter == nil {
		return nil
	}
	err := r.emitter.Emit(ctx, Event{
		Actor:     actor,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
		Device:    device,
		RequestID: requestID,
	})
	if errors.Is(err, sentinel.ErrUnavailable) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "event stream unavailable")
	}
	return err
}
