package graph

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/music-gateway/internal/domain"
)

// fieldError is what resolvers hand back to the engine. The message is the
// root cause and the kind travels in the error's extensions.
type fieldError struct {
	err  error
	kind domain.ErrorKind
}

func (e *fieldError) Error() string {
	return domain.Message(e.err)
}

func (e *fieldError) Unwrap() error {
	return e.err
}

func (e *fieldError) Extensions() map[string]any {
	return map[string]any{"kind": string(e.kind)}
}

func fail(ctx context.Context, err error) error {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal || kind == domain.KindUpstream {
		slog.ErrorContext(
			ctx, "field failed",
			slog.String("module", "graph"),
			slog.String("kind", string(kind)),
			slog.String("trace", trace.SpanContextFromContext(ctx).TraceID().String()),
			slog.String("error", err.Error()),
		)
	}
	return &fieldError{err: err, kind: kind}
}

type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value any) {
	slog.ErrorContext(
		ctx, "resolver panicked",
		slog.String("module", "graph"),
		slog.Any("panic", value),
	)
}
