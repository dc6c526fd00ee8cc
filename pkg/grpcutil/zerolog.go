// Package grpcutil adapts zerolog to the gRPC logging interceptors used on both
// ends of the Grakn service.
package grpcutil

import (
	"context"
	"time"

	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
)

var (
	durationFieldOption = grpclog.WithDurationField(func(duration time.Duration) grpclog.Fields {
		return grpclog.Fields{"grpc.time_ms", duration.Milliseconds()}
	})

	traceIDFieldOption = grpclog.WithFieldsFromContext(func(ctx context.Context) grpclog.Fields {
		if span := trace.SpanContextFromContext(ctx); span.IsSampled() {
			return grpclog.Fields{"traceID", span.TraceID().String()}
		}
		return nil
	})

	finishOnlyOption = grpclog.WithLogOnEvents(grpclog.FinishCall)
)

// ClientCodeToLevel logs expected outcomes of Grakn calls at debug. Schema
// violations and missing concepts are ordinary answers from the client's
// point of view.
func ClientCodeToLevel(code codes.Code) grpclog.Level {
	switch code {
	case codes.OK, codes.Canceled, codes.NotFound, codes.AlreadyExists,
		codes.InvalidArgument, codes.FailedPrecondition:
		return grpclog.LevelDebug
	case codes.Unavailable, codes.DeadlineExceeded:
		return grpclog.LevelWarn
	default:
		return grpclog.LevelError
	}
}

// ZerologUnaryClientInterceptor logs every finished unary call through l.
func ZerologUnaryClientInterceptor(l zerolog.Logger) grpc.UnaryClientInterceptor {
	return grpclog.UnaryClientInterceptor(
		zerologger(l),
		grpclog.WithLevels(ClientCodeToLevel),
		finishOnlyOption,
		durationFieldOption,
		traceIDFieldOption,
	)
}

// ZerologStreamClientInterceptor logs every finished transaction stream
// through l.
func ZerologStreamClientInterceptor(l zerolog.Logger) grpc.StreamClientInterceptor {
	return grpclog.StreamClientInterceptor(
		zerologger(l),
		grpclog.WithLevels(ClientCodeToLevel),
		finishOnlyOption,
		durationFieldOption,
		traceIDFieldOption,
	)
}

// ZerologUnaryInterceptor maps server-side gRPC logging to Zerolog according
// to the provided code-mapping function.
func ZerologUnaryInterceptor(l zerolog.Logger, mappingfn grpclog.CodeToLevel) grpc.UnaryServerInterceptor {
	return grpclog.UnaryServerInterceptor(
		zerologger(l),
		grpclog.WithLevels(mappingfn),
		finishOnlyOption,
		durationFieldOption,
		traceIDFieldOption,
	)
}

// ZerologStreamInterceptor maps server-side gRPC logging to Zerolog according
// to the provided code-mapping function.
func ZerologStreamInterceptor(l zerolog.Logger, mappingfn grpclog.CodeToLevel) grpc.StreamServerInterceptor {
	return grpclog.StreamServerInterceptor(
		zerologger(l),
		grpclog.WithLevels(mappingfn),
		finishOnlyOption,
		durationFieldOption,
		traceIDFieldOption,
	)
}

func zerologger(l zerolog.Logger) grpclog.Logger {
	return grpclog.LoggerFunc(func(ctx context.Context, lvl grpclog.Level, msg string, fields ...any) {
		l := l.With().Fields(fields).Logger()

		switch lvl {
		case grpclog.LevelDebug:
			l.Debug().Msg(msg)
		case grpclog.LevelInfo:
			l.Info().Msg(msg)
		case grpclog.LevelWarn:
			l.Warn().Msg(msg)
		case grpclog.LevelError:
			l.Error().Msg(msg)
		default:
			l.Error().Int("level", int(lvl)).Msg("unknown error level - falling back to info level")
			l.Info().Msg(msg)
		}
	})
}
