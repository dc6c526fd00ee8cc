package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Logger is the logger used by every package of the client. It discards
// everything until SetGlobalLogger is called.
var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

// SetGlobalLogger replaces the package logger and makes it the default
// logger returned for contexts without one.
func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

func With() zerolog.Context { return Logger.With() }

func Err(err error) *zerolog.Event { return Logger.Err(err) }

func Trace() *zerolog.Event { return Logger.Trace() }

func Debug() *zerolog.Event { return Logger.Debug() }

func Info() *zerolog.Event { return Logger.Info() }

func Warn() *zerolog.Event { return Logger.Warn() }

func Error() *zerolog.Event { return Logger.Error() }

// Ctx returns the logger carried by ctx, or the package logger.
func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }

// ForSession returns a child of parent tagging every event with the session
// id and database.
func ForSession(parent zerolog.Logger, sessionID, database string) zerolog.Logger {
	return parent.With().Str("session", sessionID).Str("database", database).Logger()
}

// ForTransaction returns a child of parent tagging every event with the
// transaction id and type.
func ForTransaction(parent zerolog.Logger, transactionID string, transactionType string) zerolog.Logger {
	return parent.With().Str("transaction", transactionID).Str("type", transactionType).Logger()
}
