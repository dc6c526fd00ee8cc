package graknerrors

import (
	"errors"
	"fmt"
	"maps"

	"github.com/rs/zerolog"
)

// Kind classifies an error.
type Kind int

const (
	// Unknown is the kind of errors not produced by this module.
	Unknown Kind = iota

	// BadEncoding is a decode-time failure on an unrecognized wire
	// discriminant or a malformed message.
	BadEncoding

	// Transport is a connection-level failure.
	Transport

	// SchemaViolation is a server-reported violation of the schema's
	// consistency rules.
	SchemaViolation

	// NotFound is a server-reported reference to a concept that does not exist.
	NotFound

	// StaleHandle is an operation on a closed transaction or session.
	StaleHandle

	// Client is a malformed argument rejected before any request was sent.
	Client

	// Server is any other server-reported failure.
	Server
)

var kindNames = map[Kind]string{
	Unknown:         "unknown",
	BadEncoding:     "bad_encoding",
	Transport:       "transport",
	SchemaViolation: "schema_violation",
	NotFound:        "not_found",
	StaleHandle:     "stale_handle",
	Client:          "client",
	Server:          "server",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is an error raised by the client or reported by the server.
type Error struct {
	error
	kind     Kind
	code     string
	metadata map[string]string
}

// Kind returns the kind of the error.
func (err *Error) Kind() Kind {
	return err.kind
}

// Code returns the catalog code of the error, such as CON01, or the server's
// reason for server-reported errors.
func (err *Error) Code() string {
	return err.code
}

// Unwrap returns the inner, wrapped error.
func (err *Error) Unwrap() error {
	return err.error
}

// DetailsMetadata returns the metadata for details for this error.
func (err *Error) DetailsMetadata() map[string]string {
	return maps.Clone(err.metadata)
}

// MarshalZerologObject implements zerolog object marshalling.
func (err *Error) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Stringer("kind", err.kind).Str("code", err.code)
	for k, v := range err.metadata {
		e.Str(k, v)
	}
}

// WithMetadata returns a copy of the error carrying the additional metadata.
func (err *Error) WithMetadata(key, value string) *Error {
	metadata := maps.Clone(err.metadata)
	if metadata == nil {
		metadata = make(map[string]string, 1)
	}
	metadata[key] = value
	return &Error{err.error, err.kind, err.code, metadata}
}

// AsError returns the error as an *Error, if applicable.
func AsError(err error) (*Error, bool) {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr, true
	}
	return nil, false
}

// KindOf returns the kind of the error, or Unknown.
func KindOf(err error) Kind {
	if gerr, ok := AsError(err); ok {
		return gerr.kind
	}
	return Unknown
}

// IsKind returns whether the error is of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Wrap returns an error of the given kind wrapping cause.
func Wrap(kind Kind, code string, cause error) *Error {
	return &Error{error: cause, kind: kind, code: code}
}
