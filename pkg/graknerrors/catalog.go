package graknerrors

import "fmt"

// ErrorMessage is an entry of the fixed message catalog.
type ErrorMessage struct {
	code     string
	template string
	kind     Kind
}

// Code returns the catalog code.
func (m ErrorMessage) Code() string {
	return m.code
}

// Message renders the message with its code prefix.
func (m ErrorMessage) Message(args ...any) string {
	return fmt.Sprintf("[%s] %s", m.code, fmt.Sprintf(m.template, args...))
}

// New returns an error rendering the message with the given arguments.
func (m ErrorMessage) New(args ...any) *Error {
	return &Error{
		error: fmt.Errorf("%s", m.Message(args...)),
		kind:  m.kind,
		code:  m.code,
	}
}

// Wrap returns an error rendering the message and wrapping cause.
func (m ErrorMessage) Wrap(cause error, args ...any) *Error {
	return &Error{
		error: fmt.Errorf("%s: %w", m.Message(args...), cause),
		kind:  m.kind,
		code:  m.code,
	}
}

// Client messages.
var (
	TransactionClosed     = ErrorMessage{"CLI01", "The transaction has been closed and no further operation is allowed.", StaleHandle}
	SessionClosed         = ErrorMessage{"CLI02", "The session has been closed and no further operation is allowed.", StaleHandle}
	UnableToConnect       = ErrorMessage{"CLI03", "Unable to connect to the server at '%s'.", Transport}
	MissingResponse       = ErrorMessage{"CLI04", "The required field '%s' of the response was not set.", BadEncoding}
	UnknownRequestID      = ErrorMessage{"CLI05", "Received a response with unknown request id '%s'.", BadEncoding}
	TransactionReadOnly   = ErrorMessage{"CLI06", "Commit is not allowed in a read transaction.", Client}
	MissingDatabaseName   = ErrorMessage{"CLI07", "Database name must not be empty.", Client}
	ConnectionInterrupted = ErrorMessage{"CLI08", "The connection to the server was interrupted.", Transport}
	UnencodableRequest    = ErrorMessage{"CLI09", "The request could not be encoded.", BadEncoding}
)

// Concept messages.
var (
	BadEncodingMessage = ErrorMessage{"CON01", "The encoding '%v' was not recognised.", BadEncoding}
	BadValueType       = ErrorMessage{"CON02", "The value type '%v' was not recognised.", BadEncoding}
	BadNumeric         = ErrorMessage{"CON03", "The numeric answer carries no value.", BadEncoding}
	MissingLabel       = ErrorMessage{"CON04", "Type label must not be empty.", Client}
	MissingIID         = ErrorMessage{"CON05", "Thing IID must not be empty.", Client}
	ValueTypeMismatch  = ErrorMessage{"CON06", "A value of type '%v' cannot be used with attribute type '%s' of value type '%v'.", Client}
	RegexOnNonString   = ErrorMessage{"CON07", "Regular expressions are only allowed on attribute types of value type STRING, not '%v'.", Client}
	MissingConcept     = ErrorMessage{"CON08", "The concept message holds neither a thing nor a type.", BadEncoding}
	MissingArgument    = ErrorMessage{"CON09", "The argument '%s' must not be nil.", Client}
	InvalidRemote      = ErrorMessage{"CON10", "The concept '%s' cannot be converted to the requested remote kind.", Client}
	NonFiniteDouble    = ErrorMessage{"CON11", "The double value '%v' is not finite.", Client}
	InvalidValue       = ErrorMessage{"CON12", "A value of value type '%v' is not a valid attribute value.", Client}
)

// Query messages.
var (
	EmptyQuery = ErrorMessage{"QRY01", "The query must not be empty.", Client}
)
