package graknerrors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// ErrorDomain is the domain set on ErrorInfo details of server errors.
const ErrorDomain = "grakn"

// Reasons reported by the server.
const (
	ReasonSchemaViolation   = "SCHEMA_VIOLATION"
	ReasonNotFound          = "NOT_FOUND"
	ReasonTransactionClosed = "TRANSACTION_CLOSED"
	ReasonSessionClosed     = "SESSION_CLOSED"
	ReasonInvalidArgument   = "INVALID_ARGUMENT"
	ReasonUnimplemented     = "UNIMPLEMENTED"
	ReasonInternal          = "INTERNAL"
)

var reasonKinds = map[string]Kind{
	ReasonSchemaViolation:   SchemaViolation,
	ReasonNotFound:          NotFound,
	ReasonTransactionClosed: StaleHandle,
	ReasonSessionClosed:     StaleHandle,
	ReasonInvalidArgument:   Client,
}

func kindForCode(code codes.Code) Kind {
	switch code {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return Transport
	case codes.NotFound:
		return NotFound
	case codes.InvalidArgument, codes.FailedPrecondition, codes.AlreadyExists:
		return SchemaViolation
	default:
		return Server
	}
}

func kindFor(code codes.Code, reason string) Kind {
	if kind, ok := reasonKinds[reason]; ok {
		return kind
	}
	return kindForCode(code)
}

// NewStatus returns a gRPC status error carrying an ErrorInfo with the reason
// and metadata.
func NewStatus(code codes.Code, reason, message string, metadata map[string]string) error {
	st := status.New(code, message)
	withDetails, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   ErrorDomain,
		Metadata: metadata,
	})
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// FromStatus converts a gRPC error into an *Error. Errors that are not gRPC
// statuses are classified as transport failures.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsError(err); ok {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return Wrap(Transport, "", err)
	}

	reason := ""
	var metadata map[string]string
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			reason = info.GetReason()
			metadata = info.GetMetadata()
			break
		}
	}

	return &Error{
		error:    err,
		kind:     kindFor(st.Code(), reason),
		code:     reason,
		metadata: metadata,
	}
}

// FromProto converts a server-reported request error into an *Error.
func FromProto(perr *protocol.Error) error {
	if perr == nil {
		return nil
	}

	code := codes.Code(perr.Code)
	return &Error{
		error:    status.Error(code, perr.Message),
		kind:     kindFor(code, perr.Reason),
		code:     perr.Reason,
		metadata: perr.Metadata,
	}
}

// ToProto converts an error into its wire form, preserving the reason and
// metadata of gRPC status errors.
func ToProto(err error) *protocol.Error {
	st, ok := status.FromError(err)
	if !ok {
		return &protocol.Error{
			Code:    uint32(codes.Unknown),
			Reason:  ReasonInternal,
			Message: err.Error(),
		}
	}

	perr := &protocol.Error{
		Code:    uint32(st.Code()),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			perr.Reason = info.GetReason()
			perr.Metadata = info.GetMetadata()
			break
		}
	}
	return perr
}

// IsCanceled returns whether the error stems from a canceled context or
// stream.
func IsCanceled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	return status.Code(err) == codes.Canceled
}
