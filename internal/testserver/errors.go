package testserver

import (
	"fmt"

	"google.golang.org/grpc/codes"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
)

func notFound(kind, id string) error {
	return graknerrors.NewStatus(codes.NotFound, graknerrors.ReasonNotFound,
		fmt.Sprintf("%s '%s' does not exist", kind, id),
		map[string]string{"concept": id})
}

func schemaViolation(format string, args ...any) error {
	return graknerrors.NewStatus(codes.FailedPrecondition, graknerrors.ReasonSchemaViolation, fmt.Sprintf(format, args...), nil)
}

func invalidArgument(format string, args ...any) error {
	return graknerrors.NewStatus(codes.InvalidArgument, graknerrors.ReasonInvalidArgument, fmt.Sprintf(format, args...), nil)
}

func transactionClosed() error {
	return graknerrors.NewStatus(codes.FailedPrecondition, graknerrors.ReasonTransactionClosed, "the transaction has been closed", nil)
}

func sessionClosed(id string) error {
	return graknerrors.NewStatus(codes.FailedPrecondition, graknerrors.ReasonSessionClosed,
		fmt.Sprintf("session '%s' does not exist", id), map[string]string{"session": id})
}
