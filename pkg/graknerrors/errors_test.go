package graknerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/authzed/grpcutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

func TestCatalogMessages(t *testing.T) {
	err := BadEncodingMessage.New(42)
	require.Equal(t, "[CON01] The encoding '42' was not recognised.", err.Error())
	require.Equal(t, BadEncoding, err.Kind())
	require.Equal(t, "CON01", err.Code())

	wrapped := fmt.Errorf("decoding answer: %w", err)
	require.True(t, IsKind(wrapped, BadEncoding))
	require.False(t, IsKind(wrapped, Transport))
	require.Equal(t, Unknown, KindOf(errors.New("plain")))
	require.False(t, IsKind(nil, Unknown))
}

func TestCatalogWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ConnectionInterrupted.Wrap(cause)
	require.ErrorIs(t, err, cause)
	require.Equal(t, Transport, err.Kind())
}

func TestWithMetadataDoesNotMutate(t *testing.T) {
	original := MissingLabel.New()
	withLabel := original.WithMetadata("label", "person")

	require.Empty(t, original.DetailsMetadata())
	require.Equal(t, map[string]string{"label": "person"}, withLabel.DetailsMetadata())
}

func TestFromStatusUsesReason(t *testing.T) {
	err := NewStatus(codes.FailedPrecondition, ReasonNotFound, "type `person` not found", map[string]string{"label": "person"})
	grpcutil.RequireStatus(t, codes.FailedPrecondition, err)

	converted := FromStatus(err)
	gerr, ok := AsError(converted)
	require.True(t, ok)
	require.Equal(t, NotFound, gerr.Kind())
	require.Equal(t, ReasonNotFound, gerr.Code())
	require.Equal(t, "person", gerr.DetailsMetadata()["label"])
}

func TestFromStatusFallsBackToCode(t *testing.T) {
	tcs := []struct {
		code     codes.Code
		expected Kind
	}{
		{codes.Unavailable, Transport},
		{codes.DeadlineExceeded, Transport},
		{codes.NotFound, NotFound},
		{codes.InvalidArgument, SchemaViolation},
		{codes.PermissionDenied, Server},
		{codes.Internal, Server},
	}

	for _, tc := range tcs {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := FromStatus(status.Error(tc.code, "failure"))
			require.Equal(t, tc.expected, KindOf(err))
		})
	}

	require.Equal(t, Transport, KindOf(FromStatus(errors.New("eof"))))
	require.NoError(t, FromStatus(nil))
}

func TestProtoRoundTrip(t *testing.T) {
	err := NewStatus(codes.InvalidArgument, ReasonSchemaViolation, "cannot own", map[string]string{"owner": "person"})
	perr := ToProto(err)
	require.Equal(t, &protocol.Error{
		Code:     uint32(codes.InvalidArgument),
		Reason:   ReasonSchemaViolation,
		Message:  "cannot own",
		Metadata: map[string]string{"owner": "person"},
	}, perr)

	back := FromProto(perr)
	require.Equal(t, SchemaViolation, KindOf(back))
	grpcutil.RequireStatus(t, codes.InvalidArgument, back)
	require.NoError(t, FromProto(nil))
}

func TestToProtoPlainError(t *testing.T) {
	perr := ToProto(errors.New("boom"))
	require.Equal(t, ReasonInternal, perr.Reason)
	require.Equal(t, Server, KindOf(FromProto(perr)))
}

func TestMustBug(t *testing.T) {
	require.True(t, isInTests())
	require.Panics(t, func() {
		_ = MustBugf("some error")
	})
}
