package auth

import (
	"context"
	"testing"

	"github.com/authzed/grpcutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
)

func TestRequirePresharedKey(t *testing.T) {
	authenticate := RequirePresharedKey("first", "second")

	for _, tc := range []struct {
		name  string
		md    metadata.MD
		code  codes.Code
		valid bool
	}{
		{name: "first key", md: metadata.Pairs("authorization", "bearer first"), valid: true},
		{name: "second key", md: metadata.Pairs("authorization", "Bearer second"), valid: true},
		{name: "unknown key", md: metadata.Pairs("authorization", "bearer third"), code: codes.PermissionDenied},
		{name: "prefix of a key", md: metadata.Pairs("authorization", "bearer firs"), code: codes.PermissionDenied},
		{name: "empty token", md: metadata.Pairs("authorization", "bearer "), code: codes.Unauthenticated},
		{name: "other scheme", md: metadata.Pairs("authorization", "basic first"), code: codes.Unauthenticated},
		{name: "no header", md: metadata.MD{}, code: codes.Unauthenticated},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := metadata.NewIncomingContext(context.Background(), tc.md)
			authenticated, err := authenticate(ctx)
			if tc.valid {
				require.NoError(t, err)
				require.Equal(t, ctx, authenticated)
				return
			}
			grpcutil.RequireStatus(t, tc.code, err)
			require.Nil(t, authenticated)
		})
	}
}
