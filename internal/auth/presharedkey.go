// Package auth authenticates calls to the in-memory server.
package auth

import (
	"context"
	"crypto/subtle"

	grpcauth "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequirePresharedKey requires calls to carry one of the keys as a bearer
// token.
func RequirePresharedKey(keys ...string) grpcauth.AuthFunc {
	return func(ctx context.Context) (context.Context, error) {
		token, err := grpcauth.AuthFromMD(ctx, "bearer")
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "missing preshared key: %s", status.Convert(err).Message())
		}
		if token == "" {
			return nil, status.Error(codes.Unauthenticated, "missing preshared key")
		}

		for _, key := range keys {
			if subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1 {
				return ctx, nil
			}
		}
		return nil, status.Error(codes.PermissionDenied, "invalid preshared key")
	}
}
