package grpchelpers

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
)

// Dial creates a new client connection to the target. The connection is
// established lazily on the first call.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, opts...)
}

// WaitForReady blocks until the connection is ready, polling its state on the
// given backoff policy until the policy gives up or ctx is done.
func WaitForReady(ctx context.Context, conn *grpc.ClientConn, policy backoff.BackOff) error {
	conn.Connect()
	return backoff.Retry(func() error {
		state := conn.GetState()
		if state == connectivity.Ready {
			return nil
		}
		conn.Connect()
		return fmt.Errorf("connection to %s is %s", conn.Target(), state)
	}, backoff.WithContext(policy, ctx))
}

// DialAndWait creates a new client connection to the target and blocks until
// the connection is ready.
func DialAndWait(ctx context.Context, target string, policy backoff.BackOff, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	conn, err := Dial(target, opts...)
	if err != nil {
		return nil, err
	}
	if err := WaitForReady(ctx, conn, policy); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}
