package grpchelpers

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func bufDialer(lis *bufconn.Listener) grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestDialAndWaitReady(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	go func() {
		_ = s.Serve(lis)
	}()
	defer s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := DialAndWait(ctx, "passthrough:///bufnet", backoff.NewConstantBackOff(10*time.Millisecond),
		bufDialer(lis), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	require.NoError(t, conn.Close())
}

func TestDialAndWaitGivesUp(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	require.NoError(t, lis.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := DialAndWait(ctx, "passthrough:///bufnet", backoff.NewConstantBackOff(10*time.Millisecond),
		bufDialer(lis), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.Error(t, err)
}
