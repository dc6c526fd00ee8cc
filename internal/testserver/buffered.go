package testserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

// BufferedTarget is the address to dial a server started by ServeBuffered.
const BufferedTarget = "passthrough:///bufnet"

const bufferSize = 1024 * 1024

// ServeBuffered serves on an in-memory listener until the test ends and
// returns the dial option reaching it. Connections must be closed before the
// test ends.
func (s *Server) ServeBuffered(t testing.TB, opts ...grpc.ServerOption) grpc.DialOption {
	t.Helper()

	lis := bufconn.Listen(bufferSize)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, lis, opts...)
	}()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}
