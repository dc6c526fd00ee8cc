package cmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/internal/testserver"
)

// TestingConfig configures the in-memory server.
type TestingConfig struct {
	Address      string
	Network      string
	PresharedKey string
}

func RegisterTestingFlags(cmd *cobra.Command, config *TestingConfig) {
	cmd.Flags().StringVar(&config.Address, "grpc-addr", ":1729", "address to listen on to serve gRPC")
	cmd.Flags().StringVar(&config.Network, "grpc-network", "tcp", `network type to serve gRPC ("tcp", "tcp4", "tcp6", "unix")`)
	cmd.Flags().StringVar(&config.PresharedKey, "grpc-preshared-key", "", "preshared key to require for authenticated requests, empty disables authentication")
}

// Complete adapts the TestingConfig into a server and the listener it serves.
func (c *TestingConfig) Complete() (*testserver.Server, net.Listener, error) {
	lis, err := net.Listen(c.Network, c.Address)
	if err != nil {
		return nil, nil, err
	}
	opts := []testserver.Option{testserver.WithLogger(logging.Logger)}
	if c.PresharedKey != "" {
		opts = append(opts, testserver.WithPresharedKey(c.PresharedKey))
	}
	return testserver.NewServer(opts...), lis, nil
}

func NewTestingCommand(programName string, config *TestingConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve-testing",
		Short: "serve an in-memory Grakn server",
		Long:  "An in-memory server keeping every database in memory. Queries are not evaluated; the concept API is fully served.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, lis, err := config.Complete()
			if err != nil {
				return err
			}

			signalctx := SignalContext(context.Background())
			logging.Info().Str("addr", lis.Addr().String()).Str("program", programName).Msg("serving in-memory server")
			return srv.Run(signalctx, lis)
		},
	}
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext(ctx context.Context) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(signals)
		select {
		case sig := <-signals:
			logging.Info().Stringer("signal", sig).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}
