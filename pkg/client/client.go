package client

import (
	"context"
	"errors"
	"sync"

	authzedgrpcutil "github.com/authzed/grpcutil"
	"github.com/cenkalti/backoff/v4"
	"github.com/creasty/defaults"
	"github.com/jzelinskie/stringz"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/flyingsilverfin/grakn-client-go/internal/grpchelpers"
	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/grpcutil"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// Client is a connection to a Grakn server. It is safe for concurrent use.
type Client struct {
	address string
	config  Config
	log     zerolog.Logger
	conn    *grpc.ClientConn
	grakn   protocol.GraknClient

	databases *DatabaseManager

	mu       sync.Mutex
	closed   bool
	sessions map[*Session]struct{}
}

// New connects to the server at address, or DefaultAddress if address is
// empty.
func New(address string, opts ...Option) (*Client, error) {
	var config Config
	defaults.MustSet(&config)
	for _, opt := range opts {
		opt(&config)
	}

	address = stringz.DefaultEmpty(address, DefaultAddress)
	log := logging.Logger
	if config.Logger != nil {
		log = *config.Logger
	}

	conn, err := dial(address, config, log)
	if err != nil {
		return nil, graknerrors.UnableToConnect.Wrap(err, address)
	}

	c := &Client{
		address:  address,
		config:   config,
		log:      log,
		conn:     conn,
		grakn:    protocol.NewGraknClient(conn),
		sessions: make(map[*Session]struct{}),
	}
	c.databases = &DatabaseManager{grakn: c.grakn}

	log.Debug().Str("address", address).Msg("created client")
	return c, nil
}

func dial(address string, config Config, log zerolog.Logger) (*grpc.ClientConn, error) {
	opts := []grpc.DialOption{
		grpc.WithStatsHandler(otelgrpc.NewClientHandler(
			otelgrpc.WithPropagators(otel.GetTextMapPropagator()),
			otelgrpc.WithTracerProvider(otel.GetTracerProvider()),
		)),
		grpc.WithChainUnaryInterceptor(grpcutil.ZerologUnaryClientInterceptor(log)),
		grpc.WithChainStreamInterceptor(grpcutil.ZerologStreamClientInterceptor(log)),
		grpc.WithDefaultCallOptions(protocol.CallOptions()...),
	}

	switch {
	case config.TLS != nil:
		opts = append(opts, grpc.WithTransportCredentials(credentials.NewTLS(config.TLS)))
		if config.BearerToken != "" {
			opts = append(opts, authzedgrpcutil.WithBearerToken(config.BearerToken))
		}
	default:
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if config.BearerToken != "" {
			opts = append(opts, authzedgrpcutil.WithInsecureBearerToken(config.BearerToken))
		}
	}
	opts = append(opts, config.DialOptions...)

	if config.ReadyTimeout <= 0 {
		return grpchelpers.Dial(address, opts...)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ReadyTimeout)
	defer cancel()
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = config.ReadyTimeout
	return grpchelpers.DialAndWait(ctx, address, policy, opts...)
}

// Address returns the address the client is connected to.
func (c *Client) Address() string { return c.address }

// Databases returns the manager of the server's databases.
func (c *Client) Databases() *DatabaseManager { return c.databases }

// IsOpen returns false once the client has been closed.
func (c *Client) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Close closes every open session and the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	sessions := c.sessions
	c.sessions = nil
	c.mu.Unlock()

	var errs []error
	for s := range sessions {
		errs = append(errs, s.Close())
	}
	errs = append(errs, c.conn.Close())
	return errors.Join(errs...)
}

func (c *Client) track(s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return graknerrors.SessionClosed.New()
	}
	c.sessions[s] = struct{}{}
	return nil
}

func (c *Client) forget(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, s)
}
