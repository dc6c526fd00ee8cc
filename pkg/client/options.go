package client

import (
	"crypto/tls"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

// DefaultAddress is the address of a Grakn server on the local host.
const DefaultAddress = "localhost:1729"

// Config configures a Client.
type Config struct {
	// ReadyTimeout bounds how long New waits for the server to accept
	// connections. Zero connects lazily on the first call.
	ReadyTimeout time.Duration `default:"0s"`

	// PulseInterval is how often an open session tells the server it is
	// still in use.
	PulseInterval time.Duration `default:"5s"`

	// CallTimeout bounds the unary calls made on behalf of sessions, such as
	// pulses and closing.
	CallTimeout time.Duration `default:"10s"`

	TLS         *tls.Config
	BearerToken string
	Logger      *zerolog.Logger
	DialOptions []grpc.DialOption
}

// Option configures a Client.
type Option func(*Config)

func WithReadyTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.ReadyTimeout = timeout }
}

func WithPulseInterval(interval time.Duration) Option {
	return func(c *Config) { c.PulseInterval = interval }
}

func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Config) { c.CallTimeout = timeout }
}

// WithTLS dials the server over TLS with the given configuration.
func WithTLS(config *tls.Config) Option {
	return func(c *Config) { c.TLS = config }
}

// WithBearerToken sends the token with every call.
func WithBearerToken(token string) Option {
	return func(c *Config) { c.BearerToken = token }
}

// WithLogger sets the logger used for calls, sessions and transactions
// instead of the package logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) { c.Logger = &logger }
}

// WithDialOptions appends options to the ones the client dials with.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Config) { c.DialOptions = append(c.DialOptions, opts...) }
}
