package cmd

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"google.golang.org/grpc"

	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/client"
)

// ClientConfig is the connection used by the commands talking to a server.
type ClientConfig struct {
	Address      string
	Token        string
	TLS          bool
	TLSCAPath    string
	ReadyTimeout time.Duration

	dialOptions []grpc.DialOption
}

func RegisterClientFlags(flags *pflag.FlagSet, config *ClientConfig) {
	flags.StringVar(&config.Address, "address", client.DefaultAddress, "address of the Grakn server")
	flags.StringVar(&config.Token, "token", "", "bearer token sent with every request")
	flags.BoolVar(&config.TLS, "tls", false, "connect to the server over TLS")
	flags.StringVar(&config.TLSCAPath, "tls-ca-path", "", "local path to the certificate authority used to verify the server, defaults to the system roots")
	flags.DurationVar(&config.ReadyTimeout, "ready-timeout", 5*time.Second, "how long to wait for the server to accept connections")
}

// Complete connects a client as configured.
func (c *ClientConfig) Complete() (*client.Client, error) {
	opts := []client.Option{
		client.WithLogger(logging.Logger),
		client.WithReadyTimeout(c.ReadyTimeout),
		client.WithDialOptions(c.dialOptions...),
	}
	if c.Token != "" {
		opts = append(opts, client.WithBearerToken(c.Token))
	}
	if c.TLS || c.TLSCAPath != "" {
		config, err := c.tlsConfig()
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithTLS(config))
	}
	return client.New(c.Address, opts...)
}

func (c *ClientConfig) tlsConfig() (*tls.Config, error) {
	config := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.TLSCAPath == "" {
		return config, nil
	}

	pem, err := os.ReadFile(c.TLSCAPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate authority: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", c.TLSCAPath)
	}
	config.RootCAs = pool
	return config, nil
}
