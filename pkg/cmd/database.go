package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flyingsilverfin/grakn-client-go/pkg/client"
)

func NewDatabaseCommand(config *ClientConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database",
		Short: "manage the databases of a server",
	}
	RegisterClientFlags(cmd.PersistentFlags(), config)

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "create a database",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(config, func(cmd *cobra.Command, args []string, c *client.Client) error {
			return c.Databases().Create(cmd.Context(), args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list the databases",
		Args:  cobra.NoArgs,
		RunE: withClient(config, func(cmd *cobra.Command, _ []string, c *client.Client) error {
			names, err := c.Databases().All(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "delete a database and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(config, func(cmd *cobra.Command, args []string, c *client.Client) error {
			return c.Databases().Delete(cmd.Context(), args[0])
		}),
	})

	return cmd
}

type clientRunFunc func(cmd *cobra.Command, args []string, c *client.Client) error

// withClient connects before fn runs and disconnects afterwards.
func withClient(config *ClientConfig, fn clientRunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		c, err := config.Complete()
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := c.Close(); err == nil {
				err = closeErr
			}
		}()
		return fn(cmd, args, c)
	}
}
