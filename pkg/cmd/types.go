package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flyingsilverfin/grakn-client-go/pkg/client"
	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
	"github.com/flyingsilverfin/grakn-client-go/pkg/transaction"
)

// TypeConfig selects the database the type commands read from.
type TypeConfig struct {
	Client   ClientConfig
	Database string
	KeysOnly bool
}

func NewTypeCommand(config *TypeConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "inspect the schema of a database",
	}
	RegisterClientFlags(cmd.PersistentFlags(), &config.Client)
	cmd.PersistentFlags().StringVar(&config.Database, "database", "", "database to read the schema of")
	if err := cmd.MarkPersistentFlagRequired("database"); err != nil {
		panic("failed to mark flag as required: " + err.Error())
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list every thing type",
		Args:  cobra.NoArgs,
		RunE: withSchema(config, func(ctx context.Context, out io.Writer, tx *transaction.Transaction, _ []string) error {
			root, err := tx.Concepts().GetRootThingType(ctx)
			if err != nil {
				return err
			}
			remote, err := concept.Remote[concept.RemoteThingType](root, tx)
			if err != nil {
				return err
			}
			return printTypes(ctx, out, remote.GetSubtypes(ctx))
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "subtypes <label>",
		Short: "list a thing type and its subtypes",
		Args:  cobra.ExactArgs(1),
		RunE: withSchema(config, func(ctx context.Context, out io.Writer, tx *transaction.Transaction, args []string) error {
			remote, err := remoteThingType(ctx, tx, args[0])
			if err != nil {
				return err
			}
			return printTypes(ctx, out, remote.GetSubtypes(ctx))
		}),
	})

	owns := &cobra.Command{
		Use:   "owns <label>",
		Short: "list the attribute types a thing type owns",
		Args:  cobra.ExactArgs(1),
		RunE: withSchema(config, func(ctx context.Context, out io.Writer, tx *transaction.Transaction, args []string) error {
			remote, err := remoteThingType(ctx, tx, args[0])
			if err != nil {
				return err
			}
			var opts []concept.GetOwnsOption
			if config.KeysOnly {
				opts = append(opts, concept.OwnsKeysOnly())
			}
			return remote.GetOwns(ctx, opts...).ForEach(ctx, func(t concept.AttributeType) error {
				_, err := fmt.Fprintf(out, "%s\t%s\n", t.Label(), t.ValueType())
				return err
			})
		}),
	}
	owns.Flags().BoolVar(&config.KeysOnly, "keys", false, "only list the attribute types owned as keys")
	cmd.AddCommand(owns)

	return cmd
}

type schemaRunFunc func(ctx context.Context, out io.Writer, tx *transaction.Transaction, args []string) error

// withSchema runs fn in a read transaction of a data session.
func withSchema(config *TypeConfig, fn schemaRunFunc) func(cmd *cobra.Command, args []string) error {
	return withClient(&config.Client, func(cmd *cobra.Command, args []string, c *client.Client) error {
		ctx := cmd.Context()
		sess, err := c.Session(ctx, config.Database, protocol.SessionTypeData)
		if err != nil {
			return err
		}
		defer sess.Close()

		tx, err := sess.Transaction(ctx, protocol.TransactionTypeRead)
		if err != nil {
			return err
		}
		defer tx.Close()

		return fn(ctx, cmd.OutOrStdout(), tx, args)
	})
}

func remoteThingType(ctx context.Context, tx *transaction.Transaction, name string) (concept.RemoteThingType, error) {
	t, err := tx.Concepts().GetThingType(ctx, name)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("thing type %q does not exist", name)
	}
	return concept.Remote[concept.RemoteThingType](t, tx)
}

func printTypes[T concept.Type](ctx context.Context, out io.Writer, types *stream.Stream[T]) error {
	return types.ForEach(ctx, func(t T) error {
		_, err := fmt.Fprintln(out, t.Label())
		return err
	})
}
