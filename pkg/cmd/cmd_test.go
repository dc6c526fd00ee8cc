package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"

	"github.com/flyingsilverfin/grakn-client-go/internal/testserver"
	"github.com/flyingsilverfin/grakn-client-go/pkg/client"
	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, testutil.GoLeakIgnores()...)
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--address", testserver.BufferedTarget))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDatabaseCommand(t *testing.T) {
	srv := testserver.NewServer()
	config := &ClientConfig{}
	cmd := NewDatabaseCommand(config)
	config.dialOptions = append(config.dialOptions, srv.ServeBuffered(t))

	_, err := execute(t, cmd, "create", "social")
	require.NoError(t, err)
	_, err = execute(t, cmd, "create", "library")
	require.NoError(t, err)

	out, err := execute(t, cmd, "list")
	require.NoError(t, err)
	require.Equal(t, "library\nsocial\n", out)

	_, err = execute(t, cmd, "delete", "library")
	require.NoError(t, err)
	_, err = execute(t, cmd, "delete", "library")
	require.Error(t, err)

	out, err = execute(t, cmd, "list")
	require.NoError(t, err)
	require.Equal(t, "social\n", out)
}

func TestTypeCommand(t *testing.T) {
	srv := testserver.NewServer()
	dial := srv.ServeBuffered(t)
	seedSchema(t, dial)

	config := &TypeConfig{}
	cmd := NewTypeCommand(config)
	config.Client.dialOptions = append(config.Client.dialOptions, dial)

	out, err := execute(t, cmd, "list", "--database", "social")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"thing", "entity", "relation", "attribute", "person", "name", "age"}, strings.Fields(out))

	out, err = execute(t, cmd, "subtypes", "entity", "--database", "social")
	require.NoError(t, err)
	require.Equal(t, "entity\nperson\n", out)

	out, err = execute(t, cmd, "owns", "person", "--database", "social")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"name\tSTRING", "age\tLONG"}, strings.Split(strings.TrimSpace(out), "\n"))

	out, err = execute(t, cmd, "owns", "person", "--keys", "--database", "social")
	require.NoError(t, err)
	require.Equal(t, "name\tSTRING\n", out)

	_, err = execute(t, cmd, "owns", "company", "--keys=false", "--database", "social")
	require.ErrorContains(t, err, `thing type "company" does not exist`)
}

func seedSchema(t *testing.T, dial grpc.DialOption) {
	t.Helper()
	ctx := context.Background()

	c, err := client.New(testserver.BufferedTarget, client.WithDialOptions(dial))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, c.Close())
	}()
	require.NoError(t, c.Databases().Create(ctx, "social"))

	sess, err := c.Session(ctx, "social", protocol.SessionTypeSchema)
	require.NoError(t, err)
	tx, err := sess.Transaction(ctx, protocol.TransactionTypeWrite)
	require.NoError(t, err)

	person, err := tx.Concepts().PutEntityType(ctx, "person")
	require.NoError(t, err)
	name, err := tx.Concepts().PutAttributeType(ctx, "name", protocol.ValueTypeString)
	require.NoError(t, err)
	age, err := tx.Concepts().PutAttributeType(ctx, "age", protocol.ValueTypeLong)
	require.NoError(t, err)

	remote, err := concept.Remote[concept.RemoteEntityType](person, tx)
	require.NoError(t, err)
	require.NoError(t, remote.SetOwns(ctx, name, concept.AsKey()))
	require.NoError(t, remote.SetOwns(ctx, age))

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, sess.Close())
}

func TestRootCommandFlags(t *testing.T) {
	root := NewRootCommand("grakn")
	RegisterRootFlags(root)

	for _, name := range []string{"log-level", "log-format", "otel-provider"} {
		require.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
	require.Contains(t, root.Example, "grakn serve-testing")
}
