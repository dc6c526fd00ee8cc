package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/flyingsilverfin/grakn-client-go/internal/testserver"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, testutil.GoLeakIgnores()...)
}

const database = "social"

func newTestClient(t *testing.T, opts ...Option) (*Client, *testserver.Server) {
	t.Helper()

	srv := testserver.NewServer()
	opts = append([]Option{WithDialOptions(srv.ServeBuffered(t))}, opts...)
	c, err := New(testserver.BufferedTarget, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})

	require.NoError(t, c.Databases().Create(context.Background(), database))
	return c, srv
}

func TestNewDefaultsAddress(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	require.Equal(t, DefaultAddress, c.Address())
	require.True(t, c.IsOpen())

	require.NoError(t, c.Close())
	require.False(t, c.IsOpen())
	require.NoError(t, c.Close())
}

func TestDatabaseNameIsRequired(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for name, call := range map[string]func() error{
		"create": func() error { return c.Databases().Create(ctx, "") },
		"delete": func() error { return c.Databases().Delete(ctx, "") },
		"contains": func() error {
			_, err := c.Databases().Contains(ctx, "")
			return err
		},
		"session": func() error {
			_, err := c.Session(ctx, "", protocol.SessionTypeData)
			return err
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			require.True(t, graknerrors.IsKind(err, graknerrors.Client))
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	c, srv := newTestClient(t, WithPulseInterval(time.Hour))
	ctx := context.Background()

	sess, err := c.Session(ctx, database, protocol.SessionTypeSchema)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID())
	require.Equal(t, database, sess.Database())
	require.Equal(t, protocol.SessionTypeSchema, sess.Type())
	require.True(t, sess.IsOpen())
	require.Equal(t, 1, srv.SessionCount())

	tx, err := sess.Transaction(ctx, protocol.TransactionTypeRead)
	require.NoError(t, err)
	require.True(t, tx.IsOpen())

	require.NoError(t, sess.Close())
	require.False(t, sess.IsOpen())
	require.False(t, tx.IsOpen())
	require.Equal(t, 0, srv.SessionCount())
	require.NoError(t, sess.Close())

	_, err = sess.Transaction(ctx, protocol.TransactionTypeRead)
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
}

func TestConcurrentCloseWaitsForServer(t *testing.T) {
	c, srv := newTestClient(t, WithPulseInterval(time.Hour))
	ctx := context.Background()

	sess, err := c.Session(ctx, database, protocol.SessionTypeData)
	require.NoError(t, err)
	tx, err := sess.Transaction(ctx, protocol.TransactionTypeRead)
	require.NoError(t, err)

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			if err := sess.Close(); err != nil {
				return err
			}
			if count := srv.SessionCount(); count != 0 {
				return fmt.Errorf("close returned with %d sessions still open on the server", count)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.False(t, sess.IsOpen())
	require.False(t, tx.IsOpen())
}

func TestSessionOnMissingDatabase(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.Session(context.Background(), "missing", protocol.SessionTypeData)
	require.True(t, graknerrors.IsKind(err, graknerrors.NotFound))
	require.Equal(t, 0, srv.SessionCount())
}

func TestCloseClosesSessions(t *testing.T) {
	c, srv := newTestClient(t, WithPulseInterval(time.Hour))
	ctx := context.Background()

	schema, err := c.Session(ctx, database, protocol.SessionTypeSchema)
	require.NoError(t, err)
	data, err := c.Session(ctx, database, protocol.SessionTypeData)
	require.NoError(t, err)
	tx, err := data.Transaction(ctx, protocol.TransactionTypeRead)
	require.NoError(t, err)
	require.Equal(t, 2, srv.SessionCount())

	require.NoError(t, c.Close())
	require.False(t, schema.IsOpen())
	require.False(t, data.IsOpen())
	require.False(t, tx.IsOpen())
	require.Equal(t, 0, srv.SessionCount())

	_, err = c.Session(ctx, database, protocol.SessionTypeData)
	require.Error(t, err)
}

func TestExpiredSessionIsClosed(t *testing.T) {
	c, srv := newTestClient(t, WithPulseInterval(10*time.Millisecond))
	ctx := context.Background()

	sess, err := c.Session(ctx, database, protocol.SessionTypeData)
	require.NoError(t, err)
	require.True(t, sess.IsOpen())

	srv.ExpireSession(sess.ID())
	require.Eventually(t, func() bool { return !sess.IsOpen() }, 5*time.Second, 10*time.Millisecond)

	_, err = sess.Transaction(ctx, protocol.TransactionTypeRead)
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))

	err = sess.Close()
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
}

func TestPulseKeepsSessionOpen(t *testing.T) {
	c, srv := newTestClient(t, WithPulseInterval(10*time.Millisecond))

	sess, err := c.Session(context.Background(), database, protocol.SessionTypeData)
	require.NoError(t, err)

	require.Never(t, func() bool { return !sess.IsOpen() }, 100*time.Millisecond, 10*time.Millisecond)
	require.Equal(t, 1, srv.SessionCount())
	require.NoError(t, sess.Close())
}
