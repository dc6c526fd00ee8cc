package transaction

import (
	"context"
	"errors"
	"io"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/authzed/grpcutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/label"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
	"github.com/flyingsilverfin/grakn-client-go/pkg/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, testutil.GoLeakIgnores()...)
}

type sendFunc func(*protocol.TransactionServer) error

// handler answers one client message. Returning an error ends the stream
// with that error.
type handler func(req *protocol.TransactionReq, send sendFunc) error

type scriptedServer struct {
	protocol.GraknServer
	handle handler
}

func (s *scriptedServer) Transaction(srv protocol.TransactionServerStream) error {
	for {
		req, err := srv.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.handle(req, srv.Send); err != nil {
			return err
		}
	}
}

func newClient(t *testing.T, handle handler) protocol.GraknClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	protocol.RegisterGraknServer(s, &scriptedServer{handle: handle})
	go func() {
		_ = s.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, conn.Close())
		s.Stop()
	})
	return protocol.NewGraknClient(conn)
}

func ack(req *protocol.TransactionReq, send sendFunc) error {
	res := &protocol.TransactionRes{ReqID: req.ReqID}
	switch {
	case req.OpenReq != nil:
		res.OpenRes = &protocol.OpenRes{}
	case req.CommitReq != nil:
		res.CommitRes = &protocol.CommitRes{}
	case req.RollbackReq != nil:
		res.RollbackRes = &protocol.RollbackRes{}
	default:
		res.Error = &protocol.Error{Code: uint32(codes.Unimplemented), Reason: graknerrors.ReasonUnimplemented, Message: "unexpected request"}
	}
	return send(&protocol.TransactionServer{Res: res})
}

func open(t *testing.T, client protocol.GraknClient, txType protocol.TransactionType, opts ...Option) *Transaction {
	t.Helper()
	tx, err := Open(context.Background(), client, Params{
		SessionID: "session",
		Type:      txType,
		Options:   NewOptions(opts...),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Close() })
	return tx
}

func TestOpenSendsSessionTypeAndOptions(t *testing.T) {
	openReqs := make(chan *protocol.OpenReq, 1)
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.OpenReq != nil {
			openReqs <- req.OpenReq
		}
		return ack(req, send)
	})

	tx := open(t, client, protocol.TransactionTypeWrite, WithPrefetchSize(7), WithInfer(true))
	require.True(t, tx.IsOpen())
	require.Equal(t, protocol.TransactionTypeWrite, tx.Type())
	require.NotNil(t, tx.Concepts())
	require.NotNil(t, tx.Query())

	opened := <-openReqs
	require.Equal(t, "session", opened.SessionID)
	require.Equal(t, protocol.TransactionTypeWrite, opened.Type)
	require.EqualValues(t, 7, *opened.Options.PrefetchSize)
	require.True(t, *opened.Options.Infer)
	require.True(t, *opened.Options.Parallel)
}

func TestOpenReportsServerError(t *testing.T) {
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		return send(&protocol.TransactionServer{Res: &protocol.TransactionRes{
			ReqID: req.ReqID,
			Error: &protocol.Error{Code: uint32(codes.FailedPrecondition), Reason: graknerrors.ReasonSessionClosed, Message: "session is closed"},
		}})
	})

	_, err := Open(context.Background(), client, Params{SessionID: "gone"})
	require.Error(t, err)
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
	grpcutil.RequireStatus(t, codes.FailedPrecondition, err)
}

// pager answers every match query with total parts in batches of batchSize.
type pager struct {
	total     int
	batchSize int
	continues atomic.Int32

	mu        sync.Mutex
	remaining map[string]int
}

func (p *pager) handle(req *protocol.TransactionReq, send sendFunc) error {
	switch {
	case req.QueryManagerReq != nil:
		p.mu.Lock()
		p.remaining[req.ReqID] = p.total
		p.mu.Unlock()
	case req.StreamReq != nil:
		p.continues.Add(1)
	default:
		return ack(req, send)
	}

	p.mu.Lock()
	n := min(p.batchSize, p.remaining[req.ReqID])
	p.remaining[req.ReqID] -= n
	left := p.remaining[req.ReqID]
	p.mu.Unlock()

	for range n {
		if err := send(&protocol.TransactionServer{ResPart: &protocol.TransactionResPart{
			ReqID:               req.ReqID,
			QueryManagerResPart: &protocol.QueryManagerResPart{MatchResPart: &protocol.ConceptMapsResPart{}},
		}}); err != nil {
			return err
		}
	}

	state := protocol.StreamStateContinue
	if left == 0 {
		state = protocol.StreamStateDone
	}
	return send(&protocol.TransactionServer{ResPart: &protocol.TransactionResPart{
		ReqID:         req.ReqID,
		StreamResPart: &protocol.StreamResPart{State: state},
	}})
}

func TestStreamContinuesOnlyWhenBatchConsumed(t *testing.T) {
	p := &pager{total: 5, batchSize: 2, remaining: map[string]int{}}
	tx := open(t, newClient(t, p.handle), protocol.TransactionTypeRead)
	ctx := context.Background()

	parts := tx.Stream(ctx, requests.QueryReq(protocol.QueryTypeMatch, "match $x sub thing;", nil))

	first, err := parts.Limit(ctx, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.EqualValues(t, 0, p.continues.Load())

	rest, err := parts.Collect(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 3)
	require.EqualValues(t, 2, p.continues.Load())

	more, err := parts.Collect(ctx)
	require.NoError(t, err)
	require.Empty(t, more)
}

func TestStreamSurfacesServerError(t *testing.T) {
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.QueryManagerReq == nil {
			return ack(req, send)
		}
		return send(&protocol.TransactionServer{Res: &protocol.TransactionRes{
			ReqID: req.ReqID,
			Error: &protocol.Error{Code: uint32(codes.NotFound), Reason: graknerrors.ReasonNotFound, Message: "no such type"},
		}})
	})
	tx := open(t, client, protocol.TransactionTypeRead)

	_, err := tx.Stream(context.Background(), requests.QueryReq(protocol.QueryTypeMatch, "match $x isa missing;", nil)).Collect(context.Background())
	require.Error(t, err)
	require.True(t, graknerrors.IsKind(err, graknerrors.NotFound))
	require.True(t, tx.IsOpen())
}

func TestConcurrentRequestsAreDemultiplexed(t *testing.T) {
	var held []*protocol.TransactionReq
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.RollbackReq == nil {
			return ack(req, send)
		}
		held = append(held, req)
		if len(held) < 2 {
			return nil
		}
		// Answer in reverse order of arrival.
		for i := len(held) - 1; i >= 0; i-- {
			if err := ack(held[i], send); err != nil {
				return err
			}
		}
		held = nil
		return nil
	})
	tx := open(t, client, protocol.TransactionTypeWrite)

	g, ctx := errgroup.WithContext(context.Background())
	for range 2 {
		g.Go(func() error {
			return tx.Rollback(ctx)
		})
	}
	require.NoError(t, g.Wait())
}

func TestCommitReadTransaction(t *testing.T) {
	tx := open(t, newClient(t, ack), protocol.TransactionTypeRead)

	err := tx.Commit(context.Background())
	require.True(t, graknerrors.IsKind(err, graknerrors.Client))
	require.True(t, tx.IsOpen())
}

func TestCommitClosesTransaction(t *testing.T) {
	var commits atomic.Int32
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.CommitReq != nil {
			commits.Add(1)
		}
		return ack(req, send)
	})
	tx := open(t, client, protocol.TransactionTypeWrite)

	require.NoError(t, tx.Commit(context.Background()))
	require.EqualValues(t, 1, commits.Load())
	require.False(t, tx.IsOpen())

	err := tx.Rollback(context.Background())
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
}

func TestCloseFailsPendingAndFutureCalls(t *testing.T) {
	received := make(chan struct{})
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.RollbackReq != nil {
			close(received)
			return nil
		}
		return ack(req, send)
	})
	tx := open(t, client, protocol.TransactionTypeWrite)

	pending := make(chan error, 1)
	go func() {
		pending <- tx.Rollback(context.Background())
	}()

	<-received
	require.NoError(t, tx.Close())
	require.NoError(t, tx.Close())

	select {
	case err := <-pending:
		require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
	case <-time.After(5 * time.Second):
		require.Fail(t, "pending request was not failed by close")
	}

	_, err := tx.Stream(context.Background(), requests.QueryReq(protocol.QueryTypeMatch, "match $x sub thing;", nil)).Collect(context.Background())
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
}

func TestDroppedStreamClosesTransaction(t *testing.T) {
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.RollbackReq != nil {
			return status.Error(codes.Unavailable, "server going away")
		}
		return ack(req, send)
	})
	tx := open(t, client, protocol.TransactionTypeWrite)

	err := tx.Rollback(context.Background())
	require.True(t, graknerrors.IsKind(err, graknerrors.StaleHandle))
	grpcutil.RequireStatus(t, codes.Unavailable, err)
	require.False(t, tx.IsOpen())
}

func TestUnencodableRequestKeepsTransactionOpen(t *testing.T) {
	client := newClient(t, ack)
	tx := open(t, client, protocol.TransactionTypeWrite)

	infinite := &protocol.AttributeValue{ValueType: protocol.ValueTypeDouble, Double: math.Inf(1)}
	_, err := tx.Execute(context.Background(), requests.AttributeTypePutReq(label.Of("weight"), infinite))
	require.True(t, graknerrors.IsKind(err, graknerrors.BadEncoding), "unexpected error %v", err)
	require.ErrorContains(t, err, "[CLI09]")
	require.True(t, tx.IsOpen())

	_, err = tx.Stream(context.Background(), requests.AttributeTypePutReq(label.Of("weight"), infinite)).Collect(context.Background())
	require.True(t, graknerrors.IsKind(err, graknerrors.BadEncoding), "unexpected error %v", err)

	require.NoError(t, tx.Rollback(context.Background()))
	require.True(t, tx.IsOpen())
}

func TestExecuteHonoursContext(t *testing.T) {
	client := newClient(t, func(req *protocol.TransactionReq, send sendFunc) error {
		if req.RollbackReq != nil {
			return nil
		}
		return ack(req, send)
	})
	tx := open(t, client, protocol.TransactionTypeWrite)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := tx.Rollback(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, tx.IsOpen())
}
