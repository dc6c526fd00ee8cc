package transaction

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/query"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// Transaction is an open transaction. It is safe for concurrent use.
type Transaction struct {
	id      string
	txType  protocol.TransactionType
	options *Options
	stream  protocol.TransactionClientStream
	log     zerolog.Logger

	sendMu sync.Mutex

	mu         sync.Mutex
	collectors map[string]*collector
	closeErr   error

	closeOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}

	concepts concept.Manager
	query    *query.Manager
}

var _ concept.Transaction = (*Transaction)(nil)

// Params describe the transaction to open.
type Params struct {
	SessionID      string
	Type           protocol.TransactionType
	Options        *Options
	NetworkLatency time.Duration
	Logger         *zerolog.Logger
	CallOptions    []grpc.CallOption
}

// Open opens a transaction in the session and waits for the server to
// acknowledge it. The stream outlives ctx; it is released by Close.
func Open(ctx context.Context, client protocol.GraknClient, params Params) (*Transaction, error) {
	options := params.Options
	if options == nil {
		options = NewOptions()
	}
	parent := logging.Logger
	if params.Logger != nil {
		parent = *params.Logger
	}

	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s, err := client.Transaction(streamCtx, params.CallOptions...)
	if err != nil {
		cancel()
		return nil, graknerrors.FromStatus(err)
	}

	id := uuid.NewString()
	tx := &Transaction{
		id:         id,
		txType:     params.Type,
		options:    options,
		stream:     s,
		log:        logging.ForTransaction(parent, id, params.Type.String()),
		collectors: make(map[string]*collector),
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	tx.concepts = concept.NewManager(tx)
	tx.query = query.NewManager(tx)

	go tx.receive()

	start := time.Now()
	req := requests.OpenReq(params.SessionID, params.Type, options.Proto(), millis(params.NetworkLatency))
	if _, err := tx.Execute(ctx, req); err != nil {
		_ = tx.Close()
		return nil, err
	}

	tx.log.Debug().Dur("duration", time.Since(start)).Msg("opened transaction")
	return tx, nil
}

// ID returns the client-side identifier of the transaction used in logs.
func (tx *Transaction) ID() string { return tx.id }

// Type returns whether the transaction reads or writes.
func (tx *Transaction) Type() protocol.TransactionType { return tx.txType }

// Options returns the options the transaction was opened with.
func (tx *Transaction) Options() Options { return *tx.options }

// Concepts returns the concept manager bound to the transaction.
func (tx *Transaction) Concepts() concept.Manager { return tx.concepts }

// Query returns the query manager bound to the transaction.
func (tx *Transaction) Query() *query.Manager { return tx.query }

// IsOpen returns false once the transaction was closed, committed or its
// stream dropped.
func (tx *Transaction) IsOpen() bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.closeErr == nil
}

// Execute sends a request and waits for its single response. A response
// carrying a server error is returned as that error.
func (tx *Transaction) Execute(ctx context.Context, req *protocol.TransactionReq) (*protocol.TransactionRes, error) {
	req.ReqID = uuid.NewString()
	c, err := tx.register(req.ReqID)
	if err != nil {
		return nil, err
	}
	defer tx.unregister(req.ReqID)

	if err := tx.send(req); err != nil {
		return nil, err
	}

	msg, err := c.take(ctx)
	if err != nil {
		return nil, err
	}
	if msg.Res == nil {
		return nil, graknerrors.MissingResponse.New("res")
	}
	if msg.Res.Error != nil {
		return nil, graknerrors.FromProto(msg.Res.Error)
	}
	return msg.Res, nil
}

// Stream sends a streaming request and returns its response parts. The
// request is sent immediately; each further batch is requested once the
// previous one has been consumed.
func (tx *Transaction) Stream(ctx context.Context, req *protocol.TransactionReq) *stream.Stream[*protocol.TransactionResPart] {
	reqID := uuid.NewString()
	req.ReqID = reqID

	c, err := tx.register(reqID)
	if err != nil {
		return stream.Failed[*protocol.TransactionResPart](err)
	}
	if err := tx.send(req); err != nil {
		tx.unregister(reqID)
		return stream.Failed[*protocol.TransactionResPart](err)
	}

	first := true
	return stream.FromPages(func(ctx context.Context) ([]*protocol.TransactionResPart, bool, error) {
		if !first {
			tx.log.Trace().Str("request", reqID).Msg("requesting next batch")
			if err := tx.send(requests.StreamContinueReq(reqID)); err != nil {
				tx.unregister(reqID)
				return nil, false, err
			}
		}
		first = false
		return tx.batch(ctx, reqID, c)
	})
}

// batch collects response parts up to the next stream marker.
func (tx *Transaction) batch(ctx context.Context, reqID string, c *collector) ([]*protocol.TransactionResPart, bool, error) {
	var parts []*protocol.TransactionResPart
	for {
		msg, err := c.take(ctx)
		if err != nil {
			tx.unregister(reqID)
			return nil, false, err
		}

		switch {
		case msg.Res != nil:
			tx.unregister(reqID)
			if msg.Res.Error != nil {
				return nil, false, graknerrors.FromProto(msg.Res.Error)
			}
			return nil, false, graknerrors.MissingResponse.New("res_part")

		case msg.ResPart == nil:
			tx.unregister(reqID)
			return nil, false, graknerrors.MissingResponse.New("res_part")

		case msg.ResPart.StreamResPart != nil:
			if msg.ResPart.StreamResPart.State == protocol.StreamStateContinue {
				return parts, true, nil
			}
			tx.unregister(reqID)
			return parts, false, nil

		default:
			parts = append(parts, msg.ResPart)
		}
	}
}

// Commit commits the changes of a write transaction and closes it.
func (tx *Transaction) Commit(ctx context.Context) error {
	if tx.txType == protocol.TransactionTypeRead {
		return graknerrors.TransactionReadOnly.New()
	}

	_, err := tx.Execute(ctx, requests.CommitReq())
	closeErr := tx.Close()
	if err != nil {
		return err
	}
	return closeErr
}

// Rollback discards the uncommitted changes. The transaction stays open.
func (tx *Transaction) Rollback(ctx context.Context) error {
	_, err := tx.Execute(ctx, requests.RollbackReq())
	return err
}

// Close closes the transaction. Pending and future calls fail with a
// transaction-closed error. Close is idempotent.
func (tx *Transaction) Close() error {
	tx.shutdown(graknerrors.TransactionClosed.New())

	tx.closeOnce.Do(func() {
		tx.sendMu.Lock()
		if err := tx.stream.CloseSend(); err != nil {
			tx.log.Debug().Err(err).Msg("failed to half-close transaction stream")
		}
		tx.sendMu.Unlock()

		tx.cancel()
		<-tx.done
		tx.log.Debug().Msg("closed transaction")
	})
	return nil
}

func (tx *Transaction) receive() {
	defer close(tx.done)
	for {
		msg, err := tx.stream.Recv()
		if err != nil {
			if tx.shutdown(closedBy(err)) {
				tx.log.Debug().Err(err).Msg("transaction stream ended")
			}
			tx.cancel()
			return
		}

		var reqID string
		switch {
		case msg.Res != nil:
			reqID = msg.Res.ReqID
		case msg.ResPart != nil:
			reqID = msg.ResPart.ReqID
		default:
			tx.log.Debug().Msg("dropping empty server message")
			continue
		}

		tx.mu.Lock()
		c, ok := tx.collectors[reqID]
		tx.mu.Unlock()
		if !ok {
			tx.log.Debug().Str("request", reqID).Msg("dropping response for unknown request")
			continue
		}
		c.put(msg)
	}
}

func closedBy(err error) error {
	if errors.Is(err, io.EOF) || graknerrors.IsCanceled(err) {
		return graknerrors.TransactionClosed.New()
	}
	return graknerrors.TransactionClosed.Wrap(graknerrors.FromStatus(err))
}

// shutdown marks the transaction closed and fails every pending request. It
// returns false if the transaction was already closed.
func (tx *Transaction) shutdown(err error) bool {
	tx.mu.Lock()
	if tx.closeErr != nil {
		tx.mu.Unlock()
		return false
	}
	tx.closeErr = err
	pending := tx.collectors
	tx.collectors = nil
	tx.mu.Unlock()

	for _, c := range pending {
		c.fail(err)
	}
	return true
}

func (tx *Transaction) register(reqID string) (*collector, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.closeErr != nil {
		return nil, tx.closeErr
	}
	c := newCollector()
	tx.collectors[reqID] = c
	return c, nil
}

func (tx *Transaction) unregister(reqID string) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	delete(tx.collectors, reqID)
}

func (tx *Transaction) send(req *protocol.TransactionReq) error {
	tx.mu.Lock()
	closeErr := tx.closeErr
	tx.mu.Unlock()
	if closeErr != nil {
		return closeErr
	}

	// A request that fails to encode leaves the stream usable.
	var msg grpc.PreparedMsg
	if err := msg.Encode(tx.stream, req); err != nil {
		return graknerrors.UnencodableRequest.Wrap(err)
	}

	tx.sendMu.Lock()
	defer tx.sendMu.Unlock()
	if err := tx.stream.SendMsg(&msg); err != nil {
		// The cause of a failed send surfaces on Recv.
		return graknerrors.TransactionClosed.Wrap(graknerrors.FromStatus(err))
	}
	return nil
}
