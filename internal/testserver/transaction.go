package testserver

import (
	"context"
	"errors"
	"io"

	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

const defaultPrefetchSize = 50

// answer is the reply to one request: either a single response or the parts
// of a stream.
type answer struct {
	res       *protocol.TransactionRes
	parts     []*protocol.TransactionResPart
	streaming bool
}

func single(res *protocol.TransactionRes) answer {
	return answer{res: res}
}

func streamed(parts []*protocol.TransactionResPart) answer {
	return answer{parts: parts, streaming: true}
}

// transaction is the server side of one transaction stream. It is driven by a
// single goroutine.
type transaction struct {
	server *Server
	stream protocol.TransactionServerStream
	log    zerolog.Logger

	session      *session
	txType       protocol.TransactionType
	prefetchSize int
	txn          *memdb.Txn
	committed    bool

	pending map[string][]*protocol.TransactionResPart
}

func (s *Server) Transaction(srv protocol.TransactionServerStream) error {
	tx := &transaction{
		server:  s,
		stream:  srv,
		log:     s.log,
		pending: make(map[string][]*protocol.TransactionResPart),
	}
	defer tx.abort()

	for {
		req, err := srv.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.handle(srv.Context(), req); err != nil {
			return err
		}
	}
}

func (tx *transaction) abort() {
	if tx.txn != nil {
		tx.txn.Abort()
		tx.txn = nil
	}
}

// handle answers one request. Only failures to send end the stream; request
// failures are reported to the client.
func (tx *transaction) handle(ctx context.Context, req *protocol.TransactionReq) error {
	if req.StreamReq != nil {
		return tx.sendBatch(req.ReqID)
	}

	a, err := tx.dispatch(ctx, req)
	if err != nil {
		tx.log.Debug().Err(err).Str("request", req.ReqID).Msg("request failed")
		return tx.stream.Send(&protocol.TransactionServer{Res: &protocol.TransactionRes{
			ReqID: req.ReqID,
			Error: graknerrors.ToProto(err),
		}})
	}

	if !a.streaming {
		a.res.ReqID = req.ReqID
		return tx.stream.Send(&protocol.TransactionServer{Res: a.res})
	}
	for _, part := range a.parts {
		part.ReqID = req.ReqID
	}
	tx.pending[req.ReqID] = a.parts
	return tx.sendBatch(req.ReqID)
}

// sendBatch sends up to prefetchSize pending parts followed by a stream
// marker. CONTINUE means parts remain and the server waits for a StreamReq.
func (tx *transaction) sendBatch(reqID string) error {
	parts, ok := tx.pending[reqID]
	if !ok {
		return tx.stream.Send(&protocol.TransactionServer{Res: &protocol.TransactionRes{
			ReqID: reqID,
			Error: graknerrors.ToProto(invalidArgument("no stream is pending for request '%s'", reqID)),
		}})
	}

	n := min(tx.prefetchSize, len(parts))
	for _, part := range parts[:n] {
		if err := tx.stream.Send(&protocol.TransactionServer{ResPart: part}); err != nil {
			return err
		}
	}

	state := protocol.StreamStateDone
	if n < len(parts) {
		state = protocol.StreamStateContinue
		tx.pending[reqID] = parts[n:]
	} else {
		delete(tx.pending, reqID)
	}
	return tx.stream.Send(&protocol.TransactionServer{ResPart: &protocol.TransactionResPart{
		ReqID:         reqID,
		StreamResPart: &protocol.StreamResPart{State: state},
	}})
}

func (tx *transaction) dispatch(ctx context.Context, req *protocol.TransactionReq) (answer, error) {
	if req.OpenReq != nil {
		return tx.open(req.OpenReq)
	}
	if tx.txn == nil {
		return answer{}, transactionClosed()
	}
	if _, ok := tx.server.session(tx.session.id); !ok {
		tx.abort()
		return answer{}, sessionClosed(tx.session.id)
	}

	switch {
	case req.CommitReq != nil:
		return tx.commit()
	case req.RollbackReq != nil:
		return tx.rollback()
	case req.ConceptManagerReq != nil:
		res, err := tx.concepts(req.ConceptManagerReq)
		if err != nil {
			return answer{}, err
		}
		return single(&protocol.TransactionRes{ConceptManagerRes: res}), nil
	case req.TypeReq != nil:
		return tx.typeRequest(req.TypeReq)
	case req.ThingReq != nil:
		return tx.thingRequest(req.ThingReq)
	case req.QueryManagerReq != nil:
		return tx.query(ctx, req.QueryManagerReq)
	default:
		return answer{}, invalidArgument("request carries no operation")
	}
}

func (tx *transaction) open(req *protocol.OpenReq) (answer, error) {
	if tx.session != nil {
		return answer{}, invalidArgument("transaction is already open")
	}
	sess, ok := tx.server.session(req.SessionID)
	if !ok {
		return answer{}, sessionClosed(req.SessionID)
	}

	tx.session = sess
	tx.txType = req.Type
	tx.prefetchSize = defaultPrefetchSize
	if req.Options != nil && req.Options.PrefetchSize != nil && *req.Options.PrefetchSize > 0 {
		tx.prefetchSize = int(*req.Options.PrefetchSize)
	}
	tx.txn = sess.db.Txn(req.Type == protocol.TransactionTypeWrite)
	tx.log = tx.server.log.With().Str("session", sess.id).Stringer("type", req.Type).Logger()

	tx.log.Debug().Int("prefetch", tx.prefetchSize).Msg("opened transaction")
	return single(&protocol.TransactionRes{OpenRes: &protocol.OpenRes{}}), nil
}

func (tx *transaction) commit() (answer, error) {
	if tx.txType != protocol.TransactionTypeWrite {
		return answer{}, invalidArgument("read transactions cannot be committed")
	}
	tx.txn.Commit()
	tx.txn = nil
	tx.committed = true
	tx.log.Debug().Msg("committed transaction")
	return single(&protocol.TransactionRes{CommitRes: &protocol.CommitRes{}}), nil
}

func (tx *transaction) rollback() (answer, error) {
	tx.txn.Abort()
	tx.txn = tx.session.db.Txn(tx.txType == protocol.TransactionTypeWrite)
	clear(tx.pending)
	return single(&protocol.TransactionRes{RollbackRes: &protocol.RollbackRes{}}), nil
}

func (tx *transaction) store() store {
	return store{txn: tx.txn}
}

// writeData fails unless the transaction may change instances.
func (tx *transaction) writeData() error {
	if tx.txType != protocol.TransactionTypeWrite {
		return invalidArgument("read transactions cannot write data")
	}
	return nil
}

// writeSchema fails unless the transaction may change the schema.
func (tx *transaction) writeSchema() error {
	if tx.txType != protocol.TransactionTypeWrite {
		return invalidArgument("read transactions cannot write the schema")
	}
	if tx.session.sessionType != protocol.SessionTypeSchema {
		return invalidArgument("data sessions cannot write the schema")
	}
	return nil
}
