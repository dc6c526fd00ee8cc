package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/transaction"
)

// Session is an open session on a database. Schema sessions may change the
// schema; data sessions may change instances. It is safe for concurrent use.
type Session struct {
	client         *Client
	id             string
	database       string
	sessionType    protocol.SessionType
	options        *transaction.Options
	networkLatency time.Duration
	log            zerolog.Logger

	mu           sync.Mutex
	closed       bool
	transactions map[*transaction.Transaction]struct{}

	stopPulse context.CancelFunc
	pulseDone chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Session opens a session on the database. The options apply to the session
// and are the defaults of its transactions.
func (c *Client) Session(ctx context.Context, database string, sessionType protocol.SessionType, opts ...transaction.Option) (*Session, error) {
	if database == "" {
		return nil, graknerrors.MissingDatabaseName.New()
	}

	options := transaction.NewOptions(opts...)
	start := time.Now()
	res, err := c.grakn.SessionOpen(ctx, &protocol.SessionOpenReq{
		Database: database,
		Type:     sessionType,
		Options:  options.Proto(),
	})
	if err != nil {
		return nil, graknerrors.FromStatus(err)
	}
	latency := max(time.Since(start)-time.Duration(res.ServerDurationMillis)*time.Millisecond, 0)

	pulseCtx, stopPulse := context.WithCancel(context.Background())
	s := &Session{
		client:         c,
		id:             res.SessionID,
		database:       database,
		sessionType:    sessionType,
		options:        options,
		networkLatency: latency,
		log:            logging.ForSession(c.log, res.SessionID, database),
		transactions:   make(map[*transaction.Transaction]struct{}),
		stopPulse:      stopPulse,
		pulseDone:      make(chan struct{}),
	}
	if err := c.track(s); err != nil {
		stopPulse()
		close(s.pulseDone)
		_ = s.closeOnServer()
		return nil, err
	}

	go s.pulse(pulseCtx)

	s.log.Debug().Stringer("type", sessionType).Dur("latency", latency).Msg("opened session")
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Database() string { return s.database }

func (s *Session) Type() protocol.SessionType { return s.sessionType }

// IsOpen returns false once the session was closed or the server stopped
// acknowledging its pulses.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Transaction opens a transaction in the session. Options not given default
// to the session's.
func (s *Session) Transaction(ctx context.Context, txType protocol.TransactionType, opts ...transaction.Option) (*transaction.Transaction, error) {
	if !s.IsOpen() {
		return nil, graknerrors.SessionClosed.New()
	}

	options := *s.options
	for _, opt := range opts {
		opt(&options)
	}

	tx, err := transaction.Open(ctx, s.client.grakn, transaction.Params{
		SessionID:      s.id,
		Type:           txType,
		Options:        &options,
		NetworkLatency: s.networkLatency,
		Logger:         &s.log,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		_ = tx.Close()
		return nil, graknerrors.SessionClosed.New()
	}
	for open := range s.transactions {
		if !open.IsOpen() {
			delete(s.transactions, open)
		}
	}
	s.transactions[tx] = struct{}{}
	return tx, nil
}

// Close stops the pulse, closes the transactions opened in the session and
// closes the session on the server. Close is idempotent; concurrent calls wait
// for the first to finish and return its result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Session) close() error {
	s.mu.Lock()
	s.closed = true
	transactions := s.transactions
	s.transactions = nil
	s.mu.Unlock()

	s.stopPulse()
	<-s.pulseDone
	s.client.forget(s)

	var errs []error
	for tx := range transactions {
		errs = append(errs, tx.Close())
	}
	errs = append(errs, s.closeOnServer())

	s.log.Debug().Msg("closed session")
	return errors.Join(errs...)
}

func (s *Session) closeOnServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.client.config.CallTimeout)
	defer cancel()

	_, err := s.client.grakn.SessionClose(ctx, &protocol.SessionCloseReq{SessionID: s.id})
	return graknerrors.FromStatus(err)
}

func (s *Session) pulse(ctx context.Context) {
	defer close(s.pulseDone)

	ticker := time.NewTicker(s.client.config.PulseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		alive, err := s.sendPulse(ctx)
		if err != nil {
			if !graknerrors.IsCanceled(err) {
				s.log.Debug().Err(err).Msg("session pulse failed")
			}
			continue
		}
		if !alive {
			s.log.Debug().Msg("server no longer knows the session")
			s.mu.Lock()
			s.closed = true
			s.mu.Unlock()
			return
		}
	}
}

func (s *Session) sendPulse(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.client.config.CallTimeout)
	defer cancel()

	res, err := s.client.grakn.SessionPulse(ctx, &protocol.SessionPulseReq{SessionID: s.id})
	if err != nil {
		return false, err
	}
	return res.Alive, nil
}
