// Package testserver implements an in-memory Grakn server for tests and local
// development. It keeps every database in go-memdb and serves the concept API
// with Grakn's schema semantics. Queries are delegated to a QueryHandler.
package testserver

import (
	"context"
	"errors"
	"net"
	"slices"
	"sync"
	"time"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/google/uuid"
	grpcauth "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	grpclog "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/hashicorp/go-memdb"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/flyingsilverfin/grakn-client-go/internal/auth"
	"github.com/flyingsilverfin/grakn-client-go/internal/logging"
	"github.com/flyingsilverfin/grakn-client-go/pkg/grpcutil"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// Server is an in-memory implementation of the Grakn service.
type Server struct {
	log          zerolog.Logger
	queries      QueryHandler
	presharedKey string

	mu        sync.Mutex
	databases map[string]*memdb.MemDB
	sessions  map[string]*session
}

type session struct {
	id          string
	database    string
	sessionType protocol.SessionType
	db          *memdb.MemDB
}

var _ protocol.GraknServer = (*Server)(nil)

// Option configures a Server.
type Option func(*Server)

// WithQueryHandler sets the handler answering query requests.
func WithQueryHandler(handler QueryHandler) Option {
	return func(s *Server) { s.queries = handler }
}

// WithPresharedKey requires every call to carry the key as a bearer token.
func WithPresharedKey(key string) Option {
	return func(s *Server) { s.presharedKey = key }
}

// WithLogger sets the logger of the server.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer returns a server without databases.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log:       logging.Logger,
		queries:   UnimplementedQueries,
		databases: make(map[string]*memdb.MemDB),
		sessions:  make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GRPCServer returns a gRPC server with the service registered.
func (s *Server) GRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	unary := []grpc.UnaryServerInterceptor{grpcutil.ZerologUnaryInterceptor(s.log, grpclog.DefaultServerCodeToLevel)}
	streams := []grpc.StreamServerInterceptor{grpcutil.ZerologStreamInterceptor(s.log, grpclog.DefaultServerCodeToLevel)}
	if s.presharedKey != "" {
		authenticate := auth.RequirePresharedKey(s.presharedKey)
		unary = append(unary, grpcauth.UnaryServerInterceptor(authenticate))
		streams = append(streams, grpcauth.StreamServerInterceptor(authenticate))
	}

	opts = append([]grpc.ServerOption{
		grpc.StatsHandler(otelgrpc.NewServerHandler(
			otelgrpc.WithPropagators(otel.GetTextMapPropagator()),
			otelgrpc.WithTracerProvider(otel.GetTracerProvider()),
		)),
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(streams...),
	}, opts...)

	srv := grpc.NewServer(opts...)
	protocol.RegisterGraknServer(srv, s)
	return srv
}

// Run serves on the listener until ctx is done.
func (s *Server) Run(ctx context.Context, lis net.Listener, opts ...grpc.ServerOption) error {
	srv := s.GRPCServer(opts...)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", lis.Addr().String()).Msg("grpc server started listening")
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.log.Info().Msg("stopping grpc server")
		srv.GracefulStop()
		return nil
	})
	return g.Wait()
}

func (s *Server) DatabasesContains(_ context.Context, req *protocol.DatabasesContainsReq) (*protocol.DatabasesContainsRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.databases[req.Name]
	return &protocol.DatabasesContainsRes{Contains: ok}, nil
}

func (s *Server) DatabasesCreate(_ context.Context, req *protocol.DatabasesCreateReq) (*protocol.DatabasesCreateRes, error) {
	if req.Name == "" {
		return nil, invalidArgument("database name must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.databases[req.Name]; ok {
		return nil, status.Errorf(codes.AlreadyExists, "database '%s' already exists", req.Name)
	}
	db, err := newDatabase()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to create database: %s", err)
	}
	s.databases[req.Name] = db
	s.log.Debug().Str("database", req.Name).Msg("created database")
	return &protocol.DatabasesCreateRes{}, nil
}

func (s *Server) DatabasesAll(context.Context, *protocol.DatabasesAllReq) (*protocol.DatabasesAllRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.databases))
	for name := range s.databases {
		names = append(names, name)
	}
	slices.Sort(names)
	return &protocol.DatabasesAllRes{Names: names}, nil
}

func (s *Server) DatabaseDelete(_ context.Context, req *protocol.DatabaseDeleteReq) (*protocol.DatabaseDeleteRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.databases[req.Name]; !ok {
		return nil, notFound("database", req.Name)
	}
	delete(s.databases, req.Name)
	for id, sess := range s.sessions {
		if sess.database == req.Name {
			delete(s.sessions, id)
		}
	}
	s.log.Debug().Str("database", req.Name).Msg("deleted database")
	return &protocol.DatabaseDeleteRes{}, nil
}

func (s *Server) SessionOpen(_ context.Context, req *protocol.SessionOpenReq) (*protocol.SessionOpenRes, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.databases[req.Database]
	if !ok {
		return nil, notFound("database", req.Database)
	}
	sess := &session{id: uuid.NewString(), database: req.Database, sessionType: req.Type, db: db}
	s.sessions[sess.id] = sess

	s.log.Debug().Str("session", sess.id).Str("database", req.Database).Stringer("type", req.Type).Msg("opened session")
	duration, _ := safecast.Convert[int32](time.Since(start).Milliseconds())
	return &protocol.SessionOpenRes{
		SessionID:            sess.id,
		ServerDurationMillis: duration,
	}, nil
}

func (s *Server) SessionClose(_ context.Context, req *protocol.SessionCloseReq) (*protocol.SessionCloseRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[req.SessionID]; !ok {
		return nil, sessionClosed(req.SessionID)
	}
	delete(s.sessions, req.SessionID)
	return &protocol.SessionCloseRes{}, nil
}

func (s *Server) SessionPulse(_ context.Context, req *protocol.SessionPulseReq) (*protocol.SessionPulseRes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[req.SessionID]
	return &protocol.SessionPulseRes{Alive: ok}, nil
}

func (s *Server) session(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ExpireSession forgets the session as if it had idled out.
func (s *Server) ExpireSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
