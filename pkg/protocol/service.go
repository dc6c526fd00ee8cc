package protocol

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "grakn.protocol.Grakn"

const (
	DatabasesContainsFullMethodName = "/" + serviceName + "/databases_contains"
	DatabasesCreateFullMethodName   = "/" + serviceName + "/databases_create"
	DatabasesAllFullMethodName      = "/" + serviceName + "/databases_all"
	DatabaseDeleteFullMethodName    = "/" + serviceName + "/database_delete"
	SessionOpenFullMethodName       = "/" + serviceName + "/session_open"
	SessionCloseFullMethodName      = "/" + serviceName + "/session_close"
	SessionPulseFullMethodName      = "/" + serviceName + "/session_pulse"
	TransactionFullMethodName       = "/" + serviceName + "/transaction"
)

// GraknClient is the client API of the Grakn service.
type GraknClient interface {
	DatabasesContains(ctx context.Context, in *DatabasesContainsReq, opts ...grpc.CallOption) (*DatabasesContainsRes, error)
	DatabasesCreate(ctx context.Context, in *DatabasesCreateReq, opts ...grpc.CallOption) (*DatabasesCreateRes, error)
	DatabasesAll(ctx context.Context, in *DatabasesAllReq, opts ...grpc.CallOption) (*DatabasesAllRes, error)
	DatabaseDelete(ctx context.Context, in *DatabaseDeleteReq, opts ...grpc.CallOption) (*DatabaseDeleteRes, error)
	SessionOpen(ctx context.Context, in *SessionOpenReq, opts ...grpc.CallOption) (*SessionOpenRes, error)
	SessionClose(ctx context.Context, in *SessionCloseReq, opts ...grpc.CallOption) (*SessionCloseRes, error)
	SessionPulse(ctx context.Context, in *SessionPulseReq, opts ...grpc.CallOption) (*SessionPulseRes, error)
	Transaction(ctx context.Context, opts ...grpc.CallOption) (TransactionClientStream, error)
}

// TransactionClientStream is the client side of a transaction stream.
type TransactionClientStream interface {
	Send(*TransactionReq) error
	Recv() (*TransactionServer, error)
	grpc.ClientStream
}

type graknClient struct {
	cc grpc.ClientConnInterface
}

// NewGraknClient returns a client of the Grakn service over the connection.
// Every call uses the protocol codec.
func NewGraknClient(cc grpc.ClientConnInterface) GraknClient {
	return &graknClient{cc}
}

func invoke[Res any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Res, error) {
	out := new(Res)
	if err := cc.Invoke(ctx, method, in, out, append(CallOptions(), opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *graknClient) DatabasesContains(ctx context.Context, in *DatabasesContainsReq, opts ...grpc.CallOption) (*DatabasesContainsRes, error) {
	return invoke[DatabasesContainsRes](ctx, c.cc, DatabasesContainsFullMethodName, in, opts)
}

func (c *graknClient) DatabasesCreate(ctx context.Context, in *DatabasesCreateReq, opts ...grpc.CallOption) (*DatabasesCreateRes, error) {
	return invoke[DatabasesCreateRes](ctx, c.cc, DatabasesCreateFullMethodName, in, opts)
}

func (c *graknClient) DatabasesAll(ctx context.Context, in *DatabasesAllReq, opts ...grpc.CallOption) (*DatabasesAllRes, error) {
	return invoke[DatabasesAllRes](ctx, c.cc, DatabasesAllFullMethodName, in, opts)
}

func (c *graknClient) DatabaseDelete(ctx context.Context, in *DatabaseDeleteReq, opts ...grpc.CallOption) (*DatabaseDeleteRes, error) {
	return invoke[DatabaseDeleteRes](ctx, c.cc, DatabaseDeleteFullMethodName, in, opts)
}

func (c *graknClient) SessionOpen(ctx context.Context, in *SessionOpenReq, opts ...grpc.CallOption) (*SessionOpenRes, error) {
	return invoke[SessionOpenRes](ctx, c.cc, SessionOpenFullMethodName, in, opts)
}

func (c *graknClient) SessionClose(ctx context.Context, in *SessionCloseReq, opts ...grpc.CallOption) (*SessionCloseRes, error) {
	return invoke[SessionCloseRes](ctx, c.cc, SessionCloseFullMethodName, in, opts)
}

func (c *graknClient) SessionPulse(ctx context.Context, in *SessionPulseReq, opts ...grpc.CallOption) (*SessionPulseRes, error) {
	return invoke[SessionPulseRes](ctx, c.cc, SessionPulseFullMethodName, in, opts)
}

func (c *graknClient) Transaction(ctx context.Context, opts ...grpc.CallOption) (TransactionClientStream, error) {
	stream, err := c.cc.NewStream(ctx, &GraknServiceDesc.Streams[0], TransactionFullMethodName, append(CallOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	return &transactionClientStream{stream}, nil
}

type transactionClientStream struct {
	grpc.ClientStream
}

func (s *transactionClientStream) Send(m *TransactionReq) error {
	return s.ClientStream.SendMsg(m)
}

func (s *transactionClientStream) Recv() (*TransactionServer, error) {
	m := new(TransactionServer)
	if err := s.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// GraknServer is the server API of the Grakn service.
type GraknServer interface {
	DatabasesContains(context.Context, *DatabasesContainsReq) (*DatabasesContainsRes, error)
	DatabasesCreate(context.Context, *DatabasesCreateReq) (*DatabasesCreateRes, error)
	DatabasesAll(context.Context, *DatabasesAllReq) (*DatabasesAllRes, error)
	DatabaseDelete(context.Context, *DatabaseDeleteReq) (*DatabaseDeleteRes, error)
	SessionOpen(context.Context, *SessionOpenReq) (*SessionOpenRes, error)
	SessionClose(context.Context, *SessionCloseReq) (*SessionCloseRes, error)
	SessionPulse(context.Context, *SessionPulseReq) (*SessionPulseRes, error)
	Transaction(TransactionServerStream) error
}

// TransactionServerStream is the server side of a transaction stream.
type TransactionServerStream interface {
	Send(*TransactionServer) error
	Recv() (*TransactionReq, error)
	grpc.ServerStream
}

type transactionServerStream struct {
	grpc.ServerStream
}

func (s *transactionServerStream) Send(m *TransactionServer) error {
	return s.ServerStream.SendMsg(m)
}

func (s *transactionServerStream) Recv() (*TransactionReq, error) {
	m := new(TransactionReq)
	if err := s.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// RegisterGraknServer registers the service implementation with the registrar.
func RegisterGraknServer(s grpc.ServiceRegistrar, srv GraknServer) {
	s.RegisterService(&GraknServiceDesc, srv)
}

func unaryHandler[Req, Res any](fullMethod string, call func(GraknServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GraknServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GraknServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func transactionHandler(srv any, stream grpc.ServerStream) error {
	return srv.(GraknServer).Transaction(&transactionServerStream{stream})
}

// GraknServiceDesc is the grpc.ServiceDesc of the Grakn service.
var GraknServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*GraknServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "databases_contains",
			Handler:    unaryHandler(DatabasesContainsFullMethodName, GraknServer.DatabasesContains),
		},
		{
			MethodName: "databases_create",
			Handler:    unaryHandler(DatabasesCreateFullMethodName, GraknServer.DatabasesCreate),
		},
		{
			MethodName: "databases_all",
			Handler:    unaryHandler(DatabasesAllFullMethodName, GraknServer.DatabasesAll),
		},
		{
			MethodName: "database_delete",
			Handler:    unaryHandler(DatabaseDeleteFullMethodName, GraknServer.DatabaseDelete),
		},
		{
			MethodName: "session_open",
			Handler:    unaryHandler(SessionOpenFullMethodName, GraknServer.SessionOpen),
		},
		{
			MethodName: "session_close",
			Handler:    unaryHandler(SessionCloseFullMethodName, GraknServer.SessionClose),
		},
		{
			MethodName: "session_pulse",
			Handler:    unaryHandler(SessionPulseFullMethodName, GraknServer.SessionPulse),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "transaction",
			Handler:       transactionHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "grakn.proto",
}
