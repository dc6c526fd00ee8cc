package testserver

import (
	"context"

	"google.golang.org/grpc/codes"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// QueryResult is the reply to a query. Streaming query types reply with
// Parts, the others with Res.
type QueryResult struct {
	Res   *protocol.QueryManagerRes
	Parts []*protocol.QueryManagerResPart
}

// QueryHandler answers the queries sent to the server.
type QueryHandler func(ctx context.Context, req *protocol.QueryManagerReq) (QueryResult, error)

// UnimplementedQueries rejects every query.
func UnimplementedQueries(_ context.Context, req *protocol.QueryManagerReq) (QueryResult, error) {
	return QueryResult{}, graknerrors.NewStatus(codes.Unimplemented, graknerrors.ReasonUnimplemented,
		"the in-memory server does not evaluate "+req.Type.String()+" queries", nil)
}

// StaticQueries answers queries by their exact text and rejects the others.
func StaticQueries(results map[string]QueryResult) QueryHandler {
	return func(ctx context.Context, req *protocol.QueryManagerReq) (QueryResult, error) {
		if result, ok := results[req.Query]; ok {
			return result, nil
		}
		return UnimplementedQueries(ctx, req)
	}
}

func (tx *transaction) query(ctx context.Context, req *protocol.QueryManagerReq) (answer, error) {
	switch req.Type {
	case protocol.QueryTypeInsert, protocol.QueryTypeDelete:
		if err := tx.writeData(); err != nil {
			return answer{}, err
		}
	case protocol.QueryTypeDefine, protocol.QueryTypeUndefine:
		if err := tx.writeSchema(); err != nil {
			return answer{}, err
		}
	}

	result, err := tx.server.queries(ctx, req)
	if err != nil {
		return answer{}, err
	}

	if !req.Type.IsStreaming() {
		res := &protocol.QueryManagerRes{}
		if result.Res != nil {
			*res = *result.Res
		}
		done := &protocol.QueryDoneRes{}
		switch {
		case req.Type == protocol.QueryTypeDelete && res.DeleteRes == nil:
			res.DeleteRes = done
		case req.Type == protocol.QueryTypeDefine && res.DefineRes == nil:
			res.DefineRes = done
		case req.Type == protocol.QueryTypeUndefine && res.UndefineRes == nil:
			res.UndefineRes = done
		}
		return single(&protocol.TransactionRes{QueryManagerRes: res}), nil
	}

	parts := make([]*protocol.TransactionResPart, 0, len(result.Parts))
	for _, part := range result.Parts {
		parts = append(parts, &protocol.TransactionResPart{QueryManagerResPart: part})
	}
	return streamed(parts), nil
}
