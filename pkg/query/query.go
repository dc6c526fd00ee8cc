package query

import (
	"context"
	"strings"

	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/concept/answer"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/requests"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// Option overrides a transaction option for a single query.
type Option func(*protocol.Options)

func WithInfer(infer bool) Option {
	return func(o *protocol.Options) { o.Infer = &infer }
}

func WithTraceInference(trace bool) Option {
	return func(o *protocol.Options) { o.TraceInference = &trace }
}

func WithExplain(explain bool) Option {
	return func(o *protocol.Options) { o.Explain = &explain }
}

func WithParallel(parallel bool) Option {
	return func(o *protocol.Options) { o.Parallel = &parallel }
}

// WithPrefetchSize sets the number of answers the server sends before
// waiting for the client to ask for more.
func WithPrefetchSize(size int32) Option {
	return func(o *protocol.Options) { o.PrefetchSize = &size }
}

func optionsProto(opts []Option) *protocol.Options {
	if len(opts) == 0 {
		return nil
	}
	p := &protocol.Options{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Manager runs queries against a transaction.
type Manager struct {
	tx concept.Transaction
}

// NewManager returns a Manager running its queries against tx.
func NewManager(tx concept.Transaction) *Manager {
	return &Manager{tx: tx}
}

// Match returns the answers to a match query.
func (m *Manager) Match(ctx context.Context, query string, opts ...Option) *stream.Stream[answer.ConceptMap] {
	return answers(m.stream(ctx, protocol.QueryTypeMatch, query, opts), "match_res_part",
		func(p *protocol.QueryManagerResPart) ([]*protocol.ConceptMap, bool) {
			if p.MatchResPart == nil {
				return nil, false
			}
			return p.MatchResPart.Answers, true
		}, answer.ConceptMapOf)
}

// MatchAggregate returns the result of a match query ending in an aggregate,
// such as `count` or `mean`.
func (m *Manager) MatchAggregate(ctx context.Context, query string, opts ...Option) (answer.Numeric, error) {
	res, err := m.execute(ctx, protocol.QueryTypeMatchAggregate, query, opts)
	if err != nil {
		return answer.Numeric{}, err
	}
	if res.MatchAggregateRes == nil {
		return answer.Numeric{}, graknerrors.MissingResponse.New("match_aggregate_res")
	}
	return answer.NumericOf(res.MatchAggregateRes.Answer)
}

// MatchGroup returns the answers to a grouped match query.
func (m *Manager) MatchGroup(ctx context.Context, query string, opts ...Option) *stream.Stream[answer.ConceptMapGroup] {
	return answers(m.stream(ctx, protocol.QueryTypeMatchGroup, query, opts), "match_group_res_part",
		func(p *protocol.QueryManagerResPart) ([]*protocol.ConceptMapGroup, bool) {
			if p.MatchGroupResPart == nil {
				return nil, false
			}
			return p.MatchGroupResPart.Answers, true
		}, answer.ConceptMapGroupOf)
}

// MatchGroupAggregate returns one aggregate per group of a grouped match
// query.
func (m *Manager) MatchGroupAggregate(ctx context.Context, query string, opts ...Option) *stream.Stream[answer.NumericGroup] {
	return answers(m.stream(ctx, protocol.QueryTypeMatchGroupAggregate, query, opts), "match_group_aggregate_res_part",
		func(p *protocol.QueryManagerResPart) ([]*protocol.NumericGroup, bool) {
			if p.MatchGroupAggregateResPart == nil {
				return nil, false
			}
			return p.MatchGroupAggregateResPart.Answers, true
		}, answer.NumericGroupOf)
}

// Insert returns the concepts inserted by an insert query.
func (m *Manager) Insert(ctx context.Context, query string, opts ...Option) *stream.Stream[answer.ConceptMap] {
	return answers(m.stream(ctx, protocol.QueryTypeInsert, query, opts), "insert_res_part",
		func(p *protocol.QueryManagerResPart) ([]*protocol.ConceptMap, bool) {
			if p.InsertResPart == nil {
				return nil, false
			}
			return p.InsertResPart.Answers, true
		}, answer.ConceptMapOf)
}

func (m *Manager) Delete(ctx context.Context, query string, opts ...Option) error {
	return m.done(ctx, protocol.QueryTypeDelete, query, opts, func(res *protocol.QueryManagerRes) bool {
		return res.DeleteRes != nil
	})
}

func (m *Manager) Define(ctx context.Context, query string, opts ...Option) error {
	return m.done(ctx, protocol.QueryTypeDefine, query, opts, func(res *protocol.QueryManagerRes) bool {
		return res.DefineRes != nil
	})
}

func (m *Manager) Undefine(ctx context.Context, query string, opts ...Option) error {
	return m.done(ctx, protocol.QueryTypeUndefine, query, opts, func(res *protocol.QueryManagerRes) bool {
		return res.UndefineRes != nil
	})
}

func (m *Manager) done(ctx context.Context, queryType protocol.QueryType, query string, opts []Option, acknowledged func(*protocol.QueryManagerRes) bool) error {
	res, err := m.execute(ctx, queryType, query, opts)
	if err != nil {
		return err
	}
	if !acknowledged(res) {
		return graknerrors.MissingResponse.New(strings.ToLower(queryType.String()) + "_res")
	}
	return nil
}

func (m *Manager) execute(ctx context.Context, queryType protocol.QueryType, query string, opts []Option) (*protocol.QueryManagerRes, error) {
	if strings.TrimSpace(query) == "" {
		return nil, graknerrors.EmptyQuery.New()
	}
	res, err := m.tx.Execute(ctx, requests.QueryReq(queryType, query, optionsProto(opts)))
	if err != nil {
		return nil, err
	}
	if res == nil || res.QueryManagerRes == nil {
		return nil, graknerrors.MissingResponse.New("query_manager_res")
	}
	return res.QueryManagerRes, nil
}

func (m *Manager) stream(ctx context.Context, queryType protocol.QueryType, query string, opts []Option) *stream.Stream[*protocol.QueryManagerResPart] {
	if strings.TrimSpace(query) == "" {
		return stream.Failed[*protocol.QueryManagerResPart](graknerrors.EmptyQuery.New())
	}
	parts := m.tx.Stream(ctx, requests.QueryReq(queryType, query, optionsProto(opts)))
	return stream.MapErr(parts, func(part *protocol.TransactionResPart) (*protocol.QueryManagerResPart, error) {
		if part == nil || part.QueryManagerResPart == nil {
			return nil, graknerrors.MissingResponse.New("query_manager_res_part")
		}
		return part.QueryManagerResPart, nil
	})
}

func answers[M, A any](parts *stream.Stream[*protocol.QueryManagerResPart], field string, page func(*protocol.QueryManagerResPart) ([]M, bool), decode func(M) (A, error)) *stream.Stream[A] {
	items := stream.FlatMapStream(parts, func(part *protocol.QueryManagerResPart) *stream.Stream[M] {
		ms, ok := page(part)
		if !ok {
			return stream.Failed[M](graknerrors.MissingResponse.New(field))
		}
		return stream.FromSlice(ms)
	})
	return stream.MapErr(items, decode)
}
