package concept

import (
	"context"

	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

// pages flattens the pages of a streaming response and decodes every item. A
// part that does not hold the expected page fails the stream.
func pages[P, M, T any](parts *stream.Stream[P], field string, page func(P) ([]M, bool), decode func(M) (T, error)) *stream.Stream[T] {
	items := stream.FlatMapStream(parts, func(part P) *stream.Stream[M] {
		ms, ok := page(part)
		if !ok {
			return stream.Failed[M](graknerrors.MissingResponse.New(field))
		}
		return stream.FromSlice(ms)
	})
	return stream.MapErr(items, decode)
}

func executeType(ctx context.Context, tx Transaction, req *protocol.TransactionReq) (*protocol.TypeRes, error) {
	res, err := tx.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil || res.TypeRes == nil {
		return nil, graknerrors.MissingResponse.New("type_res")
	}
	return res.TypeRes, nil
}

func streamType(ctx context.Context, tx Transaction, req *protocol.TransactionReq) *stream.Stream[*protocol.TypeResPart] {
	return stream.MapErr(tx.Stream(ctx, req), func(part *protocol.TransactionResPart) (*protocol.TypeResPart, error) {
		if part == nil || part.TypeResPart == nil {
			return nil, graknerrors.MissingResponse.New("type_res_part")
		}
		return part.TypeResPart, nil
	})
}

func executeThing(ctx context.Context, tx Transaction, req *protocol.TransactionReq) (*protocol.ThingRes, error) {
	res, err := tx.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil || res.ThingRes == nil {
		return nil, graknerrors.MissingResponse.New("thing_res")
	}
	return res.ThingRes, nil
}

func streamThing(ctx context.Context, tx Transaction, req *protocol.TransactionReq) *stream.Stream[*protocol.ThingResPart] {
	return stream.MapErr(tx.Stream(ctx, req), func(part *protocol.TransactionResPart) (*protocol.ThingResPart, error) {
		if part == nil || part.ThingResPart == nil {
			return nil, graknerrors.MissingResponse.New("thing_res_part")
		}
		return part.ThingResPart, nil
	})
}

func typesIn(p *protocol.TypesResPart) ([]*protocol.Type, bool) {
	if p == nil {
		return nil, false
	}
	return p.Types, true
}

func thingsIn(p *protocol.ThingsResPart) ([]*protocol.Thing, bool) {
	if p == nil {
		return nil, false
	}
	return p.Things, true
}
