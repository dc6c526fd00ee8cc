package concept

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
	"github.com/flyingsilverfin/grakn-client-go/pkg/stream"
)

type MockTransaction struct {
	mock.Mock
}

func (m *MockTransaction) Execute(_ context.Context, req *protocol.TransactionReq) (*protocol.TransactionRes, error) {
	args := m.Called(req)
	res, _ := args.Get(0).(*protocol.TransactionRes)
	return res, args.Error(1)
}

func (m *MockTransaction) Stream(_ context.Context, req *protocol.TransactionReq) *stream.Stream[*protocol.TransactionResPart] {
	args := m.Called(req)
	return args.Get(0).(*stream.Stream[*protocol.TransactionResPart])
}

func (m *MockTransaction) Concepts() Manager {
	return NewManager(m)
}

// pagedParts serves each page on its own fetch and counts the fetches.
func pagedParts(fetches *int, pages ...[]*protocol.TransactionResPart) *stream.Stream[*protocol.TransactionResPart] {
	return stream.FromPages(func(context.Context) ([]*protocol.TransactionResPart, bool, error) {
		page := pages[*fetches]
		*fetches++
		return page, *fetches < len(pages), nil
	})
}

func ownsPart(types ...*protocol.Type) *protocol.TransactionResPart {
	return &protocol.TransactionResPart{TypeResPart: &protocol.TypeResPart{
		ThingTypeGetOwnsResPart: &protocol.TypesResPart{Types: types},
	}}
}

func typeRes(res *protocol.TypeRes) *protocol.TransactionRes {
	return &protocol.TransactionRes{TypeRes: res}
}

func attributeTypeProto(name string, valueType protocol.ValueType) *protocol.Type {
	return &protocol.Type{Label: name, Encoding: protocol.TypeEncodingAttributeType, ValueType: valueType}
}

func typeReqFor(name string, matches func(*protocol.TypeReq) bool) any {
	return mock.MatchedBy(func(req *protocol.TransactionReq) bool {
		return req.TypeReq != nil && req.TypeReq.Label == name && matches(req.TypeReq)
	})
}
