package requests

import (
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

func conceptManagerReq(req *protocol.ConceptManagerReq) *protocol.TransactionReq {
	return &protocol.TransactionReq{ConceptManagerReq: req}
}

func ConceptManagerGetThingTypeReq(name string) *protocol.TransactionReq {
	return conceptManagerReq(&protocol.ConceptManagerReq{GetThingTypeReq: &protocol.GetThingTypeReq{Label: name}})
}

func ConceptManagerGetThingReq(iid string) *protocol.TransactionReq {
	return conceptManagerReq(&protocol.ConceptManagerReq{GetThingReq: &protocol.GetThingReq{IID: iid}})
}

func ConceptManagerPutEntityTypeReq(name string) *protocol.TransactionReq {
	return conceptManagerReq(&protocol.ConceptManagerReq{PutEntityTypeReq: &protocol.PutEntityTypeReq{Label: name}})
}

func ConceptManagerPutRelationTypeReq(name string) *protocol.TransactionReq {
	return conceptManagerReq(&protocol.ConceptManagerReq{PutRelationTypeReq: &protocol.PutRelationTypeReq{Label: name}})
}

func ConceptManagerPutAttributeTypeReq(name string, valueType protocol.ValueType) *protocol.TransactionReq {
	return conceptManagerReq(&protocol.ConceptManagerReq{PutAttributeTypeReq: &protocol.PutAttributeTypeReq{
		Label:     name,
		ValueType: valueType,
	}})
}

// QueryReq carries a query of the given type. options may be nil.
func QueryReq(queryType protocol.QueryType, query string, options *protocol.Options) *protocol.TransactionReq {
	return &protocol.TransactionReq{QueryManagerReq: &protocol.QueryManagerReq{
		Type:    queryType,
		Query:   query,
		Options: options,
	}}
}

// OpenReq opens a transaction in the session.
func OpenReq(sessionID string, transactionType protocol.TransactionType, options *protocol.Options, latencyMillis int32) *protocol.TransactionReq {
	return &protocol.TransactionReq{OpenReq: &protocol.OpenReq{
		SessionID:            sessionID,
		Type:                 transactionType,
		Options:              options,
		NetworkLatencyMillis: latencyMillis,
	}}
}

func CommitReq() *protocol.TransactionReq {
	return &protocol.TransactionReq{CommitReq: &protocol.CommitReq{}}
}

func RollbackReq() *protocol.TransactionReq {
	return &protocol.TransactionReq{RollbackReq: &protocol.RollbackReq{}}
}

// StreamContinueReq asks for the next batch of the streaming request reqID.
func StreamContinueReq(reqID string) *protocol.TransactionReq {
	return &protocol.TransactionReq{ReqID: reqID, StreamReq: &protocol.StreamReq{}}
}
