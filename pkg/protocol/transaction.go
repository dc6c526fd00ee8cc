package protocol

import "strconv"

// TransactionType is the access mode of a transaction.
type TransactionType int32

const (
	TransactionTypeRead  TransactionType = 0
	TransactionTypeWrite TransactionType = 1
)

func (t TransactionType) String() string {
	switch t {
	case TransactionTypeRead:
		return "READ"
	case TransactionTypeWrite:
		return "WRITE"
	default:
		return strconv.Itoa(int(t))
	}
}

// StreamState marks the end of a batch of response parts.
type StreamState int32

const (
	// StreamStateContinue indicates that the server holds further parts and
	// waits for a StreamReq before sending them.
	StreamStateContinue StreamState = 0

	// StreamStateDone indicates that the stream is complete.
	StreamStateDone StreamState = 1
)

// Options are the per-transaction or per-query options sent to the server.
// Unset fields take the server's defaults.
type Options struct {
	Infer                          *bool  `json:"infer,omitempty"`
	TraceInference                 *bool  `json:"trace_inference,omitempty"`
	Explain                        *bool  `json:"explain,omitempty"`
	Parallel                       *bool  `json:"parallel,omitempty"`
	Prefetch                       *bool  `json:"prefetch,omitempty"`
	PrefetchSize                   *int32 `json:"prefetch_size,omitempty"`
	SessionIdleTimeoutMillis       *int32 `json:"session_idle_timeout_millis,omitempty"`
	SchemaLockAcquireTimeoutMillis *int32 `json:"schema_lock_acquire_timeout_millis,omitempty"`
}

// TransactionReq is a message sent by the client on a transaction stream.
// Exactly one request field is set.
type TransactionReq struct {
	ReqID    string            `json:"req_id"`
	Metadata map[string]string `json:"metadata,omitempty"`

	OpenReq           *OpenReq           `json:"open_req,omitempty"`
	CommitReq         *CommitReq         `json:"commit_req,omitempty"`
	RollbackReq       *RollbackReq       `json:"rollback_req,omitempty"`
	StreamReq         *StreamReq         `json:"stream_req,omitempty"`
	QueryManagerReq   *QueryManagerReq   `json:"query_manager_req,omitempty"`
	ConceptManagerReq *ConceptManagerReq `json:"concept_manager_req,omitempty"`
	TypeReq           *TypeReq           `json:"type_req,omitempty"`
	ThingReq          *ThingReq          `json:"thing_req,omitempty"`
}

// OpenReq opens a transaction within a session.
type OpenReq struct {
	SessionID            string          `json:"session_id"`
	Type                 TransactionType `json:"type"`
	Options              *Options        `json:"options,omitempty"`
	NetworkLatencyMillis int32           `json:"network_latency_millis,omitempty"`
}

type (
	// CommitReq commits a write transaction.
	CommitReq struct{}

	// RollbackReq discards the uncommitted changes of a transaction.
	RollbackReq struct{}

	// StreamReq asks the server for the next batch of a streaming response.
	StreamReq struct{}
)

// TransactionServer is a message sent by the server on a transaction stream.
// Exactly one of Res and ResPart is set.
type TransactionServer struct {
	Res     *TransactionRes     `json:"res,omitempty"`
	ResPart *TransactionResPart `json:"res_part,omitempty"`
}

// TransactionRes is the single response to a request. A response carrying an
// Error terminates the request, streaming or not.
type TransactionRes struct {
	ReqID string `json:"req_id"`
	Error *Error `json:"error,omitempty"`

	OpenRes           *OpenRes           `json:"open_res,omitempty"`
	CommitRes         *CommitRes         `json:"commit_res,omitempty"`
	RollbackRes       *RollbackRes       `json:"rollback_res,omitempty"`
	QueryManagerRes   *QueryManagerRes   `json:"query_manager_res,omitempty"`
	ConceptManagerRes *ConceptManagerRes `json:"concept_manager_res,omitempty"`
	TypeRes           *TypeRes           `json:"type_res,omitempty"`
	ThingRes          *ThingRes          `json:"thing_res,omitempty"`
}

type (
	OpenRes     struct{}
	CommitRes   struct{}
	RollbackRes struct{}
)

// TransactionResPart is one part of a streaming response.
type TransactionResPart struct {
	ReqID string `json:"req_id"`

	StreamResPart       *StreamResPart       `json:"stream_res_part,omitempty"`
	QueryManagerResPart *QueryManagerResPart `json:"query_manager_res_part,omitempty"`
	TypeResPart         *TypeResPart         `json:"type_res_part,omitempty"`
	ThingResPart        *ThingResPart        `json:"thing_res_part,omitempty"`
}

// StreamResPart ends a batch of response parts.
type StreamResPart struct {
	State StreamState `json:"state"`
}

// Error is a server-reported failure of a single request.
type Error struct {
	// Code is the gRPC status code classifying the failure.
	Code uint32 `json:"code"`

	// Reason is a stable identifier of the failure, such as SCHEMA_VIOLATION.
	Reason string `json:"reason"`

	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}
