package transaction

import (
	"math"
	"time"

	"github.com/ccoveille/go-safecast/v2"
	"github.com/creasty/defaults"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// Options configure a session or a transaction. The zero value is not
// meaningful; use NewOptions.
type Options struct {
	Infer                    bool          `default:"false"`
	TraceInference           bool          `default:"false"`
	Explain                  bool          `default:"false"`
	Parallel                 bool          `default:"true"`
	Prefetch                 bool          `default:"true"`
	PrefetchSize             int32         `default:"50"`
	SessionIdleTimeout       time.Duration `default:"30s"`
	SchemaLockAcquireTimeout time.Duration `default:"10s"`
}

// Option mutates Options.
type Option func(*Options)

// NewOptions returns the default options with opts applied in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	defaults.MustSet(o)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func WithInfer(infer bool) Option {
	return func(o *Options) { o.Infer = infer }
}

func WithTraceInference(trace bool) Option {
	return func(o *Options) { o.TraceInference = trace }
}

func WithExplain(explain bool) Option {
	return func(o *Options) { o.Explain = explain }
}

func WithParallel(parallel bool) Option {
	return func(o *Options) { o.Parallel = parallel }
}

func WithPrefetch(prefetch bool) Option {
	return func(o *Options) { o.Prefetch = prefetch }
}

// WithPrefetchSize sets how many answers the server sends before waiting for
// the client to ask for more.
func WithPrefetchSize(size int32) Option {
	return func(o *Options) { o.PrefetchSize = size }
}

func WithSessionIdleTimeout(timeout time.Duration) Option {
	return func(o *Options) { o.SessionIdleTimeout = timeout }
}

func WithSchemaLockAcquireTimeout(timeout time.Duration) Option {
	return func(o *Options) { o.SchemaLockAcquireTimeout = timeout }
}

// Proto returns the wire form of the options.
func (o *Options) Proto() *protocol.Options {
	if o == nil {
		return nil
	}
	return &protocol.Options{
		Infer:                          ptr(o.Infer),
		TraceInference:                 ptr(o.TraceInference),
		Explain:                        ptr(o.Explain),
		Parallel:                       ptr(o.Parallel),
		Prefetch:                       ptr(o.Prefetch),
		PrefetchSize:                   ptr(o.PrefetchSize),
		SessionIdleTimeoutMillis:       ptr(millis(o.SessionIdleTimeout)),
		SchemaLockAcquireTimeoutMillis: ptr(millis(o.SchemaLockAcquireTimeout)),
	}
}

func ptr[T any](v T) *T { return &v }

// millis saturates at the largest duration the wire form can carry.
func millis(d time.Duration) int32 {
	ms, err := safecast.Convert[int32](d.Milliseconds())
	if err != nil {
		return math.MaxInt32
	}
	return ms
}
