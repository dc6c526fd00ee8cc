package transaction

import (
	"context"
	"sync"

	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// collector buffers the server messages of a single request until the caller
// takes them. Messages queued before a failure are still handed out.
type collector struct {
	mu    sync.Mutex
	queue []*protocol.TransactionServer
	err   error
	ready chan struct{}
}

func newCollector() *collector {
	return &collector{ready: make(chan struct{}, 1)}
}

func (c *collector) put(msg *protocol.TransactionServer) {
	c.mu.Lock()
	c.queue = append(c.queue, msg)
	c.mu.Unlock()
	c.signal()
}

func (c *collector) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
	c.signal()
}

func (c *collector) signal() {
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// take blocks until a message is available, the collector failed or ctx is
// done.
func (c *collector) take(ctx context.Context) (*protocol.TransactionServer, error) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			msg := c.queue[0]
			c.queue[0] = nil
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return msg, nil
		}
		if c.err != nil {
			err := c.err
			c.mu.Unlock()
			return nil, err
		}
		c.mu.Unlock()

		select {
		case <-c.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
