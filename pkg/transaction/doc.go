// Package transaction implements a Grakn transaction over a single
// bidirectional gRPC stream.
//
// Every request is tagged with a fresh request id. A single receive loop routes
// each server message to the collector registered for its id, so any number of
// goroutines may issue requests on the same transaction concurrently.
// Streaming responses arrive in batches of up to the prefetch size; the next
// batch is requested only once the caller has consumed the previous one.
package transaction
