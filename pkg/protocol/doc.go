// Package protocol defines the wire messages exchanged with the server, the
// encoding discriminants carried by concept messages, the gRPC codec used to
// marshal them and the gRPC service descriptor.
//
// Messages follow protocol-buffer conventions: a "oneof" is a set of pointer
// fields of which exactly one is set.
package protocol
