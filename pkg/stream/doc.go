// Package stream provides a lazy, pull-based and non-restartable sequence type
// used for every multi-valued answer returned by the server.
//
// A Stream is usually backed by a paginated server cursor: each pull that
// exhausts the buffered items fetches exactly one more page, blocking the
// caller until the page arrives. Streams compose with Map and FlatMap without
// materializing intermediate results, and interoperate with range-over-func
// through All.
//
// Streams are not safe for concurrent use and can be enumerated only once.
package stream
