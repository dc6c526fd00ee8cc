// Package requests builds transport-ready transaction requests from a logical
// operation and its normalized arguments. Every function is pure; request ids
// are assigned by the transaction when the request is sent.
package requests
