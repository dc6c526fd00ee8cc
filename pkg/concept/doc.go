// Package concept models the schema types and data instances of a Grakn
// database.
//
// Handles decoded from server responses are local: they describe a concept as
// it was known when the response was decoded and issue no requests. Calling
// AsRemote binds a handle to a transaction and returns a remote handle whose
// methods are executed against that transaction:
//
//	friendship, err := tx.Concepts().GetRelationType(ctx, "friendship")
//	...
//	remote, err := concept.Remote[concept.RemoteRelationType](friendship, tx)
//	...
//	roles, err := remote.GetRelates(ctx).Collect(ctx)
//
// Handles are never cached: every decode produces fresh values, and a remote
// handle is only valid for as long as its transaction is open.
package concept
