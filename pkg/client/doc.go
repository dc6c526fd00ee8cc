// Package client connects to a Grakn server and opens sessions and
// transactions against its databases.
//
//	c, err := client.New("localhost:1729")
//	...
//	session, err := c.Session(ctx, "social", protocol.SessionTypeSchema)
//	...
//	tx, err := session.Transaction(ctx, protocol.TransactionTypeWrite)
//	...
//	friendship, err := tx.Concepts().PutRelationType(ctx, "friendship")
package client
