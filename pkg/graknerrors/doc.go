// Package graknerrors defines the error taxonomy of the client, the fixed
// catalog of error messages and the mapping from gRPC statuses and
// server-reported request errors.
//
// Callers branch on Kind rather than on message text:
//
//	if graknerrors.IsKind(err, graknerrors.SchemaViolation) { ... }
package graknerrors
