// Package query sends Graql queries over a transaction and decodes their
// answers. Queries are passed to the server verbatim; the client does not
// parse them.
package query
