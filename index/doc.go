/*
Package index defines Provider, the bundled external-collaborator
surface (§6) every layer of this module needs from a real index: the
posting-source lookups package match drives a search with, the cheap
bound statistics package estimate reads, the dictionary scan package
expand materialises wildcards against, and the per-shard positional
flag the optimiser and matcher both respect.

Two concrete Providers live in subpackages: memindex, an in-memory
reference implementation used by tests, the CLI, and the HTTP debug
server; and postgresindex, a lib/pq-backed implementation for a real
document corpus stored in Postgres.
*/
package index
