/*
Package postgresindex is a Postgres-backed index.Provider, built the
way this module's teacher opens and migrates its own index database:
github.com/BurntSushi/migration runs an ordered list of forward-only
SQL migrations against a lib/pq connection, creating the schema on
first connect and leaving it alone on every subsequent one.

Unlike memindex's single compressed blob per term, postings here are
plain rows in a term_postings table, one row per (term, docid). A
TermPostings call runs one SELECT, ordered by docid, and materialises
the result into a posting.TermSource - the same in-memory iterator
memindex uses - since package posting's Source contract has no SQL-
backed implementation of its own and every matcher combinator expects
to call AdvanceTo/CurrentWeight/Positions directly, not issue further
queries mid-walk.
*/
package postgresindex
