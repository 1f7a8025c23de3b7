/*
Package memindex is the in-memory reference implementation of
index.Provider used by this module's own tests, the CLI, and the HTTP
debug server. Term postings are held gob-encoded and zstd-block-
compressed (github.com/klauspost/compress/zstd's one-shot EncodeAll/
DecodeAll API) rather than as plain []posting.Entry, so TermPostings
decompresses on the fly exactly as a real on-disk posting-list format
would, rather than silently assuming an uncompressed in-process
representation that a real backing store would never have.

Value-range postings are kept as one sorted-by-value slice per slot
and filtered by a linear scan at query time; a real index would use a
B-tree or similar, but the demo corpora this package serves (test
fixtures, CLI exploration) are small enough that this is simpler and
no less correct.
*/
package memindex
