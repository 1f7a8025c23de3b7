/*
Package posting implements the uniform posting-source iterator
contract (§4.4 of the query algebra spec) and its concrete
implementations: single-term postings, all-documents, value-range and
synonym (merged-sorted union). The storage-backed stores (index/memindex,
zstd-block-compressed, and index/postgresindex) live outside this
package and build TermSources from their stored postings.

Every Source is positioned at a "current" document once built (or
already at_end() if its postings are empty); AdvanceTo moves forward
only, to the least docid >= target that matches - callers never need
to rewind.
*/
package posting
