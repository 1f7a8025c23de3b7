/*
Package query implements the query algebra's tree representation: leaf
terms, compound operators (AND, OR, XOR, AND_NOT, AND_MAYBE, FILTER,
PHRASE, NEAR, SYNONYM, MAX, ELITE_SET, SCALE_WEIGHT, and the VALUE_*
range operators), and the unexpanded term-expansion leaves (Wildcard,
EditDistance).

Trees are immutable once built, and nodes are shared freely between
queries. The accumulator methods (AndAssign, OrAssign, XorAssign) mimic
the &=, |=, ^= operators of the originating C++ query algebra: they
mutate in place only when the receiver is the tree's sole owner,
otherwise they copy-on-write. Ownership here is approximated with an
explicit reference count on Node rather than a borrow checker, since Go
has neither; Clone bumps the count, and once a node has been shared its
count is never decremented back down. This is a conservative
approximation of the original's ownership model, not true refcounting,
but it is sufficient to satisfy every accumulator invariant the
query algebra promises.

Construction applies only the "free" simplifications that need no
external state: MatchAll/MatchNothing identities on the binary
operators, SCALE_WEIGHT factor folding, and syntactic wildcard
collapse. Rewrites that depend on the index (posting-list emptiness,
term-dictionary expansion, positional availability per shard) are the
optimiser's job, package optimize.
*/
package query
