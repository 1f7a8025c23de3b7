/*
Package match lowers an optimised query tree (§4.3's output - callers
must run package optimize's Optimise first) into a single pull-based
posting.Source and drives weighting. It assumes KindWildcard and
KindEditDistance leaves have already been expanded away; Lower returns
ErrUnoptimised if it encounters one.

Per-leaf weighting is applied exactly once per distinct query leaf:
a bare Term leaf is wrapped with the weighting scheme where it is
lowered, but a SYNONYM subtree's children are lowered *unweighted* and
merged into one posting.SynonymSource first, which is then wrapped
once. This mirrors the wildcard4 regression this package is built
against - a term appearing once explicitly and once inside a SYNONYM-
combined wildcard/edit-distance expansion must contribute its weight
once, not twice.

A PHRASE/NEAR node whose immediate child is itself AND, NEAR, or PHRASE
is rejected with ErrUnsupportedComposition: those shapes are accepted
by the query tree and the optimiser (per §4.3 rule 2) but have no
defined positional-evaluation semantics. An index shard reporting
HasPositions() == false contributes zero matches to a positional
subtree rather than erroring - this is how a corpus with some
positionless shards stays consistent without the optimiser ever having
to know about sharding (subdbwithoutpos1).
*/
package match
