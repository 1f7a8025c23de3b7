/*
Package optimize implements the query-rewrite pass that runs once per
query before matching (§4.3). It rebuilds the tree bottom-up through
the same smart constructors package query already uses at build time -
query.And, query.Or, query.Scale, and so on - so MatchAll/MatchNothing
absorption, SCALE_WEIGHT composition, and identical-operand XOR
collapse all apply uniformly to nodes that only became trivial *after*
expansion or after a posting-list/value-range emptiness check, not just
to nodes that were already trivial at construction time.

Two historical-bug regressions shape what this package deliberately
does NOT do:

  - hoistnotbug1: AND_NOT is never hoisted or reassociated relative to
    a sibling positional operator. Associative flattening (rule 2) only
    ever merges a compound into a parent of the *same* operator
    (AND-into-AND, OR-into-OR, XOR-into-XOR); AND_NOT's children are
    never touched by it, so `PHRASE(a,b) AND_NOT X AND c` keeps its
    PHRASE subtree exactly where the user put it.
  - subdbwithoutpos1: no rewrite here ever turns a PHRASE/NEAR into a
    plain AND, so an index with some shards lacking positional data
    can never silently lose the positional constraint. Per-shard
    positional fallback (a shard without positions contributing zero
    matches to a positional subtree) is the matcher's job, package
    match - it is not expressible as a context-free tree rewrite here.

Associative flattening (rule 2) also never descends into a PHRASE/NEAR
node's own children: those are position slots, not an associative
operator's operands, so a PHRASE whose child happens to be an AND/NEAR/
PHRASE is left exactly as built. The matcher rejects that shape with
UnimplementedError at evaluation time, per §7.
*/
package optimize
