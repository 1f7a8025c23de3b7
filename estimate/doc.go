/*
Package estimate computes match-count bounds - min, est (a point
estimate), and max - for a query tree without enumerating any posting
list to completion (§4.6). It consults only the cheap aggregate
statistics every posting source already exposes (term frequency
bounds, collection size), the same numbers package match's combinators
carry on their Source values, but walks the query tree directly so no
actual matching ever has to run.

Every division here is guarded: an empty collection, or a leaf with
zero estimated matches, must produce 0, never a panic or NaN
(zeroestimate1). XOR is the one operator that needs care beyond the
independence approximation every other combinator uses - a XOR whose
children all match the entire collection has an exact, parity-
determined count (all children full and an even child count means
every document is cancelled out; odd means none are), and the
parity-probability formula used here (see xorBounds) reduces to
exactly that at the all-full extreme, so no special case is needed
(xor3).
*/
package estimate
