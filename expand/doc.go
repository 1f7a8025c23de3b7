/*
Package expand materialises unexpanded Wildcard and EditDistance query
leaves into a concrete SYNONYM/OR/MAX compound of Term nodes, drawn from
a term dictionary.

Expansion counting is per shard (sub-database): in a multi-shard
database the union of a wildcard's matches across shards may legally
exceed max_expansion, since the limit is enforced independently inside
each shard's dictionary. This is documented behaviour, not a bug - see
api_query.cc's wildcard tests, which this package's scenarios are
grounded on.

Per-shard term-frequency lookups (needed by the MOST_FREQUENT limit
policy) are cached with an LRU, since the same shard's frequency table
is typically consulted for many wildcard expansions within one query
session.
*/
package expand
