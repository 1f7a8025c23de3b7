/*
Package server is the ambient HTTP/config/logging layer around the
query algebra core: an Engine bundles one or more index.Provider
shards, a match.Weighting scheme, and the optimiser's structural-hash
cache, and exposes Describe/Match/Estimate both as direct Go calls (for
the cmd/imqs-qalgebra CLI) and over a small httprouter-based HTTP API
(for ad-hoc debugging and ops tooling).

Configuration is JSON, loaded via github.com/IMQS/serviceconfigsgo the
same way the teacher's own server.Config is; weighting-scheme tuning
(BM25's k1/b) lives in a separate weighting.toml decoded with
github.com/BurntSushi/toml, since those constants get retuned far more
often than shards get added or removed. A background
github.com/jasonlvhit/gocron job periodically ticks the dictionary-
frequency refresh hook; a dedicated github.com/natefinch/lumberjack
log captures queries whose Match or Estimate call runs past a
configured threshold, independent of the operational error/access
logs' own rotation.
*/
package server
