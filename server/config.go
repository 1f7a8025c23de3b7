package server

import (
	serviceconfig "github.com/IMQS/serviceconfigsgo"
)

const (
	serviceConfigFileName = "qalgebra.json"
	serviceConfigVersion  = 1
	serviceName           = "ImqsQalgebra"

	defaultDictionaryRefreshIntervalSeconds = 300
	defaultSlowQueryThresholdMillis         = 250
)

type ConfigHttp struct {
	Bind string
	Port string
}

type ConfigLog struct {
	ErrorFile  string
	AccessFile string
	// SlowQueryFile is rotated independently of ErrorFile/AccessFile via
	// natefinch/lumberjack, since slow-query volume and retention policy
	// don't track the operational log's.
	SlowQueryFile string
}

// ConfigShard describes one index.Provider backing store. Driver is
// "memindex" or "postgres"; DSN is ignored for "memindex".
type ConfigShard struct {
	Name         string
	Driver       string
	DSN          string
	HasPositions bool
}

// ConfigWeighting names the scheme applied to Match results, and its
// tuning constants, normally loaded from a separate weighting.toml
// (see LoadWeightingFile) rather than this JSON structural config -
// BM25's k1/b are retuned far more often than shards are added.
type ConfigWeighting struct {
	Scheme string // "bool", "tfidf", or "bm25"
	K1     float64
	B      float64
}

type Config struct {
	HTTP      ConfigHttp
	Log       ConfigLog
	Shards    []ConfigShard
	Weighting ConfigWeighting

	WeightingFile                    string
	VerboseLogging                   bool
	DictionaryRefreshIntervalSeconds int
	SlowQueryThresholdMillis         int
}

func (c *Config) LoadFile(filename string) error {
	if err := serviceconfig.GetConfig(filename, serviceName, serviceConfigVersion, serviceConfigFileName, c); err != nil {
		return err
	}
	if c.DictionaryRefreshIntervalSeconds == 0 {
		c.DictionaryRefreshIntervalSeconds = defaultDictionaryRefreshIntervalSeconds
	}
	if c.SlowQueryThresholdMillis == 0 {
		c.SlowQueryThresholdMillis = defaultSlowQueryThresholdMillis
	}
	if c.Weighting.Scheme == "" {
		c.Weighting.Scheme = "bm25"
	}
	return nil
}
