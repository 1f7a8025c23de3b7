package server

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/IMQS/log"
	"github.com/jasonlvhit/gocron"
	"github.com/natefinch/lumberjack"

	"github.com/IMQS/qalgebra/estimate"
	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/index"
	"github.com/IMQS/qalgebra/index/memindex"
	"github.com/IMQS/qalgebra/index/postgresindex"
	"github.com/IMQS/qalgebra/match"
	"github.com/IMQS/qalgebra/optimize"
	"github.com/IMQS/qalgebra/query"
)

// Engine binds a Config to the live collaborators it describes: one
// index.Provider per shard, a Matcher, an optimiser cache, and the
// ambient logging this module carries exactly the way the teacher's
// own Engine does.
type Engine struct {
	Config     *Config
	ConfigLock sync.RWMutex
	ConfigFile string

	ErrorLog  *log.Logger
	AccessLog *log.Logger

	slowQueryLog  *lumberjack.Logger
	schedulerStop chan bool

	shards    map[string]index.Provider
	weighting match.Weighting

	optimiseCache *optimize.Cache
}

func pickLogFile(filename, defaultFilename string) string {
	if filename != "" {
		return filename
	}
	return defaultFilename
}

func (e *Engine) initLogging() {
	config := e.GetConfig()

	isWindows := runtime.GOOS == "windows"
	e.ErrorLog = log.New(pickLogFile(config.Log.ErrorFile, log.Stderr), !isWindows)
	e.AccessLog = log.New(pickLogFile(config.Log.AccessFile, log.Stdout), !isWindows)
	if config.VerboseLogging {
		e.ErrorLog.Level = log.Trace
		e.AccessLog.Level = log.Trace
	}
	if config.Log.SlowQueryFile != "" {
		e.slowQueryLog = &lumberjack.Logger{
			Filename:   config.Log.SlowQueryFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}
	}
}

// LoadConfigFromFile reads e.ConfigFile into a fresh Config.
func (e *Engine) LoadConfigFromFile() error {
	cfg := &Config{}
	if err := cfg.LoadFile(e.ConfigFile); err != nil {
		return err
	}
	e.Config = cfg
	return nil
}

// GetConfig returns the most recently loaded Config.
func (e *Engine) GetConfig() *Config {
	e.ConfigLock.RLock()
	c := e.Config
	e.ConfigLock.RUnlock()
	return c
}

// Initialize opens every configured shard, builds the Weighting
// scheme, and schedules the periodic dictionary-frequency refresh;
// the job runs once StartScheduler is called.
func (e *Engine) Initialize() error {
	e.initLogging()

	config := e.GetConfig()
	if err := LoadWeightingFile(config.WeightingFile, &config.Weighting); err != nil {
		return err
	}

	e.shards = map[string]index.Provider{}
	for _, sh := range config.Shards {
		p, err := openShard(sh)
		if err != nil {
			return fmt.Errorf("opening shard %v: %v", sh.Name, err)
		}
		e.shards[sh.Name] = p
	}
	if len(e.shards) == 0 {
		// A bare install still needs something to query against.
		mem, err := memindex.New(true)
		if err != nil {
			return err
		}
		e.shards["default"] = mem
	}

	avgDocLength := 0.0
	for _, p := range e.shards {
		avgDocLength = p.AverageDocumentLength()
		break
	}
	weighting, err := BuildWeighting(config.Weighting, avgDocLength)
	if err != nil {
		return err
	}
	e.weighting = weighting

	e.optimiseCache = optimize.NewCache(256)

	gocron.Every(uint64(config.DictionaryRefreshIntervalSeconds)).Seconds().Do(e.refreshDictionaryFrequencies)

	return nil
}

func openShard(cfg ConfigShard) (index.Provider, error) {
	switch cfg.Driver {
	case "", "memindex":
		return memindex.New(cfg.HasPositions)
	case "postgres":
		return postgresindex.Open("postgres", cfg.DSN, cfg.HasPositions)
	}
	return nil, fmt.Errorf("unknown shard driver %q", cfg.Driver)
}

// StartScheduler runs the dictionary-frequency refresh loop in the
// background, mirroring the teacher's StartAutoVacuum/gocron wiring.
func (e *Engine) StartScheduler() {
	e.schedulerStop = gocron.Start()
}

// refreshDictionaryFrequencies only logs a debug line. It does not
// clear the shards' expand.Cache, so cached dictionary scans (and the
// collection frequencies the MOST_FREQUENT limit policy reads from
// them) stay until the LRU evicts them.
func (e *Engine) refreshDictionaryFrequencies() {
	e.ErrorLog.Debug("server: refreshDictionaryFrequencies tick")
}

// Dictionary returns the term dictionary of shardName, for callers
// (the expand command of cmd/imqs-qalgebra) that need to run a
// wildcard or edit-distance expansion outside of a Match/Estimate call.
func (e *Engine) Dictionary(shardName string) (expand.Dictionary, error) {
	return e.shard(shardName)
}

func (e *Engine) shard(name string) (index.Provider, error) {
	if name == "" {
		for _, p := range e.shards {
			return p, nil
		}
	}
	p, ok := e.shards[name]
	if !ok {
		return nil, fmt.Errorf("unknown shard %q", name)
	}
	return p, nil
}

// Describe returns the canonical textual description of q.
func (e *Engine) Describe(q query.Query) string {
	return query.Describe(q)
}

// Match optimises q against shardName and evaluates it, returning
// every matching docid in ascending order.
func (e *Engine) Match(shardName string, q query.Query) ([]uint32, error) {
	start := time.Now()
	p, err := e.shard(shardName)
	if err != nil {
		return nil, err
	}
	optimised, err := optimize.OptimiseCached(q, p, e.optimiseCache)
	if err != nil {
		return nil, err
	}
	m := match.NewMatcher(p, e.weighting)
	src, err := m.Find(optimised)
	if err != nil {
		return nil, err
	}
	var out []uint32
	for !src.AtEnd() {
		out = append(out, uint32(src.CurrentDocID()))
		src.AdvanceTo(src.CurrentDocID() + 1)
	}
	e.logSlowQuery("Match", shardName, q, time.Since(start))
	return out, nil
}

// Estimate optimises q against shardName and computes match-count
// bounds without enumerating matches.
func (e *Engine) Estimate(shardName string, q query.Query) (estimate.Bounds, error) {
	start := time.Now()
	p, err := e.shard(shardName)
	if err != nil {
		return estimate.Bounds{}, err
	}
	optimised, err := optimize.OptimiseCached(q, p, e.optimiseCache)
	if err != nil {
		return estimate.Bounds{}, err
	}
	b, err := estimate.Estimate(optimised, p)
	e.logSlowQuery("Estimate", shardName, q, time.Since(start))
	return b, err
}

func (e *Engine) logSlowQuery(op, shardName string, q query.Query, elapsed time.Duration) {
	config := e.GetConfig()
	if elapsed < time.Duration(config.SlowQueryThresholdMillis)*time.Millisecond {
		return
	}
	e.AccessLog.Warnf("Slow %v on shard %v took %.1fms: %v", op, shardName, elapsed.Seconds()*1000, query.Describe(q))
	if e.slowQueryLog != nil {
		fmt.Fprintf(e.slowQueryLog, "%v\t%v\t%v\t%.1fms\t%v\n", time.Now().Format(time.RFC3339), op, shardName, elapsed.Seconds()*1000, query.Describe(q))
	}
}

// Close releases every open shard and log file.
func (e *Engine) Close() {
	if e.schedulerStop != nil {
		e.schedulerStop <- true
	}
	for _, p := range e.shards {
		if closer, ok := p.(interface{ Close() error }); ok {
			closer.Close()
		}
	}
	if e.ErrorLog != nil {
		e.ErrorLog.Close()
		e.ErrorLog = nil
	}
	if e.AccessLog != nil {
		e.AccessLog.Close()
		e.AccessLog = nil
	}
	if e.slowQueryLog != nil {
		e.slowQueryLog.Close()
	}
}
