package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/IMQS/cli"
	"github.com/IMQS/gowinsvc/service"

	"github.com/IMQS/qalgebra/expand"
	"github.com/IMQS/qalgebra/query"
	"github.com/IMQS/qalgebra/server"
)

func main() {
	app := cli.App{}
	app.Description = "imqs-qalgebra -c=configfile [options] command"
	app.DefaultExec = exec
	app.AddCommand("serve", "Run the HTTP debug/ops server")
	app.AddCommand("describe", "Print the canonical description of a query tree", "json")
	app.AddCommand("match", "Evaluate a query tree against a shard, printing matching docids", "shard", "json")
	app.AddCommand("estimate", "Compute match-count bounds for a query tree against a shard", "shard", "json")
	app.AddCommand("expand", "Expand a wildcard pattern against a shard's dictionary", "shard", "pattern")
	app.AddValueOption("c", "configfile", "Configuration file if not using the configuration service")
	os.Exit(app.Run())
}

func exec(cmdName string, args []string, options cli.OptionSet) int {
	configFile := options["c"]

	engine := server.Engine{}
	engine.ConfigFile = configFile

	if err := engine.LoadConfigFromFile(); err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	if err := engine.Initialize(); err != nil {
		fmt.Printf("Error initializing engine: %v\n", err)
		return 1
	}
	defer engine.Close()

	start := time.Now()
	var err error

	switch cmdName {
	case "serve":
		run := func() {
			engine.StartScheduler()
			if err := engine.RunHttp(); err != nil {
				engine.ErrorLog.Errorf("Error running HTTP server: %v", err)
			}
		}
		if !service.RunAsService(run) {
			run()
		}
	case "describe":
		err = runDescribe(&engine, args)
	case "match":
		err = runMatch(&engine, args)
	case "estimate":
		err = runEstimate(&engine, args)
	case "expand":
		err = runExpand(&engine, args)
	default:
		fmt.Printf("Unknown command %v\n", cmdName)
		return 1
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	fmt.Printf("Finished in %.3fs\n", time.Since(start).Seconds())
	return 0
}

func runDescribe(e *server.Engine, args []string) error {
	q, err := server.DecodeQueryJSON([]byte(strings.Join(args, " ")))
	if err != nil {
		return err
	}
	fmt.Println(e.Describe(q))
	return nil
}

func runMatch(e *server.Engine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("match requires a shard name and a query JSON argument")
	}
	q, err := server.DecodeQueryJSON([]byte(strings.Join(args[1:], " ")))
	if err != nil {
		return err
	}
	docids, err := e.Match(args[0], q)
	if err != nil {
		return err
	}
	fmt.Printf("%v matches\n", len(docids))
	for _, d := range docids {
		fmt.Println(d)
	}
	return nil
}

func runEstimate(e *server.Engine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("estimate requires a shard name and a query JSON argument")
	}
	q, err := server.DecodeQueryJSON([]byte(strings.Join(args[1:], " ")))
	if err != nil {
		return err
	}
	b, err := e.Estimate(args[0], q)
	if err != nil {
		return err
	}
	fmt.Printf("min=%v est=%v max=%v\n", b.Min, b.Est, b.Max)
	return nil
}

func runExpand(e *server.Engine, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("expand requires a shard name and a wildcard pattern")
	}
	dict, err := e.Dictionary(args[0])
	if err != nil {
		return err
	}
	q := query.Wildcard(args[1], query.FlagGlob, 0, query.LimitError, query.OpSynonym)
	expanded, err := expand.ExpandWildcard(q, dict, nil)
	if err != nil {
		return err
	}
	terms := expanded.UniqueTerms()
	fmt.Printf("%v terms\n", len(terms))
	for _, t := range terms {
		fmt.Println(t)
	}
	return nil
}
