// Command bench loads the laptop table, times the linear and indexed
// queries against each other over random inputs and prints the sample
// budget, range and specification queries.
//
// Usage:
//
//	go run ./cmd/bench [-config config.yaml] [-data laptops.csv]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"laptops/internal/bench"
	"laptops/internal/config"
	"laptops/internal/engine"
	"laptops/internal/logger"
	"laptops/internal/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	dataPath := flag.String("data", "", "path to the laptop table (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	logger.Setup(cfg.Logging)

	inv, err := engine.Load(cfg.Data.Path, engine.WithEncoding(cfg.Data.Encoding))
	if err != nil {
		slog.Error("failed to load inventory", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.NewRegistry())
	m.InventoryRecords.Set(float64(inv.Len()))

	reports := bench.NewRunner(cfg.Bench, m).Run(inv)
	for _, r := range reports {
		fmt.Println(r)
	}

	bench.Demo(os.Stdout, inv)

	for _, r := range reports {
		if r.Mismatches > 0 {
			os.Exit(2)
		}
	}
}
