// Command pipeline runs one sales/CRM batch: it validates the landed sales
// drops and CRM extract, computes the monthly market-share and event
// series, and writes the merged CSV.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"salescrm/internal/config"
	"salescrm/internal/infrastructure"
	"salescrm/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional, env vars override)")
	salesDir := flag.String("sales-dir", "", "override the sales drop directory")
	crmFile := flag.String("crm-file", "", "override the CRM extract file")
	outFile := flag.String("out", "", "override the merged output file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err, "config", *configPath)
		os.Exit(1)
	}
	if *salesDir != "" {
		cfg.Paths.SalesDir = *salesDir
	}
	if *crmFile != "" {
		cfg.Paths.CRMFile = *crmFile
	}
	if *outFile != "" {
		cfg.Paths.OutputFile = *outFile
	}

	logger, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	result, err := pipeline.New(cfg, logger).Run(context.Background())
	if err != nil {
		// Run already logged the failure with its run id.
		os.Exit(1)
	}

	logger.Info("batch complete",
		"run_id", result.RunID,
		"output", result.OutputPath,
		"rows", result.OutputRows,
		"duration", result.Duration,
	)
}
