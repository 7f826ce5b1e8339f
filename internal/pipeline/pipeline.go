// Package pipeline wires the batch run end to end: discover inputs, read
// raw tables, validate them against the schema registry, aggregate the two
// monthly series, outer-join them on the date index and write the merged
// CSV. A run is all-or-nothing: the first failure aborts it and the process
// reports the error to its caller.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"salescrm/internal/aggregate"
	"salescrm/internal/config"
	"salescrm/internal/exporter"
	"salescrm/internal/files"
	"salescrm/internal/infrastructure"
	"salescrm/internal/metrics"
	"salescrm/internal/reader"
	"salescrm/internal/schema"
	"salescrm/internal/table"
	"salescrm/internal/validation"
)

// salesExtensions are the accepted sales drop formats. The CRM extract is
// always a single CSV file.
var salesExtensions = []string{".json", ".xlsx"}

// Pipeline orchestrates one batch run.
type Pipeline struct {
	cfg       *config.Config
	logger    *slog.Logger
	schemas   schema.Source
	validator *validation.TableValidator
	recorder  *metrics.RunRecorder
	runs      RunStore
}

// Result summarizes a completed run.
type Result struct {
	RunID      string
	SalesRows  int
	CRMRows    int
	OutputRows int
	OutputPath string
	Duration   time.Duration
}

// New builds a pipeline from configuration. The schema source and run
// store follow the configured schema backend; everything else is fixed
// wiring.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	var source schema.Source
	runs := RunStore(NopRunStore{})
	switch cfg.Schema.Source {
	case "file":
		source = schema.FileSource{Path: cfg.Schema.File}
	case "postgres":
		source = schema.PostgresSource{DSN: cfg.Schema.DSN, Table: cfg.Schema.Table}
		runs = &PostgresRunStore{DSN: cfg.Schema.DSN}
	default:
		source = schema.StaticSource{Registry: schema.Reference()}
	}

	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		schemas:   source,
		validator: validation.NewTableValidator(logger),
		recorder:  metrics.NewRunRecorder(cfg.Pipeline.Name, cfg.Metrics.PushgatewayURL),
		runs:      runs,
	}
}

// Run executes one batch run and returns its summary. Run metadata and
// metrics are recorded for failed runs too, so operators can see aborted
// batches without digging through logs.
func (p *Pipeline) Run(ctx context.Context) (result *Result, err error) {
	runID := infrastructure.NewRunID()
	ctx = infrastructure.WithRunID(ctx, runID)
	started := time.Now()

	p.logger.InfoContext(ctx, "pipeline run started",
		"pipeline", p.cfg.Pipeline.Name,
		"sales_dir", p.cfg.Paths.SalesDir,
		"crm_file", p.cfg.Paths.CRMFile,
	)

	defer func() {
		duration := time.Since(started)
		p.recorder.ObserveRun(duration, err == nil)
		if pushErr := p.recorder.Push(); pushErr != nil {
			p.logger.WarnContext(ctx, "metrics push failed", "error", pushErr)
		}

		record := RunRecord{
			RunID:     runID,
			Pipeline:  p.cfg.Pipeline.Name,
			StartedAt: started,
			Duration:  duration,
			Succeeded: err == nil,
		}
		if err != nil {
			record.Error = err.Error()
		}
		if result != nil {
			record.TotalRows = result.SalesRows + result.CRMRows
		}
		if storeErr := p.runs.Record(ctx, record); storeErr != nil {
			p.logger.WarnContext(ctx, "run metadata not recorded", "error", storeErr)
		}

		if err != nil {
			p.logger.ErrorContext(ctx, "pipeline run failed", "error", err, "duration", duration)
		} else {
			p.logger.InfoContext(ctx, "pipeline run completed", "duration", duration, "rows", record.TotalRows)
		}
	}()

	registry, err := p.schemas.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	sales, err := p.validatedSales(ctx, registry)
	if err != nil {
		return nil, err
	}
	crm, err := p.validatedCRM(ctx, registry)
	if err != nil {
		return nil, err
	}

	digits := p.cfg.Pipeline.DecimalDigits
	shareAgg := aggregate.NewMarketShareAggregator(
		p.cfg.Pipeline.TrackedProduct, aggregate.WindowSpec(p.cfg.Pipeline.SalesWindows), digits, p.logger)
	shares, err := shareAgg.Process(ctx, sales)
	if err != nil {
		return nil, fmt.Errorf("aggregate market share: %w", err)
	}

	eventAgg := aggregate.NewMarketEventAggregator(
		aggregate.WindowSpec(p.cfg.Pipeline.CRMWindows), digits, p.logger)
	events, err := eventAgg.Process(ctx, crm)
	if err != nil {
		return nil, fmt.Errorf("aggregate market events: %w", err)
	}

	merged := aggregate.Merge(shares, events)
	writer := exporter.NewCSVWriter(digits, p.logger)
	if err := writer.WriteFrame(p.cfg.Paths.OutputFile, merged); err != nil {
		return nil, fmt.Errorf("write merged output: %w", err)
	}

	return &Result{
		RunID:      runID,
		SalesRows:  sales.Len(),
		CRMRows:    crm.Len(),
		OutputRows: len(merged.Index()),
		OutputPath: p.cfg.Paths.OutputFile,
		Duration:   time.Since(started),
	}, nil
}

// validatedSales reads every sales drop, validates each file's table
// concurrently and concatenates the results in listing order, so the
// processing order never changes the output.
func (p *Pipeline) validatedSales(ctx context.Context, registry schema.Registry) (*table.Table, error) {
	salesSchema, err := registry.Get(schema.SourceSales)
	if err != nil {
		return nil, err
	}

	drops, err := files.NewDiscovery(".").ListDir(p.cfg.Paths.SalesDir)
	if err != nil {
		return nil, fmt.Errorf("discover sales drops: %w", err)
	}
	if len(drops) == 0 {
		return nil, fmt.Errorf("no sales drops found in %s", p.cfg.Paths.SalesDir)
	}

	validated := make([]*table.Table, len(drops))
	g, gctx := errgroup.WithContext(ctx)
	for i, drop := range drops {
		g.Go(func() error {
			r, err := reader.ForPath(drop.Path, salesExtensions...)
			if err != nil {
				return err
			}
			raw, err := r.Read(drop.Path)
			if err != nil {
				return fmt.Errorf("read sales drop %s: %w", drop.Name, err)
			}
			t, err := p.validator.Validate(gctx, salesSchema, raw)
			if err != nil {
				return fmt.Errorf("validate sales drop %s: %w", drop.Name, err)
			}
			validated[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sales := table.New()
	for _, t := range validated {
		sales.AppendTable(t)
	}

	p.recorder.SetRowsRead(schema.SourceSales, sales.Len())
	p.recorder.SetRowsValidated(schema.SourceSales, sales.Len())
	p.logger.InfoContext(ctx, "sales drops validated", "files", len(drops), "rows", sales.Len())
	return sales, nil
}

func (p *Pipeline) validatedCRM(ctx context.Context, registry schema.Registry) (*table.Table, error) {
	crmSchema, err := registry.Get(schema.SourceCRM)
	if err != nil {
		return nil, err
	}

	info, err := files.NewDiscovery(".").Stat(p.cfg.Paths.CRMFile)
	if err != nil {
		return nil, fmt.Errorf("locate crm extract: %w", err)
	}

	r, err := reader.ForPath(info.Path, ".csv")
	if err != nil {
		return nil, err
	}
	raw, err := r.Read(info.Path)
	if err != nil {
		return nil, fmt.Errorf("read crm extract: %w", err)
	}

	crm, err := p.validator.Validate(ctx, crmSchema, raw)
	if err != nil {
		return nil, fmt.Errorf("validate crm extract: %w", err)
	}

	p.recorder.SetRowsRead(schema.SourceCRM, crm.Len())
	p.recorder.SetRowsValidated(schema.SourceCRM, crm.Len())
	p.logger.InfoContext(ctx, "crm extract validated", "rows", crm.Len())
	return crm, nil
}
