package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mepgraphs/internal/codec"
	"mepgraphs/internal/config"
	"mepgraphs/internal/loader"
	"mepgraphs/internal/repository/sqlite"
	"mepgraphs/internal/service"
	"mepgraphs/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Export flags
var (
	paramsPath  string
	outputDir   string
	dbPath      string
	treeFormat  string
	bottomUp    bool
	perNetwork  bool
	noUniqueIDs bool
	watchModel  bool
)

// exportCmd exports the networks of a model file
var exportCmd = &cobra.Command{
	Use:   "export <model-file>",
	Short: "Export network trees and the JSON summary",
	Long: `Loads a building model, walks every qualifying network and writes:

  <network id>.xml    one tree document per exported network
  jsonData.json       the discipline summary of all JSON graphs
  uniqueIds.json      element ids per discipline (unless --no-unique-ids)

JSON graphs are stored in the parameter database, either once on the
project info element or on each network (--per-network).

Examples:
  mepgraphs export building.yaml
  mepgraphs export building.yaml --params params.json --out ./graphs
  mepgraphs export building.yaml --per-network --bottom-up=false --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&paramsPath, "params", "", "Job parameters file (default ./"+config.ParamsFileName+" if present); missing switches default to true")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (overrides config)")
	exportCmd.Flags().StringVar(&dbPath, "db", "", "SQLite parameter database (overrides config)")
	exportCmd.Flags().StringVar(&treeFormat, "tree-format", "", fmt.Sprintf("Per-network document format %v (overrides config)", codec.Formats()))
	exportCmd.Flags().BoolVar(&bottomUp, "bottom-up", true, "Render JSON graphs from terminal devices back to the root")
	exportCmd.Flags().BoolVar(&perNetwork, "per-network", false, "Store one JSON graph per network instead of the whole summary on project info")
	exportCmd.Flags().BoolVar(&noUniqueIDs, "no-unique-ids", false, "Do not record element ids per discipline")
	exportCmd.Flags().BoolVarP(&watchModel, "watch", "w", false, "Re-export whenever the model or params file changes")
}

// exportConfig layers job parameters and flags over the loaded config.
// It is re-evaluated on every export so watch mode picks up params changes.
func exportConfig(cmd *cobra.Command) (*config.Config, error) {
	c := *cfg

	if path := config.FindParamsPath(paramsPath); path != "" {
		params, err := config.ParseParams(path)
		if err != nil {
			return nil, err
		}
		params.Apply(&c)
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		c.Export.OutputDir = outputDir
	}
	if flags.Changed("db") {
		c.Database.Path = dbPath
	}
	if flags.Changed("tree-format") {
		c.Export.TreeFormat = treeFormat
	}
	if flags.Changed("bottom-up") {
		c.Export.BottomUp = config.Bool(bottomUp)
	}
	if flags.Changed("per-network") {
		c.Export.ProjectWide = config.Bool(!perNetwork)
	}
	if flags.Changed("no-unique-ids") {
		c.Export.StoreUniqueIDs = config.Bool(!noUniqueIDs)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	modelPath := args[0]

	c, err := exportConfig(cmd)
	if err != nil {
		return err
	}

	repo, err := sqlite.New(c.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()
	logger.Debug("database opened", zap.String("path", c.Database.Path))

	eventBus := service.NewEventBus()
	svc := service.NewExportService(repo, eventBus, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exportOnce := func(ctx context.Context) error {
		c, err := exportConfig(cmd)
		if err != nil {
			return err
		}
		exporter, err := codec.ForFormat(c.Export.TreeFormat)
		if err != nil {
			return err
		}

		doc, err := loader.LoadYAML(modelPath)
		if err != nil {
			return err
		}

		report, err := svc.WithTreeExporter(exporter).Run(ctx, doc, service.RunOptions{
			Export:    c.ExportOptions(),
			Predicate: loader.DefaultPredicate,
			OutputDir: c.Export.OutputDir,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.String())
		return nil
	}

	if !watchModel {
		return exportOnce(ctx)
	}

	// In watch mode a failed export is reported and the watch continues
	if err := exportOnce(ctx); err != nil {
		logger.Error("export failed", zap.String("model", modelPath), zap.Error(err))
	}

	events := make(chan service.Event, 64)
	eventBus.Subscribe(events)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w := watcher.New(modelPath, func(ctx context.Context, _ string) error {
			return exportOnce(ctx)
		}).Also(config.FindParamsPath(paramsPath)).WithDebounce(c.DebounceInterval()).WithLogger(logger)

		err := w.Watch(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case e := <-events:
				logger.Debug("export event", zap.String("type", string(e.Type)), zap.Any("payload", e.Payload))
			case <-gctx.Done():
				return nil
			}
		}
	})

	return g.Wait()
}
