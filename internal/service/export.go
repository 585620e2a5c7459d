package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mepgraphs/internal/aggregate"
	"mepgraphs/internal/codec"
	"mepgraphs/internal/domain"
	"mepgraphs/internal/repository"
	"mepgraphs/internal/traverse"

	"go.uber.org/zap"
)

const (
	// SummaryFileName is the aggregate discipline document written once per run
	SummaryFileName = "jsonData.json"
	// RegistryFileName holds the per-discipline identifier registries
	RegistryFileName = "uniqueIds.json"
)

// RunOptions selects what one export run does
type RunOptions struct {
	Export domain.ExportOptions
	// Predicate selects qualifying networks; nil exports every network
	Predicate domain.Predicate
	// OutputDir receives tree documents and the summary; created if missing
	OutputDir string
}

// ExportService runs exports over a building model
type ExportService struct {
	store    repository.ParameterStore
	explorer *traverse.Explorer
	exporter codec.TreeExporter
	eventBus *EventBus
	logger   *zap.Logger
}

// NewExportService creates a new export service writing XML tree documents
func NewExportService(store repository.ParameterStore, eventBus *EventBus, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:    store,
		explorer: traverse.NewExplorer(),
		exporter: codec.NewXMLCodec(),
		eventBus: eventBus,
		logger:   logger,
	}
}

// WithTreeExporter replaces the per-network document format
func (s *ExportService) WithTreeExporter(e codec.TreeExporter) *ExportService {
	if e != nil {
		s.exporter = e
	}
	return s
}

// networkOutput is everything one network contributes to a run
type networkOutput struct {
	meta     domain.NetworkMeta
	fileName string
	document []byte
	json     string
	ids      []string
	stats    traverse.Stats
}

// Run exports every qualifying network of model.
// The storage prerequisite is checked before any traversal; its absence
// aborts the run with domain.ErrStorageDefinition.
func (s *ExportService) Run(ctx context.Context, model domain.Model, opts RunOptions) (*Report, error) {
	if model == nil {
		return nil, errors.New("no model to export")
	}

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = "."
	}

	all := model.Networks()
	qualifying := make([]domain.Network, 0, len(all))
	for _, n := range all {
		if opts.Predicate == nil || opts.Predicate(n) {
			qualifying = append(qualifying, n)
		}
	}

	report := &Report{
		Title:              model.Title(),
		OutputDir:          outDir,
		TreeFormat:         s.exporter.Format(),
		TotalNetworks:      len(all),
		QualifyingNetworks: len(qualifying),
		Systems:            systemList(qualifying),
	}

	def, err := s.ensureDefinition(ctx, opts.Export, qualifying)
	if err != nil {
		s.publishFailure(model.Title(), err)
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	run := s.startRun(ctx, model.Title())
	if run != nil {
		report.RunID = run.ID
	}

	s.eventBus.Publish(Event{
		Type:    EventExportStarted,
		Payload: map[string]interface{}{"title": model.Title(), "networks": len(qualifying), "run_id": report.RunID},
	})

	err = s.exportNetworks(ctx, qualifying, opts, def, report)
	s.finishRun(ctx, run, report, err == nil)
	if err != nil {
		s.publishFailure(model.Title(), err)
		return nil, err
	}

	s.logger.Info("export completed",
		zap.String("title", report.Title),
		zap.Int("json_graphs", report.JSONGraphs),
		zap.Int("json_bytes", report.JSONBytes),
		zap.Int("skipped", len(report.Skipped)),
	)
	s.eventBus.Publish(Event{
		Type:    EventExportCompleted,
		Payload: map[string]interface{}{"title": report.Title, "json_graphs": report.JSONGraphs, "skipped": len(report.Skipped)},
	})

	return report, nil
}

func (s *ExportService) exportNetworks(ctx context.Context, networks []domain.Network, opts RunOptions, def *domain.ParameterDefinition, report *Report) error {
	collector := aggregate.NewCollector()

	for _, n := range networks {
		if err := ctx.Err(); err != nil {
			return err
		}

		out, err := s.renderNetwork(n, opts.Export)
		if err != nil {
			s.skip(n, err, report)
			continue
		}

		path := filepath.Join(report.OutputDir, out.fileName)
		if err := os.WriteFile(path, out.document, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		if err := collector.Add(n.Discipline(), out.json); err != nil {
			return err
		}
		if opts.Export.StoreUniqueIDs {
			if err := collector.AddIdentifiers(n.Discipline(), out.ids); err != nil {
				return err
			}
		}

		if !opts.Export.ProjectWide {
			if err := s.store.SetValue(ctx, def, n.ID(), out.json, report.RunID); err != nil {
				return fmt.Errorf("failed to store graph of network %s: %w", n.ID(), err)
			}
		}

		report.TreeFiles++
		report.JSONBytes += len(out.json)

		s.logger.Info("network exported",
			zap.String("network", n.ID()),
			zap.String("name", n.Name()),
			zap.Stringer("discipline", n.Discipline()),
			zap.Int("nodes", out.stats.Nodes),
			zap.Int("references", out.stats.References),
			zap.Int("depth", out.stats.MaxDepth),
		)
		s.eventBus.Publish(Event{
			Type:    EventNetworkExported,
			Payload: map[string]string{"network_id": n.ID(), "name": n.Name(), "path": path},
		})
	}

	report.JSONGraphs = collector.Len()

	summary, err := collector.Summary()
	if err != nil {
		return err
	}

	report.SummaryPath = filepath.Join(report.OutputDir, SummaryFileName)
	if err := os.WriteFile(report.SummaryPath, []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if opts.Export.StoreUniqueIDs {
		report.RegistryPath = filepath.Join(report.OutputDir, RegistryFileName)
		if err := os.WriteFile(report.RegistryPath, []byte(collector.RegistryDocument()+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write identifier registries: %w", err)
		}
	}

	if opts.Export.ProjectWide {
		doc, err := aggregate.WrapDocument(report.Title, summary)
		if err != nil {
			return err
		}
		if err := s.store.SetValue(ctx, def, domain.ProjectInfoElementID, doc, report.RunID); err != nil {
			return fmt.Errorf("failed to store summary on project info: %w", err)
		}
	}

	return nil
}

// renderNetwork traverses one network and renders every output in memory,
// so a failure leaves nothing behind for that network
func (s *ExportService) renderNetwork(n domain.Network, opts domain.ExportOptions) (*networkOutput, error) {
	if !n.Discipline().Valid() {
		return nil, fmt.Errorf("unsupported discipline %s", n.Discipline())
	}
	if err := domain.ValidateNetworkID(n.ID()); err != nil {
		return nil, err
	}

	tree, stats, err := s.explorer.TraverseStats(n.Root())
	if err != nil {
		return nil, err
	}

	out := &networkOutput{
		meta:     domain.MetaOf(n),
		fileName: n.ID() + s.exporter.Extension(),
		stats:    stats,
	}

	var buf bytes.Buffer
	if err := s.exporter.Export(out.meta, tree, &buf); err != nil {
		return nil, err
	}
	out.document = buf.Bytes()

	if opts.BottomUp {
		out.json, err = codec.BottomUp(out.meta, tree)
	} else {
		out.json, err = codec.TopDown(tree)
	}
	if err != nil {
		return nil, err
	}

	if opts.StoreUniqueIDs {
		out.ids, err = codec.CollectIdentifiers(tree)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ensureDefinition resolves the storage parameter definition, creating it
// when missing. Per-network mode stores on the first qualifying network, so
// with none there is nothing to check.
func (s *ExportService) ensureDefinition(ctx context.Context, opts domain.ExportOptions, qualifying []domain.Network) (*domain.ParameterDefinition, error) {
	if !opts.ProjectWide && len(qualifying) == 0 {
		return nil, nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: no parameter store", domain.ErrStorageDefinition)
	}

	scope := domain.ScopeFor(opts)
	def, err := s.store.Definition(ctx, scope, domain.GraphParameterName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageDefinition, err)
	}
	if def != nil {
		return def, nil
	}

	s.logger.Info("creating storage parameter",
		zap.String("parameter", domain.GraphParameterName),
		zap.String("scope", string(scope)),
	)
	if _, err := s.store.CreateDefinition(ctx, scope, domain.GraphParameterName); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageDefinition, err)
	}

	def, err = s.store.Definition(ctx, scope, domain.GraphParameterName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageDefinition, err)
	}
	if def == nil {
		return nil, fmt.Errorf("%w: %s not available on %s scope", domain.ErrStorageDefinition, domain.GraphParameterName, scope)
	}
	return def, nil
}

func (s *ExportService) skip(n domain.Network, err error, report *Report) {
	report.Skipped = append(report.Skipped, n.ID())

	s.logger.Warn("network skipped",
		zap.String("network", n.ID()),
		zap.String("name", n.Name()),
		zap.Error(err),
	)
	s.eventBus.Publish(Event{
		Type:    EventNetworkSkipped,
		Payload: map[string]string{"network_id": n.ID(), "name": n.Name(), "reason": err.Error()},
	})
}

func (s *ExportService) publishFailure(title string, err error) {
	s.logger.Error("export failed", zap.String("title", title), zap.Error(err))
	s.eventBus.Publish(Event{
		Type:    EventExportFailed,
		Payload: map[string]string{"title": title, "error": err.Error()},
	})
}

// startRun records the run when the store supports it; recording failures
// are logged and never block the export
func (s *ExportService) startRun(ctx context.Context, title string) *domain.ExportRun {
	recorder, ok := s.store.(repository.RunRecorder)
	if !ok {
		return nil
	}
	run, err := recorder.StartRun(ctx, title)
	if err != nil {
		s.logger.Warn("failed to record export run", zap.Error(err))
		return nil
	}
	return run
}

func (s *ExportService) finishRun(ctx context.Context, run *domain.ExportRun, report *Report, succeeded bool) {
	if run == nil {
		return
	}
	recorder := s.store.(repository.RunRecorder)

	run.Networks = report.QualifyingNetworks
	run.JSONGraphs = report.JSONGraphs
	run.Succeeded = succeeded
	// The run context may already be cancelled; the outcome is still recorded.
	if err := recorder.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Warn("failed to finish export run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func systemList(networks []domain.Network) []string {
	out := make([]string, 0, len(networks))
	for _, n := range networks {
		out = append(out, fmt.Sprintf("%s(%s)", n.ID(), n.Name()))
	}
	sort.Strings(out)
	return out
}
