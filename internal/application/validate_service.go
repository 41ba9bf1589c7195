package application

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dfguard/dfguard/internal/domain"
	"github.com/dfguard/dfguard/internal/domain/engine"
	"github.com/dfguard/dfguard/internal/domain/profiler"
)

// maxParallelFiles bounds how many files ValidateFiles loads at once.
const maxParallelFiles = 4

// ValidateOptions are per-invocation overrides on top of the project config.
type ValidateOptions struct {
	MaxRows  int
	Progress bool
}

// FileReport pairs a dataset path with its report or the error that
// prevented one.
type FileReport struct {
	Path   string
	Report *domain.ValidationReport
	Err    error
}

// ValidateService orchestrates the validation pipeline:
// load config → read table → build profile → run rules → log.
type ValidateService struct {
	loader       domain.TableLoader
	configLoader domain.ConfigLoader
	engine       *engine.RuleEngine
	logger       logrus.FieldLogger
}

// NewValidateService creates a ValidateService. A nil engine uses the
// built-in rules.
func NewValidateService(
	loader domain.TableLoader,
	configLoader domain.ConfigLoader,
	eng *engine.RuleEngine,
	logger logrus.FieldLogger,
) *ValidateService {
	if eng == nil {
		eng = engine.Default()
	}
	return &ValidateService{
		loader:       loader,
		configLoader: configLoader,
		engine:       eng,
		logger:       logger,
	}
}

// Engine returns the rule engine the service runs.
func (s *ValidateService) Engine() *engine.RuleEngine { return s.engine }

// ProfileFile loads path and builds its profile without running rules.
func (s *ValidateService) ProfileFile(ctx context.Context, path string, opts ValidateOptions) (*domain.Profile, error) {
	cfg, err := s.configLoader.Load(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	loadOpts := cfg.LoadOptions()
	if opts.MaxRows > 0 {
		loadOpts.MaxRows = opts.MaxRows
	}
	loadOpts.Progress = opts.Progress

	table, err := s.loader.Load(ctx, path, loadOpts)
	if err != nil {
		return nil, err
	}

	profile, err := profiler.BuildProfile(table, path)
	if err != nil {
		return nil, fmt.Errorf("profiling %s: %w", path, err)
	}
	return profile, nil
}

// ValidateFile loads, profiles and validates one dataset file.
func (s *ValidateService) ValidateFile(ctx context.Context, path string, opts ValidateOptions) (*domain.ValidationReport, error) {
	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"path":   path,
	})

	profile, err := s.ProfileFile(ctx, path, opts)
	if err != nil {
		log.WithError(err).Error("validation aborted")
		return nil, err
	}

	report, err := s.run(log, profile)
	if err != nil {
		return nil, err
	}
	log.WithField("duration", time.Since(start).String()).Debug("file validated")
	return report, nil
}

// ValidateTable validates an in-memory table. source is reported as the
// file of the report and may be empty.
func (s *ValidateService) ValidateTable(table *domain.Table, source string) (*domain.ValidationReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"source": source,
	})

	profile, err := profiler.BuildProfile(table, source)
	if err != nil {
		return nil, err
	}
	return s.run(log, profile)
}

// ValidateFiles validates several files concurrently. Results keep the
// order of paths; a failing file does not stop the others. The returned
// error is non-nil only when ctx is cancelled.
func (s *ValidateService) ValidateFiles(ctx context.Context, paths []string, opts ValidateOptions) ([]FileReport, error) {
	results := make([]FileReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)

	// Concurrent progress bars would interleave on stderr.
	if len(paths) > 1 {
		opts.Progress = false
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileReport{Path: path, Err: err}
				return err
			}
			report, err := s.ValidateFile(gctx, path, opts)
			results[i] = FileReport{Path: path, Report: report, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func (s *ValidateService) run(log logrus.FieldLogger, profile *domain.Profile) (*domain.ValidationReport, error) {
	report, err := s.engine.Run(profile)
	if err != nil {
		return nil, fmt.Errorf("running rules: %w", err)
	}

	for _, res := range report.AllResults() {
		if res.Failed {
			log.WithFields(logrus.Fields{
				"rule":  res.RuleName,
				"error": res.Details["error"],
			}).Warn("rule failed")
		}
	}

	log.WithFields(logrus.Fields{
		"rows":    profile.RowCount,
		"columns": profile.ColumnCount,
		"status":  report.Status(),
	}).Info("validation complete")
	return report, nil
}
