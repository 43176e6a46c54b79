package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/gamekeeper/gamekeeper/pkg/compile"
	"github.com/gamekeeper/gamekeeper/pkg/logger"
	"github.com/gamekeeper/gamekeeper/pkg/notifier"
	"github.com/gamekeeper/gamekeeper/pkg/state"
	"github.com/gamekeeper/gamekeeper/pkg/types"
)

// RunResult is the outcome of one full pipeline run
type RunResult struct {
	RunID      string
	TargetRoot string
	Mappings   []NameMapping
	Report     *compile.Report
	Duration   time.Duration
}

// Pipeline runs the harvest stages in order: find, rename, prepare,
// materialize, write manifest, build. Execution is strictly sequential;
// each stage depends only on the previous stage's output.
type Pipeline struct {
	config   *types.GamekeeperConfig
	logger   logger.Logger
	notifier *notifier.HarvestNotifier
}

// NewPipeline creates a pipeline for the given configuration
func NewPipeline(cfg *types.GamekeeperConfig, log logger.Logger) *Pipeline {
	notifCfg := notifier.Config{}
	if cfg.Notifications != nil {
		notifCfg.Enabled = cfg.Notifications.Enabled
		notifCfg.SuccessSound = cfg.Notifications.SuccessSound != ""
		notifCfg.FailureSound = cfg.Notifications.FailureSound != ""
	}

	return &Pipeline{
		config:   cfg,
		logger:   log,
		notifier: notifier.New(notifCfg, log),
	}
}

// Run executes the full pipeline from scratch. Fatal errors (missing
// source, rename mismatch, copy or manifest failure) abort the run;
// individual build failures are recorded in the report and do not.
func (p *Pipeline) Run(ctx context.Context, source, target string) (*RunResult, error) {
	startTime := time.Now()

	result, err := p.run(ctx, source, target)
	if err != nil {
		p.notifier.NotifyHarvestFailure(err)
		return nil, err
	}

	result.Duration = time.Since(startTime)
	p.notifier.NotifyHarvestSuccess(len(result.Mappings), result.Report.Failures(), result.Duration)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, source, target string) (*RunResult, error) {
	sourceRoot := ResolvePath(source)

	findLog := p.logger.WithScope("find")
	findLog.Info(fmt.Sprintf("Scanning %s for directories matching %q", sourceRoot, p.config.Pattern))

	entries, err := FindGameDirs(sourceRoot, p.config.Pattern)
	if err != nil {
		return nil, err
	}
	findLog.Info(fmt.Sprintf("Found %d matching directories", len(entries)))

	mappings, err := DeriveNames(entries, p.config.Pattern)
	if err != nil {
		return nil, err
	}

	targetRoot, err := PrepareTarget(target)
	if err != nil {
		return nil, err
	}

	sm := state.NewManager(targetRoot, p.logger)
	rs := sm.NewRun(sourceRoot, targetRoot, p.config.Pattern)

	names := make([]string, 0, len(mappings))
	for _, m := range mappings {
		names = append(names, m.NewName)
	}
	rs.GameNames = names

	copyLog := p.logger.WithScope("copy")
	rs.Status = types.HarvestStatusCopying
	for _, m := range mappings {
		copyLog.Info(fmt.Sprintf("Copying %s -> %s", m.Source.Name, m.NewName))
	}
	if err := Materialize(mappings, targetRoot); err != nil {
		p.failRun(sm, rs, err)
		return nil, err
	}

	// The manifest write commits the run.
	if err := WriteManifest(targetRoot, names); err != nil {
		p.failRun(sm, rs, err)
		return nil, err
	}

	rs.Status = types.HarvestStatusBuilding
	runner := compile.NewRunner(p.config.BuildCommand, p.config.SourceExtension, p.logger)
	report, err := runner.Run(ctx, targetRoot)
	if err != nil {
		p.failRun(sm, rs, err)
		return nil, err
	}

	rs.Status = types.HarvestStatusSucceeded
	rs.CompletedAt = time.Now()
	rs.BuildCount = len(report.Results)
	rs.FailureCount = report.Failures()
	if err := sm.Save(rs); err != nil {
		// The harvest itself succeeded; a state write failure is not fatal
		p.logger.Warn("Failed to save run state", logger.WithField("error", err))
	}

	if report.Failures() > 0 {
		p.logger.Warn(fmt.Sprintf("%d of %d build invocations failed", report.Failures(), len(report.Results)))
	} else {
		p.logger.Success(fmt.Sprintf("Harvested %d games, %d files built", len(mappings), len(report.Results)))
	}

	return &RunResult{
		RunID:      rs.RunID,
		TargetRoot: targetRoot,
		Mappings:   mappings,
		Report:     report,
	}, nil
}

func (p *Pipeline) failRun(sm *state.Manager, rs *state.RunState, cause error) {
	rs.Status = types.HarvestStatusFailed
	rs.CompletedAt = time.Now()
	rs.LastError = cause.Error()
	if err := sm.Save(rs); err != nil {
		p.logger.Debug("Failed to save run state", logger.WithField("error", err))
	}
}
