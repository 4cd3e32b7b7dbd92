package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hexsprite/lintmesh/internal/cache"
	"github.com/hexsprite/lintmesh/internal/config"
	"github.com/hexsprite/lintmesh/internal/linters"
	"github.com/hexsprite/lintmesh/internal/model"
)

const versionTTL = 24 * time.Hour

// Options is the fully resolved input for one aggregation run. The CLI layer
// merges flags and config into this; the runner trusts it as-is.
type Options struct {
	RootDir     string
	Tools       []string
	Files       []string
	Patterns    []string
	Ignore      []config.IgnoreRule
	Baseline    string
	Timeout     time.Duration
	Concurrency int
}

// Hooks receives run progress. Callbacks may fire concurrently.
type Hooks struct {
	ToolStarted  func(name string)
	ToolFinished func(run model.ToolRun, issues int)
}

type Runner struct {
	rt    *linters.Runtime
	log   *zap.SugaredLogger
	cache *cache.Cache
	hooks Hooks
}

func New(rt *linters.Runtime, log *zap.SugaredLogger) *Runner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{rt: rt, log: log}
}

func (r *Runner) UseCache(c *cache.Cache) { r.cache = c }
func (r *Runner) UseHooks(h Hooks)        { r.hooks = h }

// Run aggregates every requested, available linter concurrently. Per-tool
// faults of any kind land in that tool's ToolRun entry; Run itself always
// returns a complete report.
func (r *Runner) Run(ctx context.Context, opts Options) *model.Report {
	start := time.Now()
	report := &model.Report{
		Timestamp: start.UTC(),
		RootDir:   opts.RootDir,
		Linters:   []model.ToolRun{},
		Issues:    []model.Issue{},
	}

	// Nothing to lint is an empty report, not an error.
	if len(opts.Files) == 0 {
		report.Summary = model.Summarize(nil)
		report.DurationMS = time.Since(start).Milliseconds()
		return report
	}

	ready := r.selectAdapters(ctx, opts)

	type outcome struct {
		issues []model.Issue
		run    model.ToolRun
	}
	outcomes := make([]outcome, len(ready))

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, ad := range ready {
		g.Go(func() error {
			// A defective adapter must not poison its siblings: any panic
			// becomes a failed ToolRun for this tool only.
			defer func() {
				if rec := recover(); rec != nil {
					outcomes[i] = outcome{run: model.ToolRun{
						Name:         ad.Name,
						Version:      linters.VersionUnknown,
						Error:        fmt.Sprintf("internal error: %v", rec),
						FilesChecked: len(opts.Files),
					}}
					r.log.Errorw("linter adapter panicked", "linter", ad.Name, "panic", rec)
				}
			}()

			if r.hooks.ToolStarted != nil {
				r.hooks.ToolStarted(ad.Name)
			}

			version := r.version(ctx, ad, opts.RootDir)
			issues, run := ad.Run(ctx, r.rt, linters.RunSpec{
				RootDir: opts.RootDir,
				Files:   opts.Files,
				Timeout: opts.Timeout,
			})
			run.Version = version

			if ad.FilterScope {
				issues = FilterScope(issues, opts.Patterns)
			}

			outcomes[i] = outcome{issues: issues, run: run}
			if r.hooks.ToolFinished != nil {
				r.hooks.ToolFinished(run, len(issues))
			}
			return nil
		})
	}
	_ = g.Wait()

	var merged []model.Issue
	for _, o := range outcomes {
		report.Linters = append(report.Linters, o.run)
		merged = append(merged, o.issues...)
	}

	merged = ApplyIgnores(merged, opts.Ignore)
	merged = r.applyBaseline(merged, opts.Baseline)
	SortIssues(merged)

	if merged != nil {
		report.Issues = merged
	}
	report.Summary = model.Summarize(report.Issues)
	report.DurationMS = time.Since(start).Milliseconds()

	r.log.Debugw("aggregation complete",
		"linters", len(report.Linters),
		"issues", report.Summary.Total,
		"durationMs", report.DurationMS)

	return report
}

// selectAdapters resolves tool names and drops unavailable tools. A tool
// skipped here produces no ToolRun entry at all.
func (r *Runner) selectAdapters(ctx context.Context, opts Options) []*linters.Adapter {
	var ready []*linters.Adapter
	for _, name := range opts.Tools {
		ad, ok := linters.Lookup(name)
		if !ok {
			r.log.Warnw("unknown linter requested, skipping", "linter", name)
			continue
		}
		if !ad.Available(ctx, r.rt, opts.RootDir) {
			r.log.Infow("linter not available, skipping", "linter", name)
			continue
		}
		ready = append(ready, ad)
	}
	return ready
}

// version resolves the tool's version, consulting the cache when one is
// configured. The key includes the binary's stamp, so upgrading or
// reinstalling a tool invalidates its entry without any explicit flush.
func (r *Runner) version(ctx context.Context, ad *linters.Adapter, root string) string {
	stamp := ""
	if r.cache != nil {
		stamp = ad.Stamp(r.rt, root)
	}
	if stamp == "" {
		return ad.Version(ctx, r.rt, root)
	}

	key := cache.Key("version", ad.Name, stamp)
	if data, ok := r.cache.Load(key, versionTTL); ok {
		return string(data)
	}
	v := ad.Version(ctx, r.rt, root)
	if v != linters.VersionUnknown && v != linters.VersionNotFound {
		r.cache.Store(key, []byte(v))
	}
	return v
}

func (r *Runner) applyBaseline(issues []model.Issue, path string) []model.Issue {
	if path == "" {
		return issues
	}
	b, err := LoadBaseline(path)
	if err != nil {
		r.log.Warnw("baseline unreadable, not suppressing", "path", path, "error", err)
		return issues
	}
	return b.Filter(issues)
}
