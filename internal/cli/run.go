package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hexsprite/lintmesh/internal/cache"
	"github.com/hexsprite/lintmesh/internal/config"
	"github.com/hexsprite/lintmesh/internal/exitcode"
	"github.com/hexsprite/lintmesh/internal/files"
	"github.com/hexsprite/lintmesh/internal/fix"
	"github.com/hexsprite/lintmesh/internal/linters"
	"github.com/hexsprite/lintmesh/internal/logging"
	"github.com/hexsprite/lintmesh/internal/model"
	"github.com/hexsprite/lintmesh/internal/report"
	"github.com/hexsprite/lintmesh/internal/runner"
	"github.com/hexsprite/lintmesh/internal/tui"
	"github.com/hexsprite/lintmesh/internal/watch"
)

func newRunCmd() *cobra.Command {
	var (
		format     string
		outFile    string
		writeBase  string
		applyFixes bool
		watchMode  bool
		useTUI     bool
		debug      bool
		noColor    bool
		showSource bool
	)
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run every configured linter and merge their findings",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "sarif":
			default:
				return fmt.Errorf("unknown format %q (want text, json or sarif)", format)
			}
			if watchMode && applyFixes {
				return fmt.Errorf("--watch cannot be combined with --fix")
			}

			root, err := os.Getwd()
			if err != nil {
				return err
			}

			log := logging.New(debug)
			defer func() { _ = log.Sync() }()

			cfg, cfgPath, err := config.Load(root)
			if err != nil {
				return err
			}
			if cfgPath != "" {
				log.Debugw("config loaded", "path", cfgPath)
			}

			mergeFlags(cmd.Flags(), &cfg)

			rt := linters.NewRuntime(linters.NewExecer(), log)
			r := runner.New(rt, log)
			if c, err := cache.Open(); err == nil {
				r.UseCache(c)
			} else {
				log.Debugw("cache disabled", "error", err)
			}

			runOnce := func(ctx context.Context) (*model.Report, error) {
				list, err := files.Resolve(files.Options{RootDir: root, Patterns: args, Exclude: cfg.Exclude})
				if err != nil {
					return nil, err
				}
				if len(list) == 0 {
					log.Warnw("no lintable files matched", "patterns", args)
				}
				opts := runner.Options{
					RootDir:     root,
					Tools:       cfg.Linters,
					Files:       list,
					Patterns:    args,
					Ignore:      cfg.Ignore,
					Baseline:    cfg.Baseline,
					Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
					Concurrency: cfg.Concurrency,
				}
				if useTUI && format == "text" && !watchMode {
					return tui.Run(opts.Tools, func(h runner.Hooks) *model.Report {
						r.UseHooks(h)
						defer r.UseHooks(runner.Hooks{})
						return r.Run(ctx, opts)
					})
				}
				return r.Run(ctx, opts), nil
			}

			render := func(rep *model.Report) error {
				var w io.Writer = cmd.OutOrStdout()
				if outFile != "" {
					f, err := os.Create(outFile)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}
				switch format {
				case "json":
					return report.RenderJSON(w, rep)
				case "sarif":
					data, err := report.ToSARIF(rep)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(w, "%s\n", data)
					return err
				default:
					txt := report.NewText(w)
					if noColor {
						txt.WithColor(false)
					}
					if showSource {
						sources := map[string]string{}
						txt.WithSource(func(rel string) (string, bool) {
							if c, ok := sources[rel]; ok {
								return c, true
							}
							data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
							if err != nil {
								return "", false
							}
							sources[rel] = string(data)
							return sources[rel], true
						})
					}
					return txt.Render(rep)
				}
			}

			ctx := cmd.Context()

			rep, err := runOnce(ctx)
			if err != nil {
				return err
			}

			if applyFixes && rep.Summary.Fixable > 0 {
				res, err := fix.Apply(root, rep.Issues)
				if err != nil {
					log.Warnw("some fixes could not be applied", "error", err)
				}
				log.Infow("fixes applied", "edits", res.Applied, "files", res.FilesChanged, "skipped", res.Skipped)
				if res.Applied > 0 {
					// Offsets are spent; lint again for the post-fix truth.
					if rep, err = runOnce(ctx); err != nil {
						return err
					}
				}
			}

			if err := render(rep); err != nil {
				return err
			}

			if writeBase != "" {
				if err := runner.WriteBaseline(writeBase, rep.Issues); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "baseline written: %s (%d issues)\n", writeBase, rep.Summary.Total)
				return nil
			}

			if watchMode {
				w := watch.New(root, cfg.Exclude, 0, log, func(changed []string) {
					log.Infow("files changed, re-linting", "count", len(changed))
					rep, err := runOnce(ctx)
					if err != nil {
						log.Errorw("re-lint failed", "error", err)
						return
					}
					if err := render(rep); err != nil {
						log.Errorw("render failed", "error", err)
					}
				})
				return w.Run(ctx)
			}

			code := exitcode.FromReport(rep, model.ParseSeverity(cfg.FailOn), rep.AllFailed())
			if code != exitcode.Clean {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceP("linters", "l", nil, "Linters to run (default: config file, else all)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text|json|sarif")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().String("fail-on", "error", "Exit 1 when an issue at or above this severity remains (error|warning|info)")
	cmd.Flags().Int("timeout", 30, "Per-linter timeout in seconds")
	cmd.Flags().Int("concurrency", 0, "Max linters running at once (0 = all at once)")
	cmd.Flags().String("baseline", "", "Suppress issues recorded in this baseline file")
	cmd.Flags().StringVar(&writeBase, "write-baseline", "", "Record the current issues as accepted debt and exit 0")
	cmd.Flags().BoolVar(&applyFixes, "fix", false, "Apply available fixes, then lint again")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "Re-lint whenever source files change")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Show live per-linter progress")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&showSource, "show-source", false, "Print the offending source line under each issue")
	return cmd
}

// mergeFlags overlays the flags the user explicitly set onto the loaded
// config. Presence decides, not value: a flag left at its default never
// clobbers a config setting, even when the two happen to be equal.
func mergeFlags(fl *pflag.FlagSet, cfg *config.Config) {
	if fl.Changed("linters") {
		cfg.Linters, _ = fl.GetStringSlice("linters")
	}
	if len(cfg.Linters) == 0 {
		cfg.Linters = linters.Names()
	}
	if fl.Changed("fail-on") {
		cfg.FailOn, _ = fl.GetString("fail-on")
	}
	if fl.Changed("timeout") {
		cfg.TimeoutSeconds, _ = fl.GetInt("timeout")
	}
	if fl.Changed("concurrency") {
		cfg.Concurrency, _ = fl.GetInt("concurrency")
	}
	if fl.Changed("baseline") {
		cfg.Baseline, _ = fl.GetString("baseline")
	}
}
