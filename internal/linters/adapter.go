package linters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hexsprite/lintmesh/internal/model"
)

const probeTimeout = 10 * time.Second

// RunSpec is the resolved per-invocation input handed to an adapter.
type RunSpec struct {
	RootDir string
	Files   []string
	Timeout time.Duration
}

// Runtime bundles the process collaborator and logger shared by all adapters
// in one aggregation run.
type Runtime struct {
	Exec Execer
	Log  *zap.SugaredLogger
}

func NewRuntime(exec Execer, log *zap.SugaredLogger) *Runtime {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runtime{Exec: exec, Log: log}
}

// Adapter couples one tool's argument construction, exit-status
// classification, and output parser.
type Adapter struct {
	Name string

	// FilterScope marks tools that always analyze the whole project and
	// whose issues must be narrowed to the requested paths after parsing.
	FilterScope bool

	parse       ParseFunc
	buildArgs   func(spec RunSpec) []string
	classify    func(res ExecResult) error
	parseStderr bool
	versionArgs []string
}

var registry = map[string]*Adapter{
	"eslint": {
		Name:  "eslint",
		parse: parseESLint,
		buildArgs: func(s RunSpec) []string {
			return append([]string{"--format", "json", "--no-color"}, s.Files...)
		},
		classify:    classifyJSONPayload("["),
		versionArgs: []string{"--version"},
	},
	"oxlint": {
		Name:  "oxlint",
		parse: parseOxlint,
		buildArgs: func(s RunSpec) []string {
			return append([]string{"--format", "json"}, s.Files...)
		},
		classify:    classifyJSONPayload("{"),
		versionArgs: []string{"--version"},
	},
	"biome": {
		Name:  "biome",
		parse: parseBiome,
		buildArgs: func(s RunSpec) []string {
			return append([]string{"lint", "--reporter=json", "--colors=off"}, s.Files...)
		},
		classify:    classifyJSONPayload("{"),
		versionArgs: []string{"--version"},
	},
	"tsc": {
		Name:  "tsc",
		parse: parseTypeScript,
		buildArgs: func(s RunSpec) []string {
			// tsc checks the project described by tsconfig; it cannot be
			// pointed at a file subset, so its results are scope-filtered
			// after parsing.
			return []string{"--noEmit", "--pretty", "false"}
		},
		parseStderr: true,
		FilterScope: true,
		versionArgs: []string{"--version"},
	},
}

func Lookup(name string) (*Adapter, bool) {
	a, ok := registry[name]
	return a, ok
}

// Names returns every registered tool name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// classifyJSONPayload treats a nonzero exit as "issues found" when stdout
// still carries the structured payload the tool always emits, and as a real
// failure otherwise. eslint, oxlint and biome all reuse their issues-found
// exit code for fatal configuration errors; the payload shape is the only
// way to tell the two apart.
func classifyJSONPayload(prefix string) func(ExecResult) error {
	return func(res ExecResult) error {
		if res.ExitCode == 0 {
			return nil
		}
		if strings.HasPrefix(strings.TrimSpace(res.Stdout), prefix) {
			return nil
		}
		return fmt.Errorf("%w: exit %d: %s", ErrExecFailed, res.ExitCode, firstLine(res.Stderr))
	}
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return "no output"
}

// resolveBin prefers a project-local install under node_modules/.bin before
// falling back to PATH.
func (a *Adapter) resolveBin(rt *Runtime, root string) (string, error) {
	local := filepath.Join(root, "node_modules", ".bin", a.Name)
	if p, err := rt.Exec.LookPath(local); err == nil {
		return p, nil
	}
	if p, err := rt.Exec.LookPath(a.Name); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s (tried node_modules/.bin and PATH)", ErrNotFound, a.Name)
}

// Stamp identifies the exact binary a run would execute: resolved path, size
// and mtime. A cache entry keyed on it dies with the install that produced
// it. Empty when the binary cannot be resolved or statted.
func (a *Adapter) Stamp(rt *Runtime, root string) string {
	bin, err := a.resolveBin(rt, root)
	if err != nil {
		return ""
	}
	info, err := os.Stat(bin)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s|%d|%d", bin, info.Size(), info.ModTime().UnixNano())
}

// Available probes the tool with a minimal version invocation. A missing
// binary is an ordinary false, never an error.
func (a *Adapter) Available(ctx context.Context, rt *Runtime, root string) bool {
	bin, err := a.resolveBin(rt, root)
	if err != nil {
		return false
	}
	res, err := rt.Exec.Run(ctx, Command{Bin: bin, Args: a.versionArgs, Dir: root, Timeout: probeTimeout})
	return err == nil && !res.TimedOut && res.ExitCode == 0
}

// Version reports the tool's detected version, VersionNotFound when no
// binary could be located, or VersionUnknown when the probe itself failed.
func (a *Adapter) Version(ctx context.Context, rt *Runtime, root string) string {
	bin, err := a.resolveBin(rt, root)
	if err != nil {
		return VersionNotFound
	}
	res, err := rt.Exec.Run(ctx, Command{Bin: bin, Args: a.versionArgs, Dir: root, Timeout: probeTimeout})
	if err != nil || res.TimedOut {
		return VersionUnknown
	}
	out := res.Stdout
	if strings.TrimSpace(out) == "" {
		out = res.Stderr
	}
	return extractVersion(out)
}

// Run invokes the tool once and normalizes its output. Every failure mode
// lands in the returned ToolRun; Run never panics on tool misbehavior and a
// failed run always contributes zero issues.
func (a *Adapter) Run(ctx context.Context, rt *Runtime, spec RunSpec) ([]model.Issue, model.ToolRun) {
	start := time.Now()
	run := model.ToolRun{Name: a.Name, FilesChecked: len(spec.Files)}

	fail := func(err error) ([]model.Issue, model.ToolRun) {
		run.Error = err.Error()
		run.DurationMS = time.Since(start).Milliseconds()
		return nil, run
	}

	bin, err := a.resolveBin(rt, spec.RootDir)
	if err != nil {
		return fail(err)
	}

	res, err := rt.Exec.Run(ctx, Command{Bin: bin, Args: a.buildArgs(spec), Dir: spec.RootDir, Timeout: spec.Timeout})
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrExecFailed, err))
	}
	if res.TimedOut {
		return fail(fmt.Errorf("%w after %s", ErrTimeout, spec.Timeout))
	}
	if a.classify != nil {
		if err := a.classify(res); err != nil {
			return fail(err)
		}
	}

	payload := res.Stdout
	if a.parseStderr {
		payload = res.Stdout + "\n" + res.Stderr
	}

	issues, err := a.parse(payload, spec.RootDir)
	if err != nil {
		return fail(err)
	}
	if a.parseStderr && len(issues) == 0 && strings.TrimSpace(payload) != "" {
		rt.Log.Warnw("no diagnostics recognized in output, treating as clean",
			"linter", a.Name, "bytes", len(payload))
	}

	run.Success = true
	run.DurationMS = time.Since(start).Milliseconds()
	return issues, run
}
