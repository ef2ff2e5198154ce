// Package hooks runs user scripts at fixed points: after a mail check and
// after an ignore toggle. Scripts live in <hooks_dir>/<hook point>/ and run
// in name order.
package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kurogetsusai/wl-ignore-mail/internal/config"
	"github.com/kurogetsusai/wl-ignore-mail/internal/logging"
)

// Hook points.
const (
	PostCheck  = "post-check"
	PostToggle = "post-toggle"
)

// Failure modes.
const (
	FailureAbort  = "abort"
	FailureWarn   = "warn"
	FailureIgnore = "ignore"
)

// Runner executes hook scripts.
type Runner struct {
	Dir         string
	FailureMode string
	Enabled     bool
	// Output receives the scripts' combined output and progress lines.
	Output io.Writer
}

// FromConfig builds a runner from the hooks_* settings.
func FromConfig() *Runner {
	return &Runner{
		Dir:         config.Get("hooks_dir", ""),
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Enabled:     config.GetBool("hooks_enabled", true),
		Output:      os.Stderr,
	}
}

// Init creates the hooks directory.
func (r *Runner) Init() error {
	if r.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", r.Dir, err)
	}
	return nil
}

type script struct {
	path string
	name string
}

func (r *Runner) scripts(hookPoint string) []script {
	hookDir := filepath.Join(r.Dir, hookPoint)
	entries, err := os.ReadDir(hookDir)
	if err != nil {
		return nil
	}

	var scripts []script
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(hookDir, e.Name())
		info, err := os.Stat(path)
		if err != nil || info.Mode()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, script{path: path, name: e.Name()})
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].name < scripts[j].name })
	return scripts
}

// Run executes the scripts of hookPoint with envVars ("KEY=value") added to
// the environment. Only the abort failure mode returns script errors.
func (r *Runner) Run(ctx context.Context, hookPoint string, envVars ...string) error {
	if r == nil || !r.Enabled || r.Dir == "" {
		return nil
	}
	scripts := r.scripts(hookPoint)
	if len(scripts) == 0 {
		return nil
	}

	env := os.Environ()
	env = append(env,
		"HOOK_POINT="+hookPoint,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
		"WL_IGNORE_MAIL_HOOKS_FAILURE_MODE="+r.FailureMode,
	)
	if exe, err := os.Executable(); err == nil {
		env = append(env, "WL_IGNORE_MAIL_BINARY="+exe)
	}
	for _, v := range envVars {
		if strings.Contains(v, "=") {
			env = append(env, v)
		}
	}

	out := r.Output
	if out == nil {
		out = io.Discard
	}
	logging.Debug("running hooks", "hook_point", hookPoint, "scripts", len(scripts))

	for _, s := range scripts {
		start := time.Now()
		cmd := exec.CommandContext(ctx, s.path)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		if len(output) > 0 {
			_, _ = out.Write(output)
		}
		if err == nil {
			logging.Debug("hook completed", "hook", s.name, "duration_seconds", time.Since(start).Seconds())
			continue
		}

		logging.Warn("hook failed", "hook", s.name, "error", err)
		switch r.FailureMode {
		case FailureAbort:
			return fmt.Errorf("hook %s failed: %w", s.name, err)
		case FailureIgnore:
		default:
			fmt.Fprintf(out, "warning: hook %s failed: %v\n", s.name, err)
		}
	}
	return nil
}
