// Package compose drives docker compose with the projected environment.
// The compose files themselves are the orchestration layer; this package
// only invokes them.
package compose

import (
	"context"
	"path/filepath"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/logging"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// DefaultFile returns the compose file conventionally shipped with the
// current checkout.
func DefaultFile(currentRepoRoot string) string {
	return filepath.Join(currentRepoRoot, "docker", "osd-dev", "dev.yml")
}

// Runner invokes docker compose for one resolved invocation.
type Runner struct {
	Executor system.CommandExecutor

	// File is the compose file path.
	File string

	// DryRun prints the command instead of executing it.
	DryRun bool
}

// NewRunner creates a Runner using the default executor.
func NewRunner(file string) *Runner {
	return &Runner{Executor: system.DefaultExecutor(), File: file}
}

// args builds the compose argument vector for an action and profile.
func (r *Runner) args(action config.Action, profile string) []string {
	base := []string{"compose", "-f", r.File, "--profile", profile}
	switch action {
	case config.ActionUp:
		return append(base, "up", "-d")
	case config.ActionDown:
		return append(base, "down", "--remove-orphans")
	case config.ActionStop:
		return append(base, "stop")
	}
	return append(base, string(action))
}

// Run executes the action against the selected profile with the projected
// environment appended to the process environment.
func (r *Runner) Run(ctx context.Context, action config.Action, profile string, env []string) error {
	args := r.args(action, profile)
	command := shellquote.Join(append([]string{"docker"}, args...)...)

	if r.DryRun {
		logging.UserInfo("%s", command)
		return nil
	}

	logging.Debug("running compose", "command", command)
	output, err := r.Executor.Execute(ctx, env, "docker", args...)
	if err != nil {
		trimmed := strings.TrimSpace(string(output))
		if trimmed != "" {
			logging.UserError("%s", trimmed)
		}
		return errors.ComposeFailed(string(action), err)
	}
	return nil
}
