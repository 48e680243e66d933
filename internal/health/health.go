// Package health runs preflight checks against a finalized configuration.
// Tasks are registered as descriptors and evaluated against one read-only
// context; results never block the invocation, they only inform the user.
package health

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/manifest"
	"github.com/wazuh/devenv-ctl/internal/paths"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// Outcome is the result category for one task.
type Outcome string

const (
	OutcomePass        Outcome = "pass"
	OutcomeFail        Outcome = "fail"
	OutcomeRemediation Outcome = "needs-remediation"
)

// Context is the read-only state handed to every check.
type Context struct {
	Config      *config.Config
	Env         config.EnvironmentPaths
	FS          system.FileSystem
	Executor    system.CommandExecutor
	ComposeFile string
}

// Task is one registered health check.
type Task struct {
	// Name identifies the task in reports.
	Name string

	// Check returns nil on pass. The error message becomes the detail.
	Check func(*Context) error

	// Remediation, when non-empty, turns a failure into needs-remediation
	// and is shown to the user.
	Remediation string
}

// TaskResult is the evaluated outcome of one task.
type TaskResult struct {
	Name        string
	Outcome     Outcome
	Detail      string
	Remediation string
}

// Runner evaluates registered tasks in order.
type Runner struct {
	tasks []Task
}

// NewRunner creates a Runner with the given tasks.
func NewRunner(tasks ...Task) *Runner {
	return &Runner{tasks: tasks}
}

// Register appends a task.
func (r *Runner) Register(task Task) {
	r.tasks = append(r.tasks, task)
}

// Run evaluates every task and returns one result per task.
func (r *Runner) Run(ctx *Context) []TaskResult {
	results := make([]TaskResult, 0, len(r.tasks))
	for _, task := range r.tasks {
		result := TaskResult{Name: task.Name, Outcome: OutcomePass}
		if err := task.Check(ctx); err != nil {
			result.Detail = err.Error()
			if task.Remediation != "" {
				result.Outcome = OutcomeRemediation
				result.Remediation = task.Remediation
			} else {
				result.Outcome = OutcomeFail
			}
		}
		results = append(results, result)
	}
	return results
}

// Healthy reports whether every result passed.
func Healthy(results []TaskResult) bool {
	for _, r := range results {
		if r.Outcome != OutcomePass {
			return false
		}
	}
	return true
}

// composeFile is the subset of a compose file the preflight check reads.
type composeFile struct {
	Services map[string]struct {
		Profiles []string `yaml:"profiles"`
	} `yaml:"services"`
}

// DefaultTasks returns the standard preflight checks for an up invocation.
func DefaultTasks() []Task {
	return []Task{
		{
			Name: "docker-binary",
			Check: func(ctx *Context) error {
				if _, err := ctx.Executor.LookPath("docker"); err != nil {
					return fmt.Errorf("docker not found in PATH")
				}
				return nil
			},
			Remediation: "install Docker or add it to PATH",
		},
		{
			Name: "repository-root",
			Check: func(ctx *Context) error {
				if ctx.Env.CurrentRepoRoot == "" {
					return fmt.Errorf("%s is not set", config.EnvRepoRoot)
				}
				return nil
			},
			Remediation: "export " + config.EnvRepoRoot + " with the host root of the current checkout",
		},
		{
			Name: "compose-file",
			Check: func(ctx *Context) error {
				data, err := ctx.FS.ReadFile(ctx.ComposeFile)
				if err != nil {
					return fmt.Errorf("cannot read %s", ctx.ComposeFile)
				}
				var cf composeFile
				if err := yaml.Unmarshal(data, &cf); err != nil {
					return fmt.Errorf("%s is not valid YAML: %v", ctx.ComposeFile, err)
				}
				if len(cf.Services) == 0 {
					return fmt.Errorf("%s declares no services", ctx.ComposeFile)
				}
				return nil
			},
		},
		{
			Name: "package-manifest",
			Check: func(ctx *Context) error {
				if _, err := manifest.Read(ctx.FS, ctx.Env.ManifestPath); err != nil {
					return fmt.Errorf("manifest %s is not readable", ctx.Env.ManifestPath)
				}
				return nil
			},
			Remediation: "run from a checkout with a package.json, or set " + config.EnvManifest,
		},
		{
			Name: "dashboard-base",
			Check: func(ctx *Context) error {
				if !ctx.Config.UseDashboardFromSource {
					return nil
				}
				return paths.EnsureAccessibleHostPath(ctx.Config.DashboardBase, "dashboard base", ctx.Env, ctx.FS)
			},
		},
	}
}
