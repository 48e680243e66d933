package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wazuh/devenv-ctl/internal/compose"
	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/envconf"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/health"
	"github.com/wazuh/devenv-ctl/internal/logging"
	"github.com/wazuh/devenv-ctl/internal/params"
	"github.com/wazuh/devenv-ctl/internal/repos"
	"github.com/wazuh/devenv-ctl/internal/system"
	"github.com/wazuh/devenv-ctl/internal/tui"
)

// The legacy argument convention (one positional action plus flags whose
// values may be absent, with space-separated syntax) cannot be expressed in
// pflag, so the root command disables flag parsing and hands the raw argv
// to the params scanner.
var rootCmd = &cobra.Command{
	Use:   "devenv-ctl [flags] <action>",
	Short: "Wazuh dashboard development environment CLI",
	Long: `devenv-ctl resolves a validated configuration for the Docker-based
dashboard development environment and drives docker compose with it.

The environment mounts the current checkout and any requested sibling
repositories into the orchestration containers; the resolved settings are
projected as environment variables consumed by the compose files.`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	RunE:               runRoot,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

func runRoot(cmd *cobra.Command, args []string) error {
	envPaths := config.EnvPathsFromProcess()
	fsys := system.DefaultFS()

	defaults, err := config.LoadDefaults(fsys, config.DefaultsPath())
	if err != nil {
		return err
	}

	result, err := params.Parse(args, envPaths, defaults)
	if err != nil {
		if errors.IsHelp(err) {
			fmt.Print(params.Usage)
			os.Exit(errors.ExitHelp)
		}
		return err
	}
	logging.Setup(result.Verbose, result.JSON, os.Stderr)

	cfg := result.Config
	if cfg.Action == config.ActionNone {
		return errors.Validation("an action is required: up, down, or stop")
	}

	// Repositories only get mounted on the way up; teardown actions still
	// project the environment so compose addresses the right project.
	repositories := map[string]string{}
	if cfg.Action == config.ActionUp {
		repositories, err = repos.ResolveAll(cfg.RepositoryNames(), cfg, envPaths, fsys)
		if err != nil {
			return err
		}
	}

	environment := envconf.NewProcessEnvironment()
	configurator := envconf.New(environment, fsys, defaults)
	configurator.InitializeBase(cfg, envPaths)
	configurator.ApplyVersionDerived(cfg.OSDVersion, envPaths)
	profile, err := configurator.ConfigureModeAndSecurity(cfg)
	if err != nil {
		return err
	}
	for key, path := range repositories {
		environment.Set(key, path)
	}

	composeFile := compose.DefaultFile(envPaths.CurrentRepoRoot)

	if cfg.Action == config.ActionUp {
		runPreflight(cfg, envPaths, fsys, composeFile)
	}

	if logging.Verbose {
		fmt.Print(tui.RenderSummary(cfg, profile, repositories, environment.Values()))
	}

	runner := compose.NewRunner(composeFile)
	runner.DryRun = result.DryRun
	run := func() error {
		return runner.Run(cmd.Context(), cfg.Action, profile, environment.Entries())
	}

	if cfg.Action == config.ActionUp && !result.DryRun {
		logInfo("Starting the %s profile...", profile)
		err = tui.RunWithSpinner("Bringing the dev environment up...", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	if !result.DryRun {
		switch cfg.Action {
		case config.ActionUp:
			logSuccess("Dev environment is up (profile %s, port %s)", profile, environment.Get("OSD_PORT"))
		case config.ActionDown:
			logSuccess("Dev environment removed")
		case config.ActionStop:
			logSuccess("Dev environment stopped")
		}
	}
	return nil
}

// runPreflight evaluates the health tasks and reports problems. Preflight
// never blocks the invocation.
func runPreflight(cfg *config.Config, envPaths config.EnvironmentPaths, fsys system.FileSystem, composeFile string) {
	runner := health.NewRunner(health.DefaultTasks()...)
	results := runner.Run(&health.Context{
		Config:      cfg,
		Env:         envPaths,
		FS:          fsys,
		Executor:    system.DefaultExecutor(),
		ComposeFile: composeFile,
	})
	if !health.Healthy(results) {
		logWarning("Preflight found problems:")
		fmt.Fprint(os.Stderr, tui.RenderHealth(results))
	}
}
