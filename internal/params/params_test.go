package params

import (
	"strings"
	"testing"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/repos"
)

func testEnv() config.EnvironmentPaths {
	return config.EnvironmentPaths{
		CurrentRepoRoot: "/work/wazuh-dashboard-plugins",
		SiblingRoot:     "/work",
		ManifestPath:    "/work/wazuh-dashboard-plugins/package.json",
	}
}

func parse(t *testing.T, argv []string, env config.EnvironmentPaths) *Result {
	t.Helper()
	result, err := Parse(argv, env, nil)
	if err != nil {
		t.Fatalf("Parse(%v) failed: %v", argv, err)
	}
	return result
}

func parseErr(t *testing.T, argv []string, env config.EnvironmentPaths) error {
	t.Helper()
	result, err := Parse(argv, env, nil)
	if err == nil {
		t.Fatalf("Parse(%v) succeeded with config %+v, want error", argv, result.Config)
	}
	if result != nil {
		t.Fatalf("Parse(%v) returned a non-nil result alongside an error", argv)
	}
	return err
}

func TestParse_ActionTokens(t *testing.T) {
	for _, action := range []string{"up", "down", "stop"} {
		t.Run(action, func(t *testing.T) {
			result := parse(t, []string{action}, testEnv())
			if string(result.Config.Action) != action {
				t.Errorf("Action = %q, want %q", result.Config.Action, action)
			}
		})
	}
}

func TestParse_ActionTwice(t *testing.T) {
	err := parseErr(t, []string{"up", "down"}, testEnv())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParse_UnrecognizedTokens(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"unknown flag", []string{"--frobnicate", "up"}},
		{"stray positional", []string{"up", "oops"}},
		{"typo action", []string{"uo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.argv, testEnv())
			if !errors.IsValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestParse_Versions(t *testing.T) {
	result := parse(t, []string{"up", "--os", "2.13.0", "--osd", "2.13.0"}, testEnv())
	cfg := result.Config
	if cfg.OSVersion != "2.13.0" {
		t.Errorf("OSVersion = %q", cfg.OSVersion)
	}
	if cfg.OSDVersion != "2.13.0" {
		t.Errorf("OSDVersion = %q", cfg.OSDVersion)
	}
}

func TestParse_MissingFlagValue(t *testing.T) {
	tests := [][]string{
		{"up", "--os"},
		{"up", "--os", "--osd", "2.13.0"},
		{"up", "--repo"},
		{"up", "--server"},
		{"up", "--agents-up"},
	}

	for _, argv := range tests {
		t.Run(strings.Join(argv, " "), func(t *testing.T) {
			err := parseErr(t, argv, testEnv())
			if !errors.IsValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestParse_AgentsUpNormalization(t *testing.T) {
	tests := []struct {
		value string
		want  config.AgentsPackage
	}{
		{"rpm", config.AgentsRPM},
		{"deb", config.AgentsDeb},
		{"without", config.AgentsWithout},
		{"none", config.AgentsWithout},
		{"0", config.AgentsWithout},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			result := parse(t, []string{"up", "--agents-up", tt.value}, testEnv())
			if result.Config.AgentsUp != tt.want {
				t.Errorf("AgentsUp = %q, want %q", result.Config.AgentsUp, tt.want)
			}
		})
	}
}

func TestParse_ServerAndServerLocalConflict(t *testing.T) {
	err := parseErr(t, []string{"up", "--server", "1.0", "--server-local", "tag"}, testEnv())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParse_ServerMode(t *testing.T) {
	// End-to-end scenario: up --server 4.12.0 with a current repo root.
	result := parse(t, []string{"up", "--server", "4.12.0"}, testEnv())
	cfg := result.Config

	if cfg.Mode != config.ModeServer {
		t.Errorf("Mode = %q, want server", cfg.Mode)
	}
	if cfg.ModeVersion != "4.12.0" {
		t.Errorf("ModeVersion = %q, want 4.12.0", cfg.ModeVersion)
	}
	if cfg.PluginsRoot != "/work/wazuh-dashboard-plugins/plugins" {
		t.Errorf("PluginsRoot = %q, want the conventional plugins directory", cfg.PluginsRoot)
	}
}

func TestParse_SAMLMode(t *testing.T) {
	result := parse(t, []string{"up", "--saml"}, testEnv())
	cfg := result.Config
	if !cfg.EnableSAML {
		t.Error("EnableSAML = false, want true")
	}
	if cfg.Mode != config.ModeSAML {
		t.Errorf("Mode = %q, want saml", cfg.Mode)
	}
}

func TestParse_DefaultMode(t *testing.T) {
	result := parse(t, []string{"up"}, testEnv())
	if result.Config.Mode != config.ModeStandard {
		t.Errorf("Mode = %q, want standard", result.Config.Mode)
	}
}

func TestParse_RepoExplicit(t *testing.T) {
	result := parse(t, []string{"up", "--repo", "myplugin=/work/myplugin"}, testEnv())
	path, ok := result.Config.RepositoryPath("myplugin")
	if !ok || path != "/work/myplugin" {
		t.Errorf("RepositoryPath(myplugin) = (%q, %v)", path, ok)
	}
}

func TestParse_RepoInsidePluginsSubtree(t *testing.T) {
	tests := []string{
		"myplugin=/work/wazuh-dashboard-plugins/plugins/myplugin",
		"security=/checkout/plugins/security",
		"myplugin=/checkout/plugins",
	}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			err := parseErr(t, []string{"up", "--repo", value}, testEnv())
			if !errors.IsValidation(err) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestParse_RepoShorthandAlias(t *testing.T) {
	result := parse(t, []string{"up", "--repo", "security"}, testEnv())
	path, ok := result.Config.RepositoryPath(repos.SecurityPluginRepo)
	if !ok {
		t.Fatalf("shorthand did not register the canonical repository name")
	}
	want := "/work/" + repos.SecurityPluginRepo
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, ok := result.Config.RepositoryPath("security"); ok {
		t.Error("shorthand registered under the alias, want canonical name only")
	}
}

func TestParse_RepoShorthandWithoutSibling(t *testing.T) {
	env := testEnv()
	env.SiblingRoot = ""
	err := parseErr(t, []string{"up", "--repo", "wazuh"}, env)
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParse_BaseWithPath(t *testing.T) {
	result := parse(t, []string{"up", "--base", "/work/wazuh-dashboard"}, testEnv())
	cfg := result.Config
	if !cfg.UseDashboardFromSource {
		t.Error("UseDashboardFromSource = false, want true")
	}
	if cfg.DashboardBase != "/work/wazuh-dashboard" {
		t.Errorf("DashboardBase = %q", cfg.DashboardBase)
	}
}

func TestParse_BaseAutoDetect(t *testing.T) {
	// The following token is an action, so --base consumes no value and
	// the base is derived from the sibling directory.
	result := parse(t, []string{"--base", "up"}, testEnv())
	cfg := result.Config
	if cfg.Action != config.ActionUp {
		t.Errorf("Action = %q, want up", cfg.Action)
	}
	if cfg.DashboardBase != "/work/wazuh-dashboard" {
		t.Errorf("DashboardBase = %q, want the sibling wazuh-dashboard checkout", cfg.DashboardBase)
	}
	if got := cfg.Provenance("dashboardBase"); got != "auto-detected" {
		t.Errorf("Provenance(dashboardBase) = %q, want auto-detected", got)
	}
}

func TestParse_BaseAutoDetectWithoutSibling(t *testing.T) {
	env := testEnv()
	env.SiblingRoot = ""
	err := parseErr(t, []string{"up", "--base"}, env)
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParse_BaseUnreachable(t *testing.T) {
	err := parseErr(t, []string{"up", "--base", "/opt/elsewhere"}, testEnv())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestParse_IndexerLocal(t *testing.T) {
	result := parse(t, []string{"up", "--indexer-local", "mytag"}, testEnv())
	cfg := result.Config
	if !cfg.UseIndexerFromPackage {
		t.Error("UseIndexerFromPackage = false, want true")
	}
	if cfg.IndexerTag != "mytag" {
		t.Errorf("IndexerTag = %q, want mytag", cfg.IndexerTag)
	}

	// Without a tag the flag still toggles the side flag.
	result = parse(t, []string{"--indexer-local", "up"}, testEnv())
	if !result.Config.UseIndexerFromPackage {
		t.Error("UseIndexerFromPackage = false, want true")
	}
	if result.Config.IndexerTag != "" {
		t.Errorf("IndexerTag = %q, want empty", result.Config.IndexerTag)
	}
}

func TestParse_PluginsRootFlagAliases(t *testing.T) {
	for _, flag := range []string{"--plugins-root", "--plugins-path", "--plugins"} {
		t.Run(flag, func(t *testing.T) {
			result := parse(t, []string{"up", flag, "/custom/plugins/"}, testEnv())
			if result.Config.PluginsRoot != "/custom/plugins" {
				t.Errorf("PluginsRoot = %q, want /custom/plugins", result.Config.PluginsRoot)
			}
		})
	}
}

func TestParse_PluginsRootFromDefaultsFile(t *testing.T) {
	defaults := &config.Defaults{PluginsRoot: "/defaults/plugins"}
	result, err := Parse([]string{"up"}, testEnv(), defaults)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Config.PluginsRoot != "/defaults/plugins" {
		t.Errorf("PluginsRoot = %q, want the defaults file value", result.Config.PluginsRoot)
	}
}

func TestParse_PluginsRootDefaultingWithoutRepoRoot(t *testing.T) {
	env := testEnv()
	env.CurrentRepoRoot = ""
	result := parse(t, []string{"down"}, env)
	if result.Config.PluginsRoot != "" {
		t.Errorf("PluginsRoot = %q, want unset without a repo root", result.Config.PluginsRoot)
	}
}

func TestParse_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		t.Run(flag, func(t *testing.T) {
			_, err := Parse([]string{flag, "up"}, testEnv(), nil)
			if !errors.IsHelp(err) {
				t.Errorf("got %v, want the help sentinel", err)
			}
		})
	}
}

func TestParse_OutputFlags(t *testing.T) {
	result := parse(t, []string{"-v", "--json", "--dry-run", "up"}, testEnv())
	if !result.Verbose || !result.JSON || !result.DryRun {
		t.Errorf("Verbose=%v JSON=%v DryRun=%v, want all true", result.Verbose, result.JSON, result.DryRun)
	}
}
