package repos

import (
	"testing"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/system"
)

func testEnv() config.EnvironmentPaths {
	return config.EnvironmentPaths{
		CurrentRepoRoot: "/work/wazuh-dashboard-plugins",
		SiblingRoot:     "/work",
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"security", SecurityPluginRepo},
		{"security-dashboards", SecurityPluginRepo},
		{"security-dashboards-plugin", SecurityPluginRepo},
		{"wazuh-security", SecurityPluginRepo},
		{SecurityPluginRepo, SecurityPluginRepo},
		{"main", "main"},
		{"wazuh-core", "wazuh-core"},
	}

	for _, tt := range tests {
		if got := CanonicalName(tt.name); got != tt.want {
			t.Errorf("CanonicalName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEnvVarName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main", "MAIN_REPO"},
		{"wazuh-core", "WAZUH_CORE_REPO"},
		{SecurityPluginRepo, "WAZUH_SECURITY_DASHBOARDS_PLUGIN_REPO"},
	}

	for _, tt := range tests {
		if got := EnvVarName(tt.name); got != tt.want {
			t.Errorf("EnvVarName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolveOne_ExplicitOverride(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "/work/myplugin", "--repo")

	fsys := system.NewMockFS()
	fsys.AddDir("/work/myplugin")

	path, err := ResolveOne("myplugin", cfg, testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if path != "/work/myplugin" {
		t.Errorf("path = %q, want /work/myplugin", path)
	}
}

func TestResolveOne_OverrideLastMatchWins(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "/work/first", "--repo")
	cfg.AddRepository("myplugin", "/work/second", "--repo")

	fsys := system.NewMockFS()
	fsys.AddDir("/work/first")
	fsys.AddDir("/work/second")

	path, err := ResolveOne("myplugin", cfg, testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if path != "/work/second" {
		t.Errorf("path = %q, want the later override to win", path)
	}
}

func TestResolveOne_RelativeOverride(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "relative/path", "--repo")

	_, err := ResolveOne("myplugin", cfg, testEnv(), system.NewMockFS())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestResolveOne_OverrideOutsideMounts(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "/opt/elsewhere", "--repo")

	_, err := ResolveOne("myplugin", cfg, testEnv(), system.NewMockFS())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error for an untranslatable path", err)
	}
}

func TestResolveOne_OverrideMissingOnHost(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "/work/missing", "--repo")

	_, err := ResolveOne("myplugin", cfg, testEnv(), system.NewMockFS())
	if !errors.IsConfiguration(err) {
		t.Errorf("got %v, want configuration error for a missing path", err)
	}
}

func TestResolveOne_NoRepoRoot(t *testing.T) {
	env := config.EnvironmentPaths{}
	_, err := ResolveOne("myplugin", config.New(), env, system.NewMockFS())
	if !errors.IsConfiguration(err) {
		t.Errorf("got %v, want configuration error", err)
	}
}

func TestResolveOne_AutoDetectUnderPluginsRoot(t *testing.T) {
	cfg := config.New()
	cfg.SetPluginsRoot("/work/wazuh-dashboard-plugins/plugins", "default")

	fsys := system.NewMockFS()
	fsys.AddFile("/work/wazuh-dashboard-plugins/plugins/myplugin/package.json", []byte("{}"))

	path, err := ResolveOne("myplugin", cfg, testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if path != "/work/wazuh-dashboard-plugins/plugins/myplugin" {
		t.Errorf("path = %q", path)
	}
}

func TestResolveOne_AutoDetectUnderSibling(t *testing.T) {
	fsys := system.NewMockFS()
	fsys.AddFile("/work/wazuh-dashboard/plugins/myplugin/package.json", []byte("{}"))

	path, err := ResolveOne("myplugin", config.New(), testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if path != "/work/wazuh-dashboard/plugins/myplugin" {
		t.Errorf("path = %q", path)
	}
}

func TestResolveOne_SearchOrder(t *testing.T) {
	// The same repository exists both under the plugins root and under a
	// sibling checkout; the plugins root is probed first.
	cfg := config.New()
	cfg.SetPluginsRoot("/work/wazuh-dashboard-plugins/plugins", "default")

	fsys := system.NewMockFS()
	fsys.AddFile("/work/wazuh-dashboard-plugins/plugins/myplugin/package.json", []byte("{}"))
	fsys.AddFile("/work/wazuh-dashboard/plugins/myplugin/package.json", []byte("{}"))

	path, err := ResolveOne("myplugin", cfg, testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveOne failed: %v", err)
	}
	if path != "/work/wazuh-dashboard-plugins/plugins/myplugin" {
		t.Errorf("path = %q, want the plugins root candidate", path)
	}
}

func TestResolveOne_RequiresManifest(t *testing.T) {
	// The directory exists but carries no package.json, so auto-detection
	// must not accept it.
	fsys := system.NewMockFS()
	fsys.AddDir("/work/wazuh-dashboard-plugins/plugins/myplugin")

	_, err := ResolveOne("myplugin", config.New(), testEnv(), fsys)
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestResolveOne_NotFound(t *testing.T) {
	_, err := ResolveOne("ghost", config.New(), testEnv(), system.NewMockFS())
	if !errors.IsValidation(err) {
		t.Errorf("got %v, want validation error", err)
	}
}

func TestResolveAll(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("myplugin", "/work/myplugin", "--repo")
	cfg.AddRepository("wazuh-core", "/work/wazuh-core", "--repo")

	fsys := system.NewMockFS()
	fsys.AddDir("/work/myplugin")
	fsys.AddDir("/work/wazuh-core")

	resolved, err := ResolveAll([]string{"myplugin", "wazuh-core"}, cfg, testEnv(), fsys)
	if err != nil {
		t.Fatalf("ResolveAll failed: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("len(resolved) = %d, want 2", len(resolved))
	}
	if resolved["MYPLUGIN_REPO"] != "/work/myplugin" {
		t.Errorf("MYPLUGIN_REPO = %q", resolved["MYPLUGIN_REPO"])
	}
	if resolved["WAZUH_CORE_REPO"] != "/work/wazuh-core" {
		t.Errorf("WAZUH_CORE_REPO = %q", resolved["WAZUH_CORE_REPO"])
	}
}

func TestResolveAll_FailFast(t *testing.T) {
	cfg := config.New()
	cfg.AddRepository("good", "/work/good", "--repo")

	fsys := system.NewMockFS()
	fsys.AddDir("/work/good")

	_, err := ResolveAll([]string{"good", "ghost"}, cfg, testEnv(), fsys)
	if err == nil {
		t.Fatal("ResolveAll succeeded, want error for the unresolvable repository")
	}
}
