package config

import (
	"os"
	"path/filepath"

	"github.com/wazuh/devenv-ctl/internal/errors"
)

// Action is the orchestration verb for one invocation.
type Action string

const (
	ActionNone Action = ""
	ActionUp   Action = "up"
	ActionDown Action = "down"
	ActionStop Action = "stop"
)

// ParseAction recognizes a token against the fixed action allow-set.
func ParseAction(token string) (Action, bool) {
	switch Action(token) {
	case ActionUp, ActionDown, ActionStop:
		return Action(token), true
	}
	return ActionNone, false
}

// AgentsPackage selects which agent package flavor to enroll, if any.
type AgentsPackage string

const (
	AgentsUnset   AgentsPackage = ""
	AgentsRPM     AgentsPackage = "rpm"
	AgentsDeb     AgentsPackage = "deb"
	AgentsWithout AgentsPackage = "without"
)

// ParseAgentsPackage normalizes user input for the agents-up flag.
// "none" and "0" are accepted aliases for "without".
func ParseAgentsPackage(value string) (AgentsPackage, error) {
	switch value {
	case "rpm":
		return AgentsRPM, nil
	case "deb":
		return AgentsDeb, nil
	case "without", "none", "0":
		return AgentsWithout, nil
	}
	return AgentsUnset, errors.Validation("invalid value %q for --agents-up: must be rpm, deb, or without", value)
}

// Mode is the canonical deployment profile for one invocation.
type Mode string

const (
	ModeUnresolved  Mode = ""
	ModeStandard    Mode = "standard"
	ModeSAML        Mode = "saml"
	ModeServer      Mode = "server"
	ModeServerLocal Mode = "server-local"
)

// RepositoryOverride is one --repo entry. Names are not required to be
// unique across the sequence; lookups are last-match-wins.
type RepositoryOverride struct {
	Name string
	Path string
}

// Config is the single mutable record threaded through resolution.
// One instance is created per invocation and mutated strictly in the order
// argv scan, mode inference, repository inference, defaulting. After that
// it is treated as immutable.
type Config struct {
	Action      Action
	PluginsRoot string

	OSVersion  string
	OSDVersion string

	AgentsUp   AgentsPackage
	EnableSAML bool

	ServerVersion      string
	ServerLocalVersion string

	// Mode and ModeVersion are derived by ResolveMode, never written
	// directly by the argv scan.
	Mode        Mode
	ModeVersion string

	UseDashboardFromSource bool
	DashboardBase          string

	UseIndexerFromPackage bool
	IndexerTag            string

	UserRepositories []RepositoryOverride

	provenance map[string]string
}

// New creates an empty Config.
func New() *Config {
	return &Config{provenance: make(map[string]string)}
}

// record notes which stage set a field. The value itself is authoritative
// regardless of provenance; this exists for diagnostics only.
func (c *Config) record(field, source string) {
	c.provenance[field] = source
}

// Provenance returns which stage set the named field, or "" if unset.
func (c *Config) Provenance(field string) string {
	return c.provenance[field]
}

// SetAction sets the orchestration verb. A second attempt is a validation
// error: exactly one positional action token is permitted.
func (c *Config) SetAction(a Action, source string) error {
	if c.Action != ActionNone {
		return errors.Validation("action already set to %q; only one action is allowed (got %q)", c.Action, a)
	}
	c.Action = a
	c.record("action", source)
	return nil
}

// SetPluginsRoot sets the base directory for repository auto-discovery.
func (c *Config) SetPluginsRoot(path, source string) {
	c.PluginsRoot = path
	c.record("pluginsRoot", source)
}

// SetOSVersion sets the OpenSearch version string.
func (c *Config) SetOSVersion(version, source string) error {
	if version == "" {
		return errors.Validation("the OS version cannot be empty")
	}
	c.OSVersion = version
	c.record("osVersion", source)
	return nil
}

// SetOSDVersion sets the OpenSearch Dashboards version string.
func (c *Config) SetOSDVersion(version, source string) error {
	if version == "" {
		return errors.Validation("the OSD version cannot be empty")
	}
	c.OSDVersion = version
	c.record("osdVersion", source)
	return nil
}

// SetAgentsUp sets the agent package flavor.
func (c *Config) SetAgentsUp(pkg AgentsPackage, source string) {
	c.AgentsUp = pkg
	c.record("agentsUp", source)
}

// SetSAML enables the SAML profile.
func (c *Config) SetSAML(source string) {
	c.EnableSAML = true
	c.record("enableSaml", source)
}

// SetServerVersion records the server flag version.
func (c *Config) SetServerVersion(version, source string) {
	c.ServerVersion = version
	c.record("serverVersion", source)
}

// SetServerLocalVersion records the server-local flag tag.
func (c *Config) SetServerLocalVersion(version, source string) {
	c.ServerLocalVersion = version
	c.record("serverLocalVersion", source)
}

// SetDashboardFromSource marks the dashboard as served from a source checkout.
func (c *Config) SetDashboardFromSource(source string) {
	c.UseDashboardFromSource = true
	c.record("useDashboardFromSource", source)
}

// SetDashboardBase sets the host path of the dashboard source checkout.
func (c *Config) SetDashboardBase(path, source string) error {
	if !filepath.IsAbs(path) {
		return errors.Validation("the dashboard base path must be absolute (got %q)", path)
	}
	c.DashboardBase = path
	c.record("dashboardBase", source)
	return nil
}

// SetIndexerFromPackage marks the indexer as running from a package build.
func (c *Config) SetIndexerFromPackage(source string) {
	c.UseIndexerFromPackage = true
	c.record("useIndexerFromPackage", source)
}

// SetIndexerTag sets the indexer package tag.
func (c *Config) SetIndexerTag(tag, source string) {
	c.IndexerTag = tag
	c.record("indexerTag", source)
}

// AddRepository appends a repository override.
func (c *Config) AddRepository(name, path, source string) {
	c.UserRepositories = append(c.UserRepositories, RepositoryOverride{Name: name, Path: path})
	c.record("repo:"+name, source)
}

// RepositoryPath returns the override path for a repository name, scanning
// the full list so the last-listed entry wins.
func (c *Config) RepositoryPath(name string) (string, bool) {
	path := ""
	found := false
	for _, r := range c.UserRepositories {
		if r.Name == name {
			path = r.Path
			found = true
		}
	}
	return path, found
}

// RepositoryNames returns the override names in order of first appearance,
// without duplicates.
func (c *Config) RepositoryNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range c.UserRepositories {
		if !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	return names
}

// Ambient environment variable names consumed by the resolver.
const (
	EnvRepoRoot    = "WZD_HOME"
	EnvSiblingRoot = "WZD_SIBLINGS"
	EnvManifest    = "WZD_PACKAGE_MANIFEST"
)

// EnvironmentPaths holds the read-only host locations supplied by the
// ambient environment. It is used for translation and discovery and is
// never mutated.
type EnvironmentPaths struct {
	// CurrentRepoRoot is the host root of the checkout being developed.
	CurrentRepoRoot string

	// SiblingRoot is an optional host directory assumed to contain peer
	// checkouts (the dashboard repository and friends).
	SiblingRoot string

	// ManifestPath is the package manifest of the current checkout.
	ManifestPath string
}

// EnvPathsFromProcess builds EnvironmentPaths from the process environment.
// The manifest path defaults to package.json under the current repo root.
func EnvPathsFromProcess() EnvironmentPaths {
	paths := EnvironmentPaths{
		CurrentRepoRoot: os.Getenv(EnvRepoRoot),
		SiblingRoot:     os.Getenv(EnvSiblingRoot),
		ManifestPath:    os.Getenv(EnvManifest),
	}
	if paths.ManifestPath == "" && paths.CurrentRepoRoot != "" {
		paths.ManifestPath = filepath.Join(paths.CurrentRepoRoot, "package.json")
	}
	return paths
}
