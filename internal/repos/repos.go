// Package repos maps logical repository names to absolute host paths using
// explicit overrides, shorthand sibling-directory inference, or candidate
// base auto-detection.
package repos

import (
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/logging"
	"github.com/wazuh/devenv-ctl/internal/manifest"
	"github.com/wazuh/devenv-ctl/internal/paths"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// SecurityPluginRepo is the canonical repository for every security-plugin
// shorthand.
const SecurityPluginRepo = "wazuh-security-dashboards-plugin"

// Sibling checkout directory names probed during auto-detection.
const (
	siblingPluginsRepo   = "wazuh-dashboard-plugins"
	siblingDashboardRepo = "wazuh-dashboard"
)

// aliases canonicalizes well-known shorthand names to their repository.
var aliases = map[string]string{
	"security":                   SecurityPluginRepo,
	"security-dashboards":        SecurityPluginRepo,
	"security-dashboards-plugin": SecurityPluginRepo,
	"wazuh-security":             SecurityPluginRepo,
}

// CanonicalName resolves a shorthand repository name through the alias
// table. Unknown names map to themselves.
func CanonicalName(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// EnvVarName derives the environment variable that carries a repository's
// host path: the upper-snaked logical name with a _REPO suffix.
func EnvVarName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_REPO"
}

// ResolveOne maps one logical repository name to an absolute host path.
// An explicit override wins; otherwise candidate base directories are
// searched in order. Either way the chosen path must pass the container
// accessibility check before it is returned.
func ResolveOne(name string, cfg *config.Config, env config.EnvironmentPaths, fsys system.FileSystem) (string, error) {
	chosen, err := pickPath(name, cfg, env, fsys)
	if err != nil {
		return "", err
	}
	if err := paths.EnsureAccessibleHostPath(chosen, "repository "+name, env, fsys); err != nil {
		return "", err
	}
	logging.Debug("resolved repository", "name", name, "path", chosen)
	return chosen, nil
}

func pickPath(name string, cfg *config.Config, env config.EnvironmentPaths, fsys system.FileSystem) (string, error) {
	if override, ok := cfg.RepositoryPath(name); ok {
		if !filepath.IsAbs(override) {
			return "", errors.Validation("the path for repository %q must be absolute (got %q)", name, override)
		}
		return override, nil
	}

	if env.CurrentRepoRoot == "" {
		return "", errors.Configuration("cannot auto-detect repository %q: %s is not set in the environment", name, config.EnvRepoRoot)
	}

	for _, base := range candidateBases(cfg, env) {
		for _, candidate := range probePaths(base, name) {
			if paths.ToContainerPath(candidate, env) == "" {
				continue
			}
			if !manifest.ExistsUnder(fsys, candidate) {
				continue
			}
			return candidate, nil
		}
	}

	return "", errors.Validation("could not locate repository %q under the configured roots; use --repo %s=path to set it explicitly", name, name)
}

// candidateBases returns the ordered base directories searched during
// auto-detection.
func candidateBases(cfg *config.Config, env config.EnvironmentPaths) []string {
	var bases []string
	if cfg.PluginsRoot != "" {
		bases = append(bases, cfg.PluginsRoot)
	}
	bases = append(bases, paths.StripTrailingSlash(env.CurrentRepoRoot))
	if env.SiblingRoot != "" {
		sibling := paths.StripTrailingSlash(env.SiblingRoot)
		bases = append(bases,
			filepath.Join(sibling, siblingPluginsRepo),
			filepath.Join(sibling, siblingDashboardRepo))
	}
	return bases
}

// probePaths returns the sub-paths probed under one base, in order. The
// repository name is joined with SecureJoin so a hostile name cannot
// escape the base directory.
func probePaths(base, name string) []string {
	var probes []string
	if p, err := securejoin.SecureJoin(base, filepath.Join("plugins", name)); err == nil {
		probes = append(probes, p)
	}
	if p, err := securejoin.SecureJoin(base, name); err == nil {
		probes = append(probes, p)
	}
	return append(probes, base)
}

// ResolveAll resolves each repository independently and maps the derived
// environment variable name to its host path. A single failure aborts the
// whole call; there is no shared state to roll back.
func ResolveAll(names []string, cfg *config.Config, env config.EnvironmentPaths, fsys system.FileSystem) (map[string]string, error) {
	resolved := make(map[string]string, len(names))
	for _, name := range names {
		path, err := ResolveOne(name, cfg, env, fsys)
		if err != nil {
			return nil, err
		}
		resolved[EnvVarName(name)] = path
	}
	return resolved, nil
}
