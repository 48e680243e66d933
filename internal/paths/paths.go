// Package paths translates host filesystem locations into their mount
// points inside the dev environment container. Translation is prefix based:
// the current checkout and the sibling checkout directory are the only host
// subtrees visible from inside the container.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// Container-side mount points for the translatable host subtrees.
const (
	ContainerRepoRoot    = "/home/node/kbn"
	ContainerSiblingRoot = "/home/node/repos"
)

// StripTrailingSlash removes trailing path separators. The root path "/"
// is preserved. A single application is idempotent.
func StripTrailingSlash(path string) string {
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// ToContainerPath maps a host path to its location inside the dev
// environment container, or "" when the path lives under neither
// translatable subtree.
func ToContainerPath(hostPath string, env config.EnvironmentPaths) string {
	hostPath = StripTrailingSlash(hostPath)

	if mapped, ok := substitutePrefix(hostPath, env.CurrentRepoRoot, ContainerRepoRoot); ok {
		return mapped
	}
	if mapped, ok := substitutePrefix(hostPath, env.SiblingRoot, ContainerSiblingRoot); ok {
		return mapped
	}
	return ""
}

// substitutePrefix swaps hostRoot for containerRoot when path is hostRoot
// itself or a descendant of it.
func substitutePrefix(path, hostRoot, containerRoot string) (string, bool) {
	if hostRoot == "" {
		return "", false
	}
	hostRoot = StripTrailingSlash(hostRoot)
	if path == hostRoot {
		return containerRoot, true
	}
	if strings.HasPrefix(path, hostRoot+"/") {
		return containerRoot + path[len(hostRoot):], true
	}
	return "", false
}

// EnsureAccessibleHostPath verifies that a host path is absolute, maps to a
// location visible inside the dev environment container, and exists on the
// host. The label names the offending setting in error messages.
//
// An untranslatable path is user input pointing outside the shared mounts,
// so it is a validation error. A translatable path that does not exist is
// missing host state, so it is a configuration error.
func EnsureAccessibleHostPath(path, label string, env config.EnvironmentPaths, fsys system.FileSystem) error {
	if !filepath.IsAbs(path) {
		return errors.Validation("the %s path must be absolute (got %q)", label, path)
	}
	if ToContainerPath(path, env) == "" {
		return errors.Validation("the %s path %s is not reachable from the dev environment container; it must live under %s or %s", label, path, env.CurrentRepoRoot, env.SiblingRoot)
	}
	if !fsys.Exists(StripTrailingSlash(path)) {
		return errors.Configuration("the %s path %s does not exist on the host", label, path)
	}
	return nil
}
