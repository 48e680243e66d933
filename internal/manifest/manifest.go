// Package manifest reads package.json manifests. The resolver uses them in
// two places: surfacing the development version of the current checkout and
// confirming that a candidate directory is a repository root.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/wazuh/devenv-ctl/internal/system"
)

// FileName is the manifest file expected directly under a repository root.
const FileName = "package.json"

// Manifest holds the fields the resolver cares about.
type Manifest struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Revision string `json:"revision"`
}

// Read loads and parses a manifest file.
func Read(fsys system.FileSystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// ExistsUnder reports whether a manifest file sits directly under dir.
func ExistsUnder(fsys system.FileSystem, dir string) bool {
	return fsys.Exists(filepath.Join(dir, FileName))
}
