// Package envconf projects a resolved Config into the environment variables
// consumed by the compose files. All writes go through the Environment
// capability so the projection is inspectable in tests.
package envconf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/logging"
	"github.com/wazuh/devenv-ctl/internal/manifest"
	"github.com/wazuh/devenv-ctl/internal/paths"
	"github.com/wazuh/devenv-ctl/internal/system"
)

// Built-in defaults, overridable through the defaults file or the ambient
// environment.
const (
	DefaultPassword = "admin"
	DefaultPort     = "5601"

	// ImposterVersion is the pinned mock-server tool version.
	ImposterVersion = "3.44.1"

	// OSDMajorTrack is the supported configuration track. The config file
	// layout is pinned to this line regardless of the version the user
	// requested.
	OSDMajorTrack = "2.x"

	// SecurityConfigPath is the security configuration root inside the
	// OpenSearch container.
	SecurityConfigPath = "/usr/share/opensearch/config/opensearch-security"
)

// Configurator projects Config into an Environment.
type Configurator struct {
	Env      Environment
	FS       system.FileSystem
	Defaults *config.Defaults
}

// New creates a Configurator. defaults may be nil.
func New(env Environment, fsys system.FileSystem, defaults *config.Defaults) *Configurator {
	if defaults == nil {
		defaults = &config.Defaults{}
	}
	return &Configurator{Env: env, FS: fsys, Defaults: defaults}
}

// InitializeBase sets the defaulted scalar values: password, version
// passthrough, port with fallback, pinned tool version, source root, and
// the stack passthrough. It performs no validation and always succeeds.
func (c *Configurator) InitializeBase(cfg *config.Config, envPaths config.EnvironmentPaths) {
	c.Env.Set("PASSWORD", firstNonEmpty(c.Env.Get("PASSWORD"), c.Defaults.Password, DefaultPassword))
	c.Env.Set("OS_VERSION", cfg.OSVersion)
	c.Env.Set("OSD_VERSION", cfg.OSDVersion)
	c.Env.Set("OSD_PORT", firstNonEmpty(c.Env.Get("PORT"), c.Defaults.Port, DefaultPort))
	c.Env.Set("IMPOSTER_VERSION", firstNonEmpty(c.Defaults.ImposterVersion, ImposterVersion))
	c.Env.Set("SRC", paths.StripTrailingSlash(envPaths.CurrentRepoRoot))
	c.Env.Set("WAZUH_STACK", c.Env.Get("WAZUH_STACK"))
}

// ApplyVersionDerived sets the values computed from the OSD version: the
// major version number, the compose project name, and the development
// version surfaced from the package manifest when one is readable.
//
// The major number is the leading dot-segment parsed as an integer. A
// non-numeric segment is not rejected; it writes the literal NaN, which
// the compose files tolerate. Known quirk, kept for compatibility.
func (c *Configurator) ApplyVersionDerived(osdVersion string, envPaths config.EnvironmentPaths) {
	major := osdVersion
	if idx := strings.IndexByte(osdVersion, '.'); idx >= 0 {
		major = osdVersion[:idx]
	}
	if n, err := strconv.Atoi(major); err == nil {
		c.Env.Set("OSD_MAJOR_NUMBER", strconv.Itoa(n))
	} else {
		c.Env.Set("OSD_MAJOR_NUMBER", "NaN")
	}

	c.Env.Set("COMPOSE_PROJECT_NAME", "osd-dev-"+strings.ReplaceAll(osdVersion, ".", ""))

	if m, err := manifest.Read(c.FS, envPaths.ManifestPath); err == nil {
		c.Env.Set("OSD_VERSION_DEV", m.Version)
	} else {
		logging.Debug("manifest not readable, skipping development version", "path", envPaths.ManifestPath, "error", err)
	}

	c.Env.Set("OSD_MAJOR", OSDMajorTrack)
}

// ConfigureModeAndSecurity selects the stack configuration files, swaps in
// the SAML variants when requested, and resolves the canonical mode string.
// Server and server-local both require a mode version; a composite
// "server-local-<suffix>" token cannot be requested directly and must come
// through the agents-up flag.
func (c *Configurator) ConfigureModeAndSecurity(cfg *config.Config) (string, error) {
	dashboardConf := fmt.Sprintf("./config/%s/osd/opensearch_dashboards.yml", OSDMajorTrack)
	securityConf := fmt.Sprintf("./config/%s/os/config.yml", OSDMajorTrack)
	if cfg.EnableSAML {
		dashboardConf = fmt.Sprintf("./config/%s/osd/opensearch_dashboards_saml.yml", OSDMajorTrack)
		securityConf = fmt.Sprintf("./config/%s/os/config_saml.yml", OSDMajorTrack)
	}
	c.Env.Set("WAZUH_DASHBOARD_CONF", dashboardConf)
	c.Env.Set("SEC_CONFIG_FILE", securityConf)
	c.Env.Set("SEC_CONFIG_PATH", SecurityConfigPath)

	if strings.HasPrefix(string(cfg.Mode), string(config.ModeServerLocal)+"-") {
		return "", errors.Validation("the mode %q cannot be requested directly; use --server-local with --agents-up instead", cfg.Mode)
	}

	var mode string
	switch cfg.Mode {
	case config.ModeServer:
		if cfg.ModeVersion == "" {
			return "", errors.Validation("server mode requires a version; pass it with --server <version>")
		}
		c.Env.Set("WAZUH_STACK", cfg.ModeVersion)
		mode = string(config.ModeServer)
	case config.ModeServerLocal:
		if cfg.ModeVersion == "" {
			return "", errors.Validation("server-local mode requires an image tag; pass it with --server-local <tag>")
		}
		c.Env.Set("IMAGE_TAG", cfg.ModeVersion)
		mode = string(config.ModeServerLocal)
		if cfg.AgentsUp != config.AgentsUnset {
			mode += "-" + string(cfg.AgentsUp)
		}
	case config.ModeSAML:
		mode = string(config.ModeSAML)
	default:
		mode = string(config.ModeStandard)
	}

	if cfg.UseIndexerFromPackage {
		tag := firstNonEmpty(cfg.IndexerTag, c.Env.Get("INDEXER_PACKAGE_TAG"), "latest")
		c.Env.Set("INDEXER_PACKAGE_TAG", tag)
	}

	logging.Debug("mode configured", "mode", mode, "saml", cfg.EnableSAML)
	return mode, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
