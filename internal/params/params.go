// Package params turns a raw command-line invocation into a populated,
// internally consistent Config. The token stream is scanned left to right
// with one token of lookahead for flag arguments; post-scan steps apply
// defaulting and mode precedence.
package params

import (
	"path/filepath"
	"strings"

	"github.com/wazuh/devenv-ctl/internal/config"
	"github.com/wazuh/devenv-ctl/internal/errors"
	"github.com/wazuh/devenv-ctl/internal/logging"
	"github.com/wazuh/devenv-ctl/internal/paths"
	"github.com/wazuh/devenv-ctl/internal/repos"
)

// Result is a successful parse: the populated Config plus the output
// preferences that belong to the CLI shell rather than the resolution.
type Result struct {
	Config  *config.Config
	Verbose bool
	JSON    bool
	DryRun  bool
}

// Parse scans argv and produces a populated Config. It fails with a
// validation error for bad, missing, or conflicting flag values and never
// returns a partially valid Config: on error the result is nil.
//
// defaults may be nil; when present it pre-seeds values the flags did not
// set. A help flag aborts the scan with the help sentinel.
func Parse(argv []string, env config.EnvironmentPaths, defaults *config.Defaults) (*Result, error) {
	p := &parser{
		tokens: argv,
		cfg:    config.New(),
		env:    env,
	}

	if err := p.scan(); err != nil {
		return nil, err
	}
	if err := p.applyDefaults(defaults); err != nil {
		return nil, err
	}
	if err := p.resolveDashboardBase(); err != nil {
		return nil, err
	}
	if err := config.ResolveMode(p.cfg); err != nil {
		return nil, err
	}

	logging.Debug("argument scan finished",
		"action", p.cfg.Action,
		"mode", p.cfg.Mode,
		"repos", len(p.cfg.UserRepositories))

	return &Result{Config: p.cfg, Verbose: p.verbose, JSON: p.json, DryRun: p.dryRun}, nil
}

type parser struct {
	tokens []string
	pos    int

	cfg     *config.Config
	env     config.EnvironmentPaths
	verbose bool
	json    bool
	dryRun  bool
}

// scan consumes the token stream. Recognized flags each consume a fixed
// number of following tokens; exactly one bare action token is permitted.
func (p *parser) scan() error {
	for p.pos < len(p.tokens) {
		token := p.tokens[p.pos]
		p.pos++

		var err error
		switch token {
		case "-h", "--help":
			return errors.HelpRequested()
		case "-v", "--verbose":
			p.verbose = true
		case "--json":
			p.json = true
		case "--dry-run":
			p.dryRun = true
		case "--plugins-root", "--plugins-path", "--plugins":
			err = p.scanPluginsRoot(token)
		case "--os":
			err = p.scanOSVersion(token)
		case "--osd":
			err = p.scanOSDVersion(token)
		case "--agents-up":
			err = p.scanAgentsUp(token)
		case "--saml":
			p.cfg.SetSAML(token)
		case "--server":
			err = p.scanServer(token)
		case "--server-local":
			err = p.scanServerLocal(token)
		case "--repo":
			err = p.scanRepo(token)
		case "--base":
			err = p.scanBase(token)
		case "--indexer-local":
			err = p.scanIndexerLocal(token)
		default:
			err = p.scanBareToken(token)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// requireValue consumes the next token as the flag's value. A missing token
// or one that looks like another flag is a validation error.
func (p *parser) requireValue(flag string) (string, error) {
	if p.pos >= len(p.tokens) || strings.HasPrefix(p.tokens[p.pos], "-") {
		return "", errors.Validation("the %s flag requires a value", flag)
	}
	value := p.tokens[p.pos]
	p.pos++
	return value, nil
}

// optionalValue consumes the next token only if it does not look like
// another flag or a known action token.
func (p *parser) optionalValue() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	token := p.tokens[p.pos]
	if strings.HasPrefix(token, "-") {
		return "", false
	}
	if _, isAction := config.ParseAction(token); isAction {
		return "", false
	}
	p.pos++
	return token, true
}

func (p *parser) scanPluginsRoot(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	p.cfg.SetPluginsRoot(paths.StripTrailingSlash(value), flag)
	return nil
}

func (p *parser) scanOSVersion(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	return p.cfg.SetOSVersion(value, flag)
}

func (p *parser) scanOSDVersion(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	return p.cfg.SetOSDVersion(value, flag)
}

func (p *parser) scanAgentsUp(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	pkg, err := config.ParseAgentsPackage(value)
	if err != nil {
		return err
	}
	p.cfg.SetAgentsUp(pkg, flag)
	return nil
}

func (p *parser) scanServer(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	p.cfg.SetServerVersion(value, flag)
	return nil
}

func (p *parser) scanServerLocal(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}
	p.cfg.SetServerLocalVersion(value, flag)
	return nil
}

// scanRepo handles the two --repo forms: an explicit "name=path" override
// and the "name" shorthand that infers the path from the sibling checkout
// directory plus the alias table.
func (p *parser) scanRepo(flag string) error {
	value, err := p.requireValue(flag)
	if err != nil {
		return err
	}

	if idx := strings.IndexByte(value, '='); idx >= 0 {
		name := value[:idx]
		path := value[idx+1:]
		if name == "" || path == "" {
			return errors.Validation("invalid %s value %q: expected name=path or a repository name", flag, value)
		}
		if insidePluginsSubtree(path) {
			return errors.Validation("the path for repository %q points inside a plugins subtree (%s); mount the repository root instead", name, path)
		}
		p.cfg.AddRepository(name, paths.StripTrailingSlash(path), flag)
		return nil
	}

	// Shorthand: infer the path from the sibling checkout directory.
	if p.env.SiblingRoot == "" {
		return errors.Validation("cannot infer a path for repository %q: %s is not set in the environment; use --repo %s=path instead", value, config.EnvSiblingRoot, value)
	}
	canonical := repos.CanonicalName(value)
	inferred := filepath.Join(paths.StripTrailingSlash(p.env.SiblingRoot), canonical)
	p.cfg.AddRepository(canonical, inferred, flag)
	return nil
}

// insidePluginsSubtree reports whether a path points into a repository's
// plugins subtree rather than at a repository root.
func insidePluginsSubtree(path string) bool {
	clean := paths.StripTrailingSlash(path)
	return strings.Contains(clean, "/plugins/") || strings.HasSuffix(clean, "/plugins")
}

func (p *parser) scanBase(flag string) error {
	p.cfg.SetDashboardFromSource(flag)
	if value, ok := p.optionalValue(); ok {
		return p.cfg.SetDashboardBase(paths.StripTrailingSlash(value), flag)
	}
	// No value: auto-detection happens post-scan.
	return nil
}

func (p *parser) scanIndexerLocal(flag string) error {
	p.cfg.SetIndexerFromPackage(flag)
	if value, ok := p.optionalValue(); ok {
		p.cfg.SetIndexerTag(value, flag)
	}
	return nil
}

// scanBareToken recognizes the positional action token. Any other bare
// token is rejected so typos never get silently misread as paths.
func (p *parser) scanBareToken(token string) error {
	if strings.HasPrefix(token, "-") {
		return errors.Validation("unrecognized flag %q", token)
	}
	action, ok := config.ParseAction(token)
	if !ok {
		return errors.Validation("unrecognized argument %q: expected one of up, down, stop", token)
	}
	return p.cfg.SetAction(action, "argv")
}

// applyDefaults fills the plugins root when no flag set it: first from the
// defaults file, then from the conventional plugins directory under the
// current checkout.
func (p *parser) applyDefaults(defaults *config.Defaults) error {
	if p.cfg.PluginsRoot != "" {
		return nil
	}
	if defaults != nil && defaults.PluginsRoot != "" {
		p.cfg.SetPluginsRoot(paths.StripTrailingSlash(defaults.PluginsRoot), "defaults-file")
		return nil
	}
	if p.env.CurrentRepoRoot != "" {
		p.cfg.SetPluginsRoot(filepath.Join(paths.StripTrailingSlash(p.env.CurrentRepoRoot), "plugins"), "default")
	}
	return nil
}

// resolveDashboardBase runs the post-scan --base handling: derive the base
// from the sibling checkout directory when the flag carried no value, and
// verify whichever base we ended up with maps into the container.
func (p *parser) resolveDashboardBase() error {
	if !p.cfg.UseDashboardFromSource {
		return nil
	}

	if p.cfg.DashboardBase == "" {
		if p.env.SiblingRoot == "" {
			return errors.Validation("--base given without a path and %s is not set in the environment; cannot locate the wazuh-dashboard checkout", config.EnvSiblingRoot)
		}
		derived := filepath.Join(paths.StripTrailingSlash(p.env.SiblingRoot), "wazuh-dashboard")
		if err := p.cfg.SetDashboardBase(derived, "auto-detected"); err != nil {
			return err
		}
	}

	if paths.ToContainerPath(p.cfg.DashboardBase, p.env) == "" {
		return errors.Validation("the dashboard base %s is not reachable from the dev environment container", p.cfg.DashboardBase)
	}
	return nil
}
