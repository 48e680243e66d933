package config

import (
	"github.com/wazuh/devenv-ctl/internal/errors"
)

// ResolveMode reconciles the mutually exclusive mode flags into one
// canonical profile and version. It is the single place where Mode is
// written: one ordered list of precedence rules, evaluated once after the
// full argv scan.
//
// Rules, first match wins:
//  1. server and server-local both requested: validation error.
//  2. server version set: mode is server, version is the stack version.
//  3. server-local tag set: mode is server-local, version is the image tag.
//  4. SAML enabled: mode is saml.
//  5. otherwise: the default standard profile.
func ResolveMode(c *Config) error {
	if c.ServerVersion != "" && c.ServerLocalVersion != "" {
		return errors.Validation("--server and --server-local cannot be combined; pick one")
	}

	switch {
	case c.ServerVersion != "":
		c.Mode = ModeServer
		c.ModeVersion = c.ServerVersion
	case c.ServerLocalVersion != "":
		c.Mode = ModeServerLocal
		c.ModeVersion = c.ServerLocalVersion
	case c.EnableSAML:
		c.Mode = ModeSAML
	default:
		c.Mode = ModeStandard
	}
	c.record("mode", "mode-resolver")
	return nil
}
