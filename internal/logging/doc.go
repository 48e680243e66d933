// Package logging provides logging utilities for devenv-ctl.
//
// This package provides two categories of output:
//   - Debug logging: structured logs for debugging (via slog)
//   - User output: formatted messages for end users
//
// Debug logs are controlled by verbosity settings:
//
//	logging.Debug("resolved repository", "name", name, "path", path)
//
// User-facing messages carry status indicators:
//
//	logging.UserInfo("Starting the %s profile...", profile)
//	logging.UserWarning("Port %s is already in use", port)
//
// UserInfo and UserSuccess write to stdout; UserWarning and UserError
// write to stderr.
package logging
