// Package errors defines the error taxonomy for devenv-ctl.
//
// Two kinds matter during configuration resolution:
//   - Validation: the invocation itself is bad, missing, or conflicting.
//     The user fixes it by correcting their flags.
//   - Configuration: required ambient environment or host state is absent.
//     The user fixes it by correcting their setup, not their invocation.
//
// Both carry fully formatted messages and an exit code. The CLI prints the
// message and exits with the code; no stack traces, no partial recovery.
package errors
