// Package version exposes build metadata for the calculator binary.
//
// Version, Commit, and BuildTime are injected via Go ldflags at release
// build time and fall back to placeholder values for local builds. Short
// and Full render the version string for the CLI `version` subcommand.
package version
