// Package version holds the CLI version, overridden at release time via
// -ldflags "-X github.com/bnema/opsman-cli/internal/version.Version=...".
package version

var Version = "dev"
