// Package version carries build metadata, set with -ldflags.
package version

// Version is the application version reported by /healthz and the CLI.
var Version = "1.0.0"

// Commit is the source revision, when known.
var Commit = ""
