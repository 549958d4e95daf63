// Package cli implements the atlaspack command-line interface.
//
// # Commands
//
//   - pack: Pack a job file into an atlas and write a manifest, PDF preview and labels
//   - import: Convert a CSV, Excel or DXF sprite list into a project file
//   - compare: Pack a job under several what-if settings and compare the results
//   - config: Show, back up and restore the application config and presets
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Otherwise the
// level comes from the log_level key of the app config. Loggers are passed
// through context.Context.
package cli

const (
	// appName is the application name used for display and file names.
	appName = "atlaspack"

	// recentProjectsLimit caps the recent project list in the app config.
	recentProjectsLimit = 10
)
