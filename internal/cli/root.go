package cli

import (
	"context"
	"fmt"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/project"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version.
// It is called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the atlaspack CLI and returns an error if any command fails.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// defaultConfigPath is a variable so tests never touch the real home directory.
var defaultConfigPath = project.DefaultConfigPath

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           appName,
		Short:         "atlaspack packs sprites into texture atlases",
		Long:          `atlaspack packs rectangular sprites into a single atlas using a best-area-fit maximal rectangles packer, and exports manifests, PDF previews and label sheets for the result.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config %s: %w", configPath, err)
			}

			level := parseLevel(cfg.LogLevel)
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			logger.Debug("loaded config", "path", configPath)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withEnv(ctx, &env{configPath: configPath, config: cfg})
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "app config file (default ~/.atlaspack/config.json)")

	root.AddCommand(newPackCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newCompareCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// presetsPath keeps custom presets next to the active config file.
func (e *env) presetsPath() string {
	return filepath.Join(filepath.Dir(e.configPath), "presets.json")
}

// rememberProject records path in the recent project list and saves the config.
func (e *env) rememberProject(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	e.config.AddRecentProject(abs, recentProjectsLimit)
	return project.SaveAppConfig(e.configPath, e.config)
}
