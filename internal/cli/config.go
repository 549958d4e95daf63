package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/model"
	"github.com/piwi3910/atlaspack/internal/project"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect, back up and restore the app config and presets",
	}
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigExportCmd())
	cmd.AddCommand(newConfigImportCmd())
	cmd.AddCommand(newConfigPresetsCmd())
	cmd.AddCommand(newConfigAddPresetCmd())
	cmd.AddCommand(newConfigExportPresetCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active app config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			out := cmd.OutOrStdout()
			c := e.config

			fmt.Fprintln(out, StyleTitle.Render("Config"))
			printKeyValue(out, "Path", e.configPath)
			printKeyValue(out, "Size", fmt.Sprintf("%d x %d", c.DefaultWidth, c.DefaultHeight))
			printKeyValue(out, "Padding", fmt.Sprintf("%d px", c.DefaultPadding))
			printKeyValue(out, "Rotation", yesNo(c.DefaultAllowRotation))
			printKeyValue(out, "Power of two", yesNo(c.DefaultPowerOfTwo))
			printKeyValue(out, "Auto grow", fmt.Sprintf("%s (max %d)", yesNo(c.DefaultAutoGrow), c.DefaultMaxSize))
			printKeyValue(out, "Log level", c.LogLevel)
			if len(c.RecentProjects) > 0 {
				printInfo(out, "Recent projects")
				for _, p := range c.RecentProjects {
					printFile(out, p)
				}
			}
			return nil
		},
	}
}

func newConfigExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the config and custom presets to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			presets, err := project.LoadCustomPresets(e.presetsPath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], e.config, presets); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported config and %d presets", len(presets))
			printFile(cmd.OutOrStdout(), args[0])
			return nil
		},
	}
}

func newConfigImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Restore the config and custom presets from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e := envFromContext(ctx)

			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(e.configPath, backup.Config); err != nil {
				return err
			}
			if err := project.SaveCustomPresets(e.presetsPath(), backup.Presets); err != nil {
				return err
			}
			e.config = backup.Config
			loggerFromContext(ctx).Debug("restored backup", "version", backup.Version, "created", backup.CreatedAt)
			printSuccess(cmd.OutOrStdout(), "Restored config and %d presets", len(backup.Presets))
			return nil
		},
	}
}

func newConfigPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in and custom settings presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			custom, err := project.LoadCustomPresets(e.presetsPath())
			if err != nil {
				return err
			}

			t := newTable("Name", "Size", "Padding", "Rotate", "POT", "Grow", "Description")
			for _, p := range append(model.BuiltInPresets(), custom...) {
				s := p.Settings
				name := p.Name
				if !p.IsBuiltIn {
					name += " *"
				}
				t.Row(name,
					fmt.Sprintf("%dx%d", s.Width, s.Height),
					fmt.Sprintf("%d", s.Padding),
					yesNo(s.AllowRotation),
					yesNo(s.PowerOfTwo),
					yesNo(s.AutoGrow),
					p.Description,
				)
			}
			printTable(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newConfigAddPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-preset <file>",
		Short: "Add or replace a custom preset from an exported preset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			preset, err := project.ImportPreset(args[0])
			if err != nil {
				return err
			}
			custom, err := project.LoadCustomPresets(e.presetsPath())
			if err != nil {
				return err
			}

			replaced := false
			for i := range custom {
				if strings.EqualFold(custom[i].Name, preset.Name) {
					custom[i] = preset
					replaced = true
				}
			}
			if !replaced {
				custom = append(custom, preset)
			}
			if err := project.SaveCustomPresets(e.presetsPath(), custom); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved preset %s", StyleTitle.Render(preset.Name))
			return nil
		},
	}
}

func newConfigExportPresetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-preset <name> <file>",
		Short: "Write a built-in or custom preset to a file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFromContext(cmd.Context())
			custom, err := project.LoadCustomPresets(e.presetsPath())
			if err != nil {
				return err
			}
			preset, ok := model.FindPreset(args[0], custom)
			if !ok {
				return fmt.Errorf("unknown preset %q", args[0])
			}
			if err := project.ExportPreset(args[1], preset); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported preset %s", StyleTitle.Render(preset.Name))
			printFile(cmd.OutOrStdout(), args[1])
			return nil
		},
	}
}
