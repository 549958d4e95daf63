package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/engine"
	"github.com/piwi3910/atlaspack/internal/project"
)

func newCompareCmd() *cobra.Command {
	var settings settingsFlags

	cmd := &cobra.Command{
		Use:   "compare <job>",
		Short: "Compare packing results under alternative settings",
		Long: `Pack a job several times with variations of its settings (rotation,
padding, exact sizing, auto grow) and print the results side by side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			e := envFromContext(ctx)

			job, err := project.LoadJob(args[0])
			if err != nil {
				return err
			}
			if err := settings.apply(cmd, e, &job.Settings); err != nil {
				return err
			}

			prog := newProgress(logger)
			results := engine.CompareScenarios(engine.BuildDefaultScenarios(job.Settings), job.Sprites)
			prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

			t := newTable("Scenario", "Atlas", "Sprites", "Efficiency", "Waste")
			for _, r := range results {
				if !r.Fits() {
					logger.Debug("scenario failed", "scenario", r.Scenario.Name, "error", r.Err)
					t.Row(r.Scenario.Name, "does not fit", "-", "-", "-")
					continue
				}
				t.Row(
					r.Scenario.Name,
					fmt.Sprintf("%dx%d", r.AtlasWidth, r.AtlasHeight),
					fmt.Sprintf("%d", len(r.Result.Placements)),
					fmt.Sprintf("%.1f%%", r.Result.Efficiency()),
					fmt.Sprintf("%.1f%%", r.WastePercent),
				)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(job.Name))
			printTable(out, t)
			return nil
		},
	}

	settings.register(cmd)
	return cmd
}
