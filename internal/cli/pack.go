package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/engine"
	"github.com/piwi3910/atlaspack/internal/export"
	"github.com/piwi3910/atlaspack/internal/model"
	"github.com/piwi3910/atlaspack/internal/project"
)

const (
	formatManifest = "manifest"
	formatPDF      = "pdf"
	formatLabels   = "labels"
)

// packOpts holds the command-line options for the pack command.
type packOpts struct {
	output   string
	formats  []string
	save     string
	settings settingsFlags
}

func newPackCmd() *cobra.Command {
	opts := packOpts{formats: []string{formatManifest}}

	cmd := &cobra.Command{
		Use:   "pack <job>",
		Short: "Pack a job file into an atlas",
		Long: `Pack the sprites of a TOML job or JSON project into one atlas.

Outputs are written next to the --output base name:
  manifest  <base>.json         frame positions for the runtime
  pdf       <base>.pdf          layout preview and summary
  labels    <base>-labels.pdf   QR-coded label sheet`,
		Example: `  atlaspack pack ui.toml
  atlaspack pack ui.toml -o build/ui --format manifest,pdf
  atlaspack pack ui.toml --preset mobile --grow`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: job name next to the job file)")
	cmd.Flags().StringSliceVarP(&opts.formats, "format", "f", opts.formats, "outputs to write: manifest, pdf, labels")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the project with its result to this path")
	opts.settings.register(cmd)

	return cmd
}

func runPack(cmd *cobra.Command, jobPath string, opts *packOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	e := envFromContext(ctx)
	out := cmd.OutOrStdout()

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}

	job, err := project.LoadJob(jobPath)
	if err != nil {
		return err
	}
	if err := opts.settings.apply(cmd, e, &job.Settings); err != nil {
		return err
	}
	logger.Info("Packing", "job", job.Name, "sprites", len(job.Sprites))

	result, err := packProject(ctx, job)
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = filepath.Join(filepath.Dir(jobPath), job.Name)
	}
	written, err := writeOutputs(base, formats, result, job.Settings)
	if err != nil {
		return err
	}

	if opts.save != "" {
		job.Result = &result
		if err := project.SaveProject(opts.save, job); err != nil {
			return err
		}
		if err := e.rememberProject(opts.save); err != nil {
			logger.Warn("Could not update recent projects", "error", err)
		}
		written = append(written, opts.save)
	}

	printPackSummary(out, job.Name, result)
	for _, path := range written {
		printFile(out, path)
	}
	return nil
}

// packProject optimizes the project's sprites and checks the resulting layout.
func packProject(ctx context.Context, p model.Project) (model.PackResult, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	opt := engine.New(p.Settings)
	opt.Logger = logger
	result, err := opt.Optimize(p.Sprites)
	if err != nil {
		return model.PackResult{}, err
	}
	if err := result.Validate(); err != nil {
		return model.PackResult{}, fmt.Errorf("invalid layout: %w", err)
	}

	prog.done(fmt.Sprintf("Packed %d sprites into %dx%d", len(result.Placements), result.AtlasWidth, result.AtlasHeight))
	return result, nil
}

func parseFormats(raw []string) ([]string, error) {
	seen := map[string]bool{}
	var formats []string
	for _, f := range raw {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case formatManifest, formatPDF, formatLabels:
		default:
			return nil, fmt.Errorf("unknown format %q (want manifest, pdf or labels)", f)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// writeOutputs writes each requested format and returns the written paths.
func writeOutputs(base string, formats []string, result model.PackResult, settings model.AtlasSettings) ([]string, error) {
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return nil, err
	}
	var written []string
	for _, f := range formats {
		var (
			path string
			err  error
		)
		switch f {
		case formatManifest:
			path = base + ".json"
			err = export.ExportManifest(path, result, settings)
		case formatPDF:
			path = base + ".pdf"
			err = export.ExportPDF(path, result, settings)
		case formatLabels:
			path = base + "-labels.pdf"
			err = export.ExportLabels(path, result)
		}
		if err != nil {
			return written, fmt.Errorf("write %s: %w", f, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func printPackSummary(w io.Writer, name string, result model.PackResult) {
	printSuccess(w, "Packed %s", StyleTitle.Render(name))
	printKeyValue(w, "Atlas", fmt.Sprintf("%d x %d", result.AtlasWidth, result.AtlasHeight))
	printKeyValue(w, "Container", fmt.Sprintf("%d x %d", result.Width, result.Height))
	printKeyValue(w, "Sprites", fmt.Sprintf("%d", len(result.Placements)))
	printKeyValue(w, "Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()))

	regions := model.DetectSpareRegions(result)
	if len(regions) == 0 {
		return
	}
	printInfo(w, "%d spare regions, %d px² free", len(regions), model.TotalSpareArea(regions))
	for _, r := range regions {
		printDetail(w, "%dx%d at (%d, %d)", r.Width, r.Height, r.X, r.Y)
	}
}
