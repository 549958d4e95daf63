package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/atlaspack/internal/importer"
	"github.com/piwi3910/atlaspack/internal/model"
	"github.com/piwi3910/atlaspack/internal/project"
)

func newImportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Convert a CSV, Excel or DXF sprite list into a project",
		Long: `Read sprites from a CSV (.csv, .tsv, .txt), Excel (.xlsx) or DXF (.dxf) file
and write them as a project file. New projects start from the default
settings in the app config.`,
		Example: `  atlaspack import sprites.csv
  atlaspack import shapes.dxf -o shapes.atlas.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "project path (default: <name>"+project.ProjectExt+")")
	return cmd
}

func runImport(cmd *cobra.Command, path, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	e := envFromContext(ctx)
	out := cmd.OutOrStdout()

	res, err := importFile(path)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	for _, msg := range res.Errors {
		logger.Error(msg)
	}
	if len(res.Sprites) == 0 {
		return fmt.Errorf("no sprites imported from %s", path)
	}

	ext := filepath.Ext(path)
	name := strings.TrimSuffix(filepath.Base(path), ext)
	if output == "" {
		output = filepath.Join(filepath.Dir(path), name+project.ProjectExt)
	}

	p := model.NewProject()
	p.Name = name
	p.Sprites = res.Sprites
	e.config.ApplyToSettings(&p.Settings)

	if err := project.SaveProject(output, p); err != nil {
		return err
	}
	if err := e.rememberProject(output); err != nil {
		logger.Warn("Could not update recent projects", "error", err)
	}

	printSuccess(out, "Imported %d sprites from %s", len(res.Sprites), filepath.Base(path))
	if n := len(res.Errors); n > 0 {
		printWarning(out, "%d rows skipped", n)
	}
	printFile(out, output)
	return nil
}

func importFile(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return importer.ImportCSV(path), nil
	case ".xlsx", ".xlsm":
		return importer.ImportExcel(path), nil
	case ".dxf":
		return importer.ImportDXF(path), nil
	default:
		return importer.ImportResult{}, fmt.Errorf("%s: unsupported import format", path)
	}
}
