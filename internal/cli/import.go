package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/io"
	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
)

// importCommand creates the import command for converting effect tables.
func (c *CLI) importCommand() *cobra.Command {
	var (
		output  string
		sheet   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert an effect table into a results object",
		Long: `Convert an XLSX workbook or CSV effect table into a results object.

The output format follows the extension of --output: .json writes the
results JSON, .xlsx writes a workbook with one Effects sheet.`,
		Example: `  heatmatrix import effects.xlsx
  heatmatrix import effects.csv -o results.json
  heatmatrix import results.json -o effects.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
			}
			if output == args[0] {
				return errors.NewValidationError("output", "must differ from the input file")
			}
			return c.runImport(cmd.Context(), args[0], output, pipeline.LoadOptions{Sheet: sheet}, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .xlsx)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "workbook sheet to read (default "+io.DefaultSheet+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, output string, opts pipeline.LoadOptions, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, cached, err := runner.Load(ctx, input, opts)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".json":
		err = io.ExportResults(res, output)
	case ".xlsx":
		err = io.ExportXLSX(res, output)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported output %q (must be .json or .xlsx)", filepath.Base(output))
	}
	if err != nil {
		return err
	}

	printSuccess("Imported %d effect records", len(res.Effects))
	if cached {
		printDetail("served from cache")
	}
	printFile(output)
	printNextStep("Render it", "heatmatrix render "+output)
	return nil
}
