package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
	"github.com/cometsanalytics/heatmatrix/pkg/summary"
)

// inspectCommand creates the inspect command for summarising a results object.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags  layoutFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarise a results object",
		Long:  `Print record counts, category counts and the distribution of effect and significance values of a results object.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, _, err := runner.Load(cmd.Context(), args[0], pipeline.LoadOptions{Sheet: flags.sheet, Refresh: flags.refresh})
			if err != nil {
				return err
			}
			s := summary.Of(res, opts.Heatmap)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(res.Title(), s, opts.Heatmap.ZKey, opts.Heatmap.PKey)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(title string, s summary.Summary, zKey, pKey string) {
	if title != "" {
		fmt.Println(StyleTitle.Render(title))
	}
	printKeyValue("Records", strconv.Itoa(s.Records))
	printKeyValue("After filter", strconv.Itoa(s.Filtered))
	printKeyValue("Grid", fmt.Sprintf("%d × %d", s.YCategories, s.XCategories))
	dendrogram := "no"
	if s.Dendrogram {
		dendrogram = "yes"
	}
	printKeyValue("Dendrogram", dendrogram)
	fmt.Println()
	fmt.Println(distributionTable([]string{zKey, pKey}, []summary.Distribution{s.Effect, s.Significance}))
}

func distributionTable(names []string, dists []summary.Distribution) string {
	rows := make([][]string, len(dists))
	for i, d := range dists {
		rows[i] = []string{
			names[i],
			strconv.Itoa(d.Count),
			formatFloat(d.Min),
			formatFloat(d.Median),
			formatFloat(d.Max),
			formatFloat(d.Mean),
			formatFloat(d.StdDev),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Count", "Min", "Median", "Max", "Mean", "StdDev").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleValue
			default:
				return StyleNumber
			}
		}).
		Render()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
