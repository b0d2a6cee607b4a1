package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cometsanalytics/heatmatrix/pkg/colormap"
	"github.com/cometsanalytics/heatmatrix/pkg/errors"
	"github.com/cometsanalytics/heatmatrix/pkg/pipeline"
)

// previewCommand creates the preview command for exploring a results object
// in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags    layoutFlags
		cmapName string
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Explore a results object in the terminal",
		Long: `Draw the heatmap of a results object in the terminal.

Use the arrow keys to change the sort column, a to toggle annotations and
d to switch to the clustering figure when the results carry one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.pipelineOptions(cmd, &flags)
			if err != nil {
				return err
			}
			name := c.Config.Render.Colormap
			if cmd.Flags().Changed("colormap") {
				name = cmapName
			}
			cmap, ok := colormap.Get(name)
			if !ok {
				return errors.NewValidationError("colormap", "unknown colormap "+name)
			}

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, _, err := runner.Load(ctx, args[0], pipeline.LoadOptions{Sheet: flags.sheet, Refresh: flags.refresh})
			if err != nil {
				return err
			}
			loggerFromContext(ctx).Debug("starting preview", "records", len(res.Effects), "colormap", cmap.Name())

			p := tea.NewProgram(NewPreviewModel(ctx, res, opts, cmap), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&cmapName, "colormap", "", "cell colors: rdbu (default) or viridis")

	return cmd
}
