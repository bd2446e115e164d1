package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/pkg/pipeline"
)

// browseCommand creates the browse command: an interactive component
// browser that builds the selected cell and shows its ports.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse component factories interactively",
		Long: `Browse the component registry in an interactive list. Selecting a
cell builds it with default parameters and shows its geometry summary
and port table. Builds share the artifact cache with the rest of the
CLI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context())
		},
	}
}

func (c *CLI) runBrowse(ctx context.Context) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Stage logging would interleave with the TUI frames.
	silent := log.NewWithOptions(io.Discard, log.Options{})

	factories := registryFactories(runner.Registry)

	for {
		final, err := runProgram(ctx, newComponentListModel(factories))
		if err != nil {
			return err
		}
		list, ok := final.(componentListModel)
		if !ok || list.selected == "" {
			return nil
		}

		spinner := newSpinner(ctx, fmt.Sprintf("Building %s...", list.selected))
		spinner.Start()
		result, err := runner.Execute(ctx, pipeline.Options{
			Factory: list.selected,
			Formats: []string{pipeline.FormatNetlist},
			Logger:  silent,
		})
		spinner.Stop()
		if spinner.Cancelled() {
			return ctx.Err()
		}
		if err != nil {
			printError("Build %s: %v", list.selected, err)
			continue
		}

		final, err = runProgram(ctx, newCellDetailModel(result))
		if err != nil {
			return err
		}
		detail, ok := final.(cellDetailModel)
		if !ok || !detail.back {
			return nil
		}
	}
}

// runProgram runs a bubbletea model to completion. Context cancellation
// surfaces as the context's error, so SIGINT maps to the usual exit
// path instead of a TUI teardown error.
func runProgram(ctx context.Context, m tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil {
			return final, ctx.Err()
		}
		return final, err
	}
	return final, nil
}
