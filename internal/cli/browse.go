package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tharindu/classtrack/internal/tui"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			program := tea.NewProgram(tui.New(app.client, app.marks), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}
