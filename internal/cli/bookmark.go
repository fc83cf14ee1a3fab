package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBookmarkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage bookmarked classes",
	}
	cmd.AddCommand(newBookmarkToggleCmd(app), newBookmarkListCmd(app))
	return cmd
}

func newBookmarkToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Bookmark a class, or remove an existing bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}

			added, err := app.marks.Toggle(args[0])
			if err != nil {
				return err
			}
			if added {
				fmt.Printf("Bookmarked %s.\n", args[0])
			} else {
				fmt.Printf("Removed bookmark %s.\n", args[0])
			}
			return nil
		},
	}
}

func newBookmarkListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarked class IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.open(); err != nil {
				return err
			}

			ids := app.marks.IDs()
			if len(ids) == 0 {
				fmt.Println("No bookmarks.")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}
