// Package cli implements the classtrack console commands. Commands share one
// App holding the state store, the session gate, and the API client; cobra
// sees plain RunE functions.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tharindu/classtrack/internal/apiclient"
	"github.com/tharindu/classtrack/internal/bookmark"
	"github.com/tharindu/classtrack/internal/kvstore"
	"github.com/tharindu/classtrack/internal/session"
)

// App wires the console's dependencies. Opened lazily so commands like
// `classtrack --help` never touch the state file.
type App struct {
	apiBase   string
	statePath string

	store  *kvstore.SQLite
	sess   *session.Session
	client *apiclient.Client
	marks  *bookmark.Set
}

// NewApp reads console configuration from the environment:
//
//	CLASSTRACK_API_BASE — API base URL (default http://localhost:8080)
//	CLASSTRACK_STATE    — state database path (default ~/.classtrack/state.db)
func NewApp() *App {
	apiBase := os.Getenv("CLASSTRACK_API_BASE")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	statePath := os.Getenv("CLASSTRACK_STATE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		statePath = filepath.Join(home, ".classtrack", "state.db")
	}

	return &App{apiBase: apiBase, statePath: statePath}
}

// open initialises the store, session, client, and bookmark set.
func (a *App) open() error {
	if a.store != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(a.statePath), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	store, err := kvstore.OpenSQLite(a.statePath)
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}

	a.store = store
	a.sess = session.New(store, a.apiBase, nil)
	a.client = apiclient.New(a.apiBase, nil, a.sess)
	a.marks = bookmark.Load(store)
	return nil
}

// Close releases the state database.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// requireLogin opens the app and fails fast when no credentials are held.
// The gate is synchronous — it checks the stored token, not the network.
func (a *App) requireLogin() error {
	if err := a.open(); err != nil {
		return err
	}
	if !a.sess.Authenticated() {
		return fmt.Errorf("not logged in — run `classtrack login` first")
	}
	return nil
}

// Root assembles the command tree.
func Root() *cobra.Command {
	app := NewApp()

	root := &cobra.Command{
		Use:           "classtrack",
		Short:         "Administer tuition classes from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	root.PersistentFlags().StringVar(&app.apiBase, "api", app.apiBase, "API base URL")

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newClassesCmd(app),
		newBookmarkCmd(app),
		newBrowseCmd(app),
	)

	return root
}

// Execute runs the console and returns the process exit code.
func Execute() int {
	if err := Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
