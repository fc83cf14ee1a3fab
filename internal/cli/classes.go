package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tharindu/classtrack/internal/catalog"
)

func newClassesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Manage the class catalog",
	}
	cmd.AddCommand(
		newClassesListCmd(app),
		newClassesAddCmd(app),
		newClassesEditCmd(app),
		newClassesDeleteCmd(app),
	)
	return cmd
}

func newClassesListCmd(app *App) *cobra.Command {
	var (
		text    string
		subject string
		grade   string
		status  string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classes, filtered and sorted locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			classes, err := app.client.ListClasses(cmd.Context())
			if err != nil {
				return err
			}

			q := catalog.DefaultQuery()
			q.Text = text
			q.Subject = subject
			q.Grade = grade
			q.Status = status
			q.Sort = sortKey

			visible := catalog.View(classes, q)
			if len(visible) == 0 {
				fmt.Println("No classes match.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tMARK\tTITLE\tSUBJECT\tGRADE\tTEACHER\tFEE\tSTATUS\tSTART")
			for _, c := range visible {
				mark := ""
				if app.marks.Has(c.ID) {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f %s\t%s\t%s\n",
					c.ID, mark, c.Title, c.Subject, c.Grade, c.Teacher,
					c.Fee, c.Currency, c.Status, c.StartDate)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&text, "search", "", "free-text filter")
	cmd.Flags().StringVar(&subject, "subject", "All", "subject filter")
	cmd.Flags().StringVar(&grade, "grade", "All", "grade filter")
	cmd.Flags().StringVar(&status, "status", "Active", `status filter ("Active", "Inactive" or "All")`)
	cmd.Flags().StringVar(&sortKey, "sort", catalog.SortStartDateDesc, "sort key")
	return cmd
}

// draftFlags binds one flag per draft field. The flag values stay raw
// strings: validation wants what the user typed, not a coerced number.
func draftFlags(cmd *cobra.Command, d *catalog.Draft) {
	cmd.Flags().StringVar(&d.Title, "title", d.Title, "class title")
	cmd.Flags().StringVar(&d.Subject, "subject", d.Subject, "subject")
	cmd.Flags().StringVar(&d.Grade, "grade", d.Grade, "grade")
	cmd.Flags().StringVar(&d.Teacher, "teacher", d.Teacher, "teacher name")
	cmd.Flags().StringVar(&d.Schedule, "schedule", d.Schedule, "schedule, e.g. \"Mon 3-5 PM\"")
	cmd.Flags().StringVar(&d.Room, "room", d.Room, "room")
	cmd.Flags().StringVar(&d.Capacity, "capacity", d.Capacity, "capacity (whole number)")
	cmd.Flags().StringVar(&d.Fee, "fee", d.Fee, "fee, up to 2 decimals")
	cmd.Flags().StringVar(&d.Currency, "currency", d.Currency, "3-letter currency code")
	cmd.Flags().StringVar(&d.Status, "status", d.Status, `"Active" or "Inactive"`)
	cmd.Flags().StringVar(&d.StartDate, "start", d.StartDate, "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&d.EndDate, "end", d.EndDate, "end date (YYYY-MM-DD)")
}

// checkDraft runs the field validator and prints every error in form order.
// Returns false when the draft must not be sent.
func checkDraft(d catalog.Draft) bool {
	errs := catalog.Validate(d)
	if len(errs) == 0 {
		return true
	}
	fmt.Fprintln(os.Stderr, "The class was not saved:")
	for _, field := range catalog.FieldOrder {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(os.Stderr, "  %-10s %s\n", field, msg)
		}
	}
	return false
}

func newClassesAddCmd(app *App) *cobra.Command {
	draft := catalog.EmptyDraft()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a class",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if !checkDraft(draft) {
				return fmt.Errorf("validation failed")
			}

			created, err := app.client.CreateClass(cmd.Context(), catalog.Normalize(draft))
			if err != nil {
				return err
			}
			fmt.Printf("Created %q (%s).\n", created.Title, created.ID)
			return nil
		},
	}

	draftFlags(cmd, &draft)
	return cmd
}

func newClassesEditCmd(app *App) *cobra.Command {
	var override catalog.Draft

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a class (unset flags keep their current value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}

			current, err := app.client.GetClass(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Start from the stored record; apply only the flags the user set.
			draft := catalog.DraftOf(*current)
			applyChanged(cmd, &draft, override)

			if !checkDraft(draft) {
				return fmt.Errorf("validation failed")
			}

			updated, err := app.client.UpdateClass(cmd.Context(), args[0], catalog.Normalize(draft))
			if err != nil {
				return err
			}
			fmt.Printf("Updated %q (%s).\n", updated.Title, updated.ID)
			return nil
		},
	}

	draftFlags(cmd, &override)
	return cmd
}

// applyChanged copies into dst the override fields whose flags were
// explicitly set on the command line.
func applyChanged(cmd *cobra.Command, dst *catalog.Draft, override catalog.Draft) {
	set := map[string]*string{
		"title":    &dst.Title,
		"subject":  &dst.Subject,
		"grade":    &dst.Grade,
		"teacher":  &dst.Teacher,
		"schedule": &dst.Schedule,
		"room":     &dst.Room,
		"capacity": &dst.Capacity,
		"fee":      &dst.Fee,
		"currency": &dst.Currency,
		"status":   &dst.Status,
		"start":    &dst.StartDate,
		"end":      &dst.EndDate,
	}
	from := map[string]string{
		"title":    override.Title,
		"subject":  override.Subject,
		"grade":    override.Grade,
		"teacher":  override.Teacher,
		"schedule": override.Schedule,
		"room":     override.Room,
		"capacity": override.Capacity,
		"fee":      override.Fee,
		"currency": override.Currency,
		"status":   override.Status,
		"start":    override.StartDate,
		"end":      override.EndDate,
	}
	for name, target := range set {
		if cmd.Flags().Changed(name) {
			*target = from[name]
		}
	}
}

func newClassesDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if err := app.client.DeleteClass(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s.\n", args[0])
			return nil
		},
	}
}
