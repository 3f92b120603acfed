package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/commands/options"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a journal entry",
		Example: `
journal add -t "Morning pages" -c "Slept well, long walk."
journal add -t Trip -c "Photos attached." -i beach.jpg -i sunset.jpg
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			ctx := context.Background()
			userID, err := env.resolveUser(ctx)
			if err != nil {
				return err
			}

			draft := journal.Draft{Title: eo.Title, Content: eo.Content}
			if eo.Date != "" {
				ts, err := journal.ParseTime(eo.Date)
				if err != nil {
					return err
				}
				t := journal.Timestamp{Time: ts}
				draft.EntryDate = &t
			}
			files, err := journal.LoadFiles(eo.Images)
			if err != nil {
				return err
			}
			if err := env.journal.Create(ctx, userID, draft, files); err != nil {
				return oo.HandleError(err)
			}

			// The list after a mutation always comes from the server.
			entries, err := env.journal.List(ctx, userID)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Entry created.")
			pp.Entries(entries...)
			return nil
		},
	}

	options.AddEntryArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}
