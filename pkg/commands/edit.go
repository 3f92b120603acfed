package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/commands/options"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "edit a journal entry",
		Long:  "Edit a journal entry. Omitted flags keep the current values; the entry date never moves unless --date is given.",
		Example: `
journal edit 42 -t "New title"
journal edit 42 -c "Rewritten." -i extra.jpg
`,
		Args: cobra.ExactArgs(1),
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
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}

			current, err := env.journal.Get(ctx, userID, id)
			if err != nil {
				return oo.HandleError(err)
			}
			draft := journal.Draft{
				Title:     current.Title,
				Content:   current.Content,
				EntryDate: &current.EntryDate,
			}
			if eo.Title != "" {
				draft.Title = eo.Title
			}
			if eo.Content != "" {
				draft.Content = eo.Content
			}
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
			if err := env.journal.Update(ctx, userID, id, draft, files); err != nil {
				return oo.HandleError(err)
			}

			entries, err := env.journal.List(ctx, userID)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Entry updated.")
			pp.Entries(entries...)
			return nil
		},
	}

	options.AddEntryArgs(cmd, eo)
	topLevel.AddCommand(cmd)
}
