package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "delete a journal entry",
		Example: `
journal delete 42
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
			if err := env.journal.Delete(ctx, userID, id); err != nil {
				return oo.HandleError(err)
			}

			entries, err := env.journal.List(ctx, userID)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Entry deleted.")
			pp.Entries(entries...)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
