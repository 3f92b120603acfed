package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "get all entries, or one by id",
		Example: `
journal get
journal get 42
`,
		Args: cobra.MaximumNArgs(1),
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
			pp := printers.PrettyPrint{}

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return err
				}
				e, err := env.journal.Get(ctx, userID, id)
				if err != nil {
					return oo.HandleError(err)
				}
				pp.Entry(e)
				images, err := env.journal.Images(ctx, userID, id)
				if err != nil {
					return oo.HandleError(err)
				}
				pp.Images(images...)
				return nil
			}

			entries, err := env.journal.List(ctx, userID)
			if err != nil {
				return oo.HandleError(err)
			}
			pp.Title("Journal")
			pp.Entries(entries...)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
