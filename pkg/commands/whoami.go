package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/session"
)

func addWhoami(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "show the logged in account",
		Example: `
journal whoami
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			email, err := session.Identity(env.session)
			if err != nil {
				return fmt.Errorf("not logged in, run `journal login`: %w", err)
			}
			userID, err := env.flow.ResolveUserID(context.Background(), email)
			if err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("%s (user %d)\n", email, userID)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
