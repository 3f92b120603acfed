package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/commands/options"
	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addLogin(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "log in and persist the session token",
		Example: `
journal login -e me@example.com -p secret
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			creds := auth.Credentials{Email: co.Email, Password: co.Password}
			if err := env.flow.Login(context.Background(), creds); err != nil {
				if errors.Is(err, auth.ErrNotRegistered) {
					pp := printers.PrettyPrint{}
					pp.Hint("You are not registered. Run `journal register` first.")
				}
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Logged in as " + co.Email + ".")
			return nil
		},
	}

	options.AddCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
