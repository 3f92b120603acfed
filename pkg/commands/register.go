package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/commands/options"
	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addRegister(topLevel *cobra.Command) {
	co := &options.CredentialOptions{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "create an account",
		Long:  "Create an account. Registration does not log in; run `journal login` after.",
		Example: `
journal register -e me@example.com -p secret
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			creds := auth.Credentials{Email: co.Email, Password: co.Password}
			if err := env.flow.Register(context.Background(), creds); err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Registration successful! Please log in.")
			return nil
		},
	}

	options.AddCredentialArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
