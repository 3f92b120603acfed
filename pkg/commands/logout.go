package commands

import (
	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "discard the persisted session token",
		Example: `
journal logout
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			if err := env.session.Clear(); err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message("Logged out.")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
