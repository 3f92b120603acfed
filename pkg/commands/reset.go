package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/printers"
)

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "reset a forgotten password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addResetRequest(cmd)
	addResetComplete(cmd)

	topLevel.AddCommand(cmd)
}

func addResetRequest(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "request <email>",
		Short: "request a reset token for an account",
		Example: `
journal reset request me@example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			msg, err := env.flow.RequestReset(context.Background(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message(msg)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

func addResetComplete(topLevel *cobra.Command) {
	var token, password string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "set a new password with a reset token",
		Example: `
journal reset complete --token abc123 --password newsecret
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			msg, err := env.flow.CompleteReset(context.Background(), token, password)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := printers.PrettyPrint{}
			pp.Message(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email.")
	cmd.Flags().StringVarP(&password, "password", "p", "", "New password.")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("password")

	topLevel.AddCommand(cmd)
}
