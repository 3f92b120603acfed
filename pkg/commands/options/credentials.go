// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// CredentialOptions captures the email/password pair used by auth commands.
type CredentialOptions struct {
	Email    string
	Password string
}

// AddCredentialArgs wires credential flags on the provided command.
func AddCredentialArgs(cmd *cobra.Command, o *CredentialOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Account email address.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Account password.")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
}
