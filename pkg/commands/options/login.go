package options

import (
	"github.com/spf13/cobra"
)

// LoginOptions
type LoginOptions struct {
	Email    string
	Password string
}

func AddLoginArgs(cmd *cobra.Command, o *LoginOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "", "Account email.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "", "Account password.")
}
