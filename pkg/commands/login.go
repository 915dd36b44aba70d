package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/shopkeep/pkg/commands/options"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	lo := &options.LoginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the catalog service",
		Example: `
shopkeep login -e admin@example.com
`,
		Args: func(_ *cobra.Command, args []string) error {
			if lo.Email == "" && len(args) > 0 {
				lo.Email = args[0]
			}
			if lo.Email == "" {
				return errors.New("requires an email")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if lo.Password == "" {
				pw, err := promptPassword()
				if err != nil {
					return err
				}
				lo.Password = pw
			}

			cfg, store, err := loadStore()
			if err != nil {
				return err
			}
			s := login.Login{
				Email:    lo.Email,
				Password: lo.Password,
				Client:   gateway.NewClient(cfg, ""),
				Sessions: store,
			}
			return s.Do(context.Background())
		},
	}

	options.AddLoginArgs(cmd, lo)
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			s := login.Logout{Sessions: store}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	pw := strings.TrimSpace(string(b))
	if pw == "" {
		return "", errors.New("requires a password")
	}
	return pw, nil
}
