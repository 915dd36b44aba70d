// Package login provides the runner logic for operator sign-in and sign-out.
package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/session"
)

// Login authenticates against the catalog service and saves the session.
type Login struct {
	Email    string
	Password string

	Client   *gateway.Client
	Sessions *session.Store
}

func (n *Login) Do(ctx context.Context) error {
	if n.Client == nil || n.Sessions == nil {
		return errors.New("can not login, no client")
	}
	if n.Email == "" || n.Password == "" {
		return errors.New("email and password are required")
	}

	sess, err := n.Client.Login(ctx, gateway.Credentials{
		Email:    n.Email,
		Password: n.Password,
	})
	if err != nil {
		return err
	}
	if err := n.Sessions.Save(sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	g := color.New(color.FgGreen)
	_, _ = g.Printf("Logged in as %s\n", sess.Email)
	return nil
}

// Logout clears the stored session.
type Logout struct {
	Sessions *session.Store
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("can not logout, no session store")
	}
	if err := n.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}
