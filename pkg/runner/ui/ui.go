package ui

import (
	"context"
	"errors"

	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/staging"
	"tableflip.dev/shopkeep/pkg/tui/app"
)

// UI launches the interactive catalog browser.
type UI struct {
	Gateway  gateway.Gateway
	Uploader staging.Uploader
}

func (n *UI) Do(ctx context.Context) error {
	if n.Gateway == nil {
		return errors.New("can not start ui, no gateway")
	}
	return app.Run(n.Gateway, n.Uploader)
}
