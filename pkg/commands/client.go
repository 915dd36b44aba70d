package commands

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableflip.dev/shopkeep/pkg/config"
	"tableflip.dev/shopkeep/pkg/gateway"
	"tableflip.dev/shopkeep/pkg/session"
	"tableflip.dev/shopkeep/pkg/uploader"
)

// loadStore opens the durable session store from config.
func loadStore() (*config.Config, *session.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, session.NewStore(cfg.StatePath), nil
}

// loadClient returns a gateway client authenticated with the saved admin
// session. Admin commands refuse to run without one.
func loadClient() (*config.Config, *gateway.Client, error) {
	cfg, store, err := loadStore()
	if err != nil {
		return nil, nil, err
	}
	sess, err := store.Load()
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil, fmt.Errorf("not logged in, run `shopkeep login` first")
	}
	if err != nil {
		return nil, nil, err
	}
	if !sess.Authorized() {
		return nil, nil, fmt.Errorf("saved session for %s lacks admin privileges", sess.Email)
	}
	return cfg, gateway.NewClient(cfg, sess.AccessToken), nil
}

// loadUploader builds the image host client from config.
func loadUploader(cfg *config.Config) *uploader.Client {
	return &uploader.Client{
		Endpoint: cfg.UploadURL,
		Preset:   cfg.UploadPreset,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}
