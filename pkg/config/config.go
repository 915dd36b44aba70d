// Package config loads client configuration: where the catalog service and
// the image host live, and where durable client state is kept.
package config

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the remote endpoints and local paths the client needs.
type Config struct {
	// BaseURL is the catalog service root, e.g. http://localhost:5001.
	BaseURL string
	// AuthPath is the login endpoint under BaseURL.
	AuthPath string
	// UploadURL is the image-hosting upload endpoint.
	UploadURL string
	// UploadPreset is the fixed credential the image host expects.
	UploadPreset string
	// StatePath is the base path for durable client-side state (the saved
	// session).
	StatePath string
}

// Load reads a .shopkeep config file (current directory, or the directory
// named by SHOPKEEP_CONFIG_PATH) with SHOPKEEP_* env overrides.
func Load() (*Config, error) {
	viper.SetDefault("gateway", "http://localhost:5001")
	viper.SetDefault("auth_path", "/auth/login")
	viper.SetDefault("upload_url", "https://api.cloudinary.com/v1_1/dk4wazera/image/upload")
	viper.SetDefault("upload_preset", "d7rtvmdb")
	viper.SetDefault("state_path", "~/.shopkeep.db")
	viper.SetConfigName(".shopkeep") // .yaml is implicit
	viper.SetEnvPrefix("SHOPKEEP")
	viper.AutomaticEnv()

	if override := os.Getenv("SHOPKEEP_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	statePath, err := homedir.Expand(viper.GetString("state_path"))
	if err != nil {
		return nil, err
	}

	return &Config{
		BaseURL:      viper.GetString("gateway"),
		AuthPath:     viper.GetString("auth_path"),
		UploadURL:    viper.GetString("upload_url"),
		UploadPreset: viper.GetString("upload_preset"),
		StatePath:    statePath,
	}, nil
}
