// Package config provides configuration management for ucapp.
//
// Precedence, lowest to highest: built-in defaults, the INI config file,
// environment variables, command-line flags (applied by the cli package).
//
// Config file location:
//   - Windows: %USERPROFILE%\.config\ucapp\config
//   - Unix: ~/.config/ucapp/config
//
// INI format:
//
//	[workspace]
//	host = https://my-workspace.cloud.databricks.com
//	token = <personal-access-token>
//
//	[volume]
//	catalog = example
//	schema = default
//	volume = test-volume
//	file = big.json
//	local_path = big.json
//
//	[viewer]
//	listen_addr = :8000
//
//	[credview]
//	credential_name = my-service-credential
//	region = us-east-1
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/dbxapps/ucapp/internal/constants"
)

// WorkspaceConfig holds the Databricks workspace connection settings.
// When Host and Token are both empty the SDK's default credential chain
// is used instead (metadata service inside an app container, profile
// files on a developer machine).
type WorkspaceConfig struct {
	Host  string `ini:"host"`
	Token string `ini:"token"`
}

// VolumeConfig identifies the Unity Catalog volume object to download
// and where to put it locally.
type VolumeConfig struct {
	Catalog   string `ini:"catalog"`
	Schema    string `ini:"schema"`
	Volume    string `ini:"volume"`
	File      string `ini:"file"`
	LocalPath string `ini:"local_path"`
}

// ViewerConfig holds web UI server settings shared by both viewers.
type ViewerConfig struct {
	ListenAddr string `ini:"listen_addr"`
}

// CredViewConfig holds defaults for the credential-exchange viewer form.
type CredViewConfig struct {
	CredentialName string `ini:"credential_name"`
	Region         string `ini:"region"`
}

// Config is the full application configuration.
type Config struct {
	Workspace WorkspaceConfig
	Volume    VolumeConfig
	Viewer    ViewerConfig
	CredView  CredViewConfig
}

// Default returns a Config populated with built-in defaults.
// The volume coordinates mirror the sample environment the apps ship with
// and are expected to be overridden per deployment.
func Default() *Config {
	return &Config{
		Volume: VolumeConfig{
			Catalog:   "example",
			Schema:    "default",
			Volume:    "test-volume",
			File:      "big.json",
			LocalPath: constants.DefaultLocalPath,
		},
		Viewer: ViewerConfig{
			ListenAddr: constants.DefaultViewerAddr,
		},
		CredView: CredViewConfig{
			Region: constants.DefaultRegion,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ucapp", "config")
	}
	return filepath.Join(home, ".config", "ucapp", "config")
}

// Load reads configuration from path (if it exists) on top of the defaults,
// then applies environment variable overrides. A missing file is not an
// error: apps deployed on the platform configure themselves entirely from
// the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := f.Section("workspace").MapTo(&cfg.Workspace); err != nil {
			return nil, fmt.Errorf("invalid [workspace] section: %w", err)
		}
		if err := f.Section("volume").MapTo(&cfg.Volume); err != nil {
			return nil, fmt.Errorf("invalid [volume] section: %w", err)
		}
		if err := f.Section("viewer").MapTo(&cfg.Viewer); err != nil {
			return nil, fmt.Errorf("invalid [viewer] section: %w", err)
		}
		if err := f.Section("credview").MapTo(&cfg.CredView); err != nil {
			return nil, fmt.Errorf("invalid [credview] section: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
// DATABRICKS_* names match what the platform injects into app containers;
// UCAPP_* names are this application's own knobs.
func (c *Config) applyEnv() {
	setIfPresent(&c.Workspace.Host, "DATABRICKS_HOST")
	setIfPresent(&c.Workspace.Token, "DATABRICKS_TOKEN")
	setIfPresent(&c.CredView.CredentialName, "DATABRICKS_SERVICE_CREDENTIAL_NAME")

	setIfPresent(&c.Volume.Catalog, "UCAPP_VOLUME_CATALOG")
	setIfPresent(&c.Volume.Schema, "UCAPP_VOLUME_SCHEMA")
	setIfPresent(&c.Volume.Volume, "UCAPP_VOLUME_NAME")
	setIfPresent(&c.Volume.File, "UCAPP_VOLUME_FILE")
	setIfPresent(&c.Volume.LocalPath, "UCAPP_LOCAL_PATH")
	setIfPresent(&c.Viewer.ListenAddr, "UCAPP_LISTEN_ADDR")
	setIfPresent(&c.CredView.Region, "UCAPP_REGION")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// ValidateVolume checks that all volume coordinates are set.
func (c *Config) ValidateVolume() error {
	v := c.Volume
	if v.Catalog == "" || v.Schema == "" || v.Volume == "" || v.File == "" {
		return fmt.Errorf("volume configuration is incomplete: catalog=%q schema=%q volume=%q file=%q",
			v.Catalog, v.Schema, v.Volume, v.File)
	}
	if v.LocalPath == "" {
		return fmt.Errorf("local_path must not be empty")
	}
	return nil
}
