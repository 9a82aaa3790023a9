// Package config provides configuration for the livecube chain.
// Values are resolved in order: built-in defaults, an optional YAML file,
// then environment variables. A keys.env dotenv file in the working
// directory is loaded into the environment first if present, so APS
// credentials can live next to the binary during development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredentials is returned when cloud mode is requested without
// the required APS settings.
var ErrMissingCredentials = errors.New("missing APS credentials")

// Environment variable names, matching the APS tooling conventions.
const (
	EnvClientID     = "APS_CLIENT_ID"
	EnvClientSecret = "APS_CLIENT_SECRET"
	EnvActivityID   = "FUSION_ACTIVITY_ID"
	EnvBase         = "APS_BASE"
)

// Defaults for listen addresses and downstream URLs. The ports match the
// Fusion add-in (18080) and the intermediary server (8000).
const (
	DefaultAPSBase      = "https://developer.api.autodesk.com"
	DefaultHostListen   = "127.0.0.1:18080"
	DefaultBridgeListen = "127.0.0.1:8000"
	DefaultHostURL      = "http://127.0.0.1:18080"
	DefaultBridgeURL    = "http://127.0.0.1:8000"

	dotenvFile = "keys.env"
)

// APS holds credentials and identifiers for the Autodesk Platform
// Services collaborator. ActivityID references a pre-registered Design
// Automation activity; this system never creates activities.
type APS struct {
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	ActivityID   string `yaml:"activity_id,omitempty"`
	Base         string `yaml:"base,omitempty"`
}

// Host configures the in-process command endpoint.
type Host struct {
	Listen string `yaml:"listen,omitempty"`
}

// Bridge configures the intermediary server.
type Bridge struct {
	Listen  string `yaml:"listen,omitempty"`
	HostURL string `yaml:"host_url,omitempty"`
}

// MCP configures the protocol-tool server.
type MCP struct {
	BridgeURL string `yaml:"bridge_url,omitempty"`
}

// Config contains configuration for all livecube components.
type Config struct {
	APS    APS    `yaml:"aps,omitempty"`
	Host   Host   `yaml:"host,omitempty"`
	Bridge Bridge `yaml:"bridge,omitempty"`
	MCP    MCP    `yaml:"mcp,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APS:    APS{Base: DefaultAPSBase},
		Host:   Host{Listen: DefaultHostListen},
		Bridge: Bridge{Listen: DefaultBridgeListen, HostURL: DefaultHostURL},
		MCP:    MCP{BridgeURL: DefaultBridgeURL},
	}
}

// Load resolves configuration from defaults, the YAML file at path (if it
// exists; an empty path skips the file layer), and the environment.
func Load(path string) (Config, error) {
	// Credentials may live in keys.env rather than the real environment.
	// A missing file is fine; a malformed one is not.
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// optional file
		case err != nil:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. Environment
// wins over the file so deployments can override without editing YAML.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvClientID); v != "" {
		c.APS.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		c.APS.ClientSecret = v
	}
	if v := os.Getenv(EnvActivityID); v != "" {
		c.APS.ActivityID = v
	}
	if v := os.Getenv(EnvBase); v != "" {
		c.APS.Base = v
	}
}

// ValidateCloud reports whether the APS settings required for cloud mode
// are present, naming every missing value.
func (a APS) ValidateCloud() error {
	var missing []string
	if a.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if a.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if a.ActivityID == "" {
		missing = append(missing, EnvActivityID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s not set", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}
