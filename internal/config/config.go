package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the config file looked up when none is given
const DefaultFile = "blackjack.hcl"

// Config represents the complete configuration. Table rules are fixed and
// deliberately absent.
type Config struct {
	Game   GameSettings   `hcl:"game,block"`
	UI     UISettings     `hcl:"ui,block"`
	Server ServerSettings `hcl:"server,block"`
}

// GameSettings contains settings for the card source
type GameSettings struct {
	Seed int64 `hcl:"seed,optional"`
}

// UISettings contains terminal and logging settings
type UISettings struct {
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
	Theme    string `hcl:"theme,optional"`
}

// ServerSettings contains the websocket server settings
type ServerSettings struct {
	Addr           string   `hcl:"addr,optional"`
	AllowedOrigins []string `hcl:"allowed_origins,optional"`

	// Round results are published to NATS when NatsURL is set
	NatsURL     string `hcl:"nats_url,optional"`
	NatsSubject string `hcl:"nats_subject,optional"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Seed: 0,
		},
		UI: UISettings{
			LogLevel: "info",
			LogFile:  "blackjack.log",
			Theme:    "default",
		},
		Server: ServerSettings{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			NatsSubject:    "blackjack.results",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	// blocks may be omitted entirely, so decode into pointers first
	var raw struct {
		Game   *GameSettings   `hcl:"game,block"`
		UI     *UISettings     `hcl:"ui,block"`
		Server *ServerSettings `hcl:"server,block"`
	}
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Game != nil {
		cfg.Game = *raw.Game
	}
	if raw.UI != nil {
		cfg.UI = *raw.UI
	}
	if raw.Server != nil {
		cfg.Server = *raw.Server
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if c.Server.NatsSubject == "" {
		c.Server.NatsSubject = defaults.Server.NatsSubject
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"plain":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}

	return nil
}
