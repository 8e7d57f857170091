package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source kinds.
const (
	SourceTCP   = "tcp"
	SourceFile  = "file"
	SourceSSH   = "ssh"
	SourceStdin = "stdin"
	SourceWS    = "ws"
)

// Refresh and history bounds.
const (
	MinRefresh = 100 * time.Millisecond
	MinHistory = 2
	MaxHistory = 4096
)

// Config represents the complete .rfdash.yaml configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Refresh time.Duration `yaml:"refresh" mapstructure:"refresh"`
	History int           `yaml:"history" mapstructure:"history"`
	Prefs   string        `yaml:"prefs" mapstructure:"prefs"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// SourceConfig says where the protocol feed comes from.
type SourceConfig struct {
	// Kind is one of tcp, ws, file, ssh or stdin.
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Address is host:port of the capture server (kind=tcp).
	Address string `yaml:"address" mapstructure:"address"`

	// URL is the websocket endpoint of the server (kind=ws). http and
	// https URLs are dialed as ws and wss.
	URL string `yaml:"url" mapstructure:"url"`

	// Path is a recorded feed to replay (kind=file).
	Path string `yaml:"path" mapstructure:"path"`

	// Host is an SSH config alias or user@host (kind=ssh).
	Host string `yaml:"host" mapstructure:"host"`

	// Command runs on the SSH host and must write protocol lines to stdout.
	Command string `yaml:"command" mapstructure:"command"`

	// Enable lists the record types requested from a tcp or ws server.
	Enable []string `yaml:"enable" mapstructure:"enable"`

	// Timeout bounds connection setup for tcp, ws and ssh.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: SourceConfig{
			Kind:    SourceTCP,
			Address: "localhost:2501",
			Enable:  []string{"CHANNEL", "NETWORK", "CLIENT", "ALERT"},
			Timeout: 5 * time.Second,
		},
		Refresh: time.Second,
		History: 120,
		Prefs:   "~/.config/rfdash/prefs.yaml",
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
