package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"future version", func(c *Config) { c.Version = 99 }, "from the future"},
		{"refresh too fast", func(c *Config) { c.Refresh = 50 * time.Millisecond }, "too fast"},
		{"refresh at minimum", func(c *Config) { c.Refresh = MinRefresh }, ""},
		{"history too small", func(c *Config) { c.History = 1 }, "out of range"},
		{"history too large", func(c *Config) { c.History = 5000 }, "out of range"},
		{"history at bounds", func(c *Config) { c.History = MaxHistory }, ""},
		{"unknown kind", func(c *Config) { c.Source.Kind = "udp" }, "source.kind 'udp'"},
		{"kind typo", func(c *Config) { c.Source.Kind = "fiel" }, "did you mean 'file'?"},
		{"tcp without address", func(c *Config) { c.Source.Address = "" }, "source.address"},
		{"tcp unknown record", func(c *Config) { c.Source.Enable = []string{"GPS"} }, "unknown record type"},
		{"tcp record typo", func(c *Config) { c.Source.Enable = []string{"CHANEL"} }, "did you mean 'CHANNEL'?"},
		{"tcp lowercase record", func(c *Config) { c.Source.Enable = []string{"channel"} }, ""},
		{"file without path", func(c *Config) { c.Source.Kind = SourceFile }, "source.path"},
		{"file with path", func(c *Config) {
			c.Source.Kind = SourceFile
			c.Source.Path = "/tmp/feed.log"
		}, ""},
		{"ssh without host", func(c *Config) {
			c.Source.Kind = SourceSSH
			c.Source.Command = "cat"
		}, "source.host"},
		{"ssh without command", func(c *Config) {
			c.Source.Kind = SourceSSH
			c.Source.Host = "pi"
		}, "source.command"},
		{"ws without url", func(c *Config) { c.Source.Kind = SourceWS }, "source.url"},
		{"ws with url", func(c *Config) {
			c.Source.Kind = SourceWS
			c.Source.URL = "ws://sensor:2501/eventbus"
		}, ""},
		{"ws with unknown record", func(c *Config) {
			c.Source.Kind = SourceWS
			c.Source.URL = "ws://sensor:2501/eventbus"
			c.Source.Enable = []string{"BSSID"}
		}, "unknown record type 'BSSID'"},
		{"stdin needs nothing", func(c *Config) { c.Source = SourceConfig{Kind: SourceStdin} }, ""},
		{"negative timeout", func(c *Config) { c.Source.Timeout = -time.Second }, "negative"},
		{"bad color", func(c *Config) { c.Output.Color = "rainbow" }, "output.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			}
		})
	}
}
