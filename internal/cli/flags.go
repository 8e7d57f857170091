package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rfdash/internal/config"
	"github.com/rileyhilliard/rfdash/internal/errors"
)

// SourceFlags override the configured feed source.
type SourceFlags struct {
	Address string
	URL     string
	File    string
	Host    string
	Command string
	Stdin   bool
	Timeout string
}

// AddSourceFlags registers the source selection flags and --timeout on a
// command.
func AddSourceFlags(cmd *cobra.Command, flags *SourceFlags) {
	cmd.Flags().StringVar(&flags.Address, "address", "", "capture server host:port")
	cmd.Flags().StringVar(&flags.URL, "url", "", "capture server websocket URL")
	cmd.Flags().StringVar(&flags.File, "file", "", "replay a recorded feed")
	cmd.Flags().StringVar(&flags.Host, "host", "", "SSH host to run the feed command on")
	cmd.Flags().StringVar(&flags.Command, "command", "", "feed command for --host (e.g., \"nc localhost 2501\")")
	cmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "read the feed from standard input")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "", "connection timeout (e.g., 5s, 1m)")
}

// Apply writes the selected source into cfg. At most one source flag may
// be set; --command and --timeout only refine it.
func (f *SourceFlags) Apply(cfg *config.Config) error {
	var chosen []string
	if f.Address != "" {
		chosen = append(chosen, "--address")
	}
	if f.URL != "" {
		chosen = append(chosen, "--url")
	}
	if f.File != "" {
		chosen = append(chosen, "--file")
	}
	if f.Host != "" {
		chosen = append(chosen, "--host")
	}
	if f.Stdin {
		chosen = append(chosen, "--stdin")
	}
	if len(chosen) > 1 {
		return errors.New(errors.ErrConfig,
			strings.Join(chosen, " and ")+" cannot be used together",
			"Pick one source.")
	}

	src := &cfg.Source
	switch {
	case f.Address != "":
		src.Kind = config.SourceTCP
		src.Address = f.Address
	case f.URL != "":
		src.Kind = config.SourceWS
		src.URL = f.URL
	case f.File != "":
		src.Kind = config.SourceFile
		src.Path = config.ExpandTilde(f.File)
	case f.Host != "":
		src.Kind = config.SourceSSH
		src.Host = f.Host
	case f.Stdin:
		src.Kind = config.SourceStdin
	}

	if f.Command != "" {
		src.Command = f.Command
	}

	timeout, err := ParseDuration("timeout", f.Timeout)
	if err != nil {
		return err
	}
	if timeout > 0 {
		src.Timeout = timeout
	}
	return nil
}

// ParseDuration parses a duration flag. Returns zero if the flag is empty.
func ParseDuration(name, flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid --%s", flag, name),
			"Try something like 5s, 2m, or 500ms.")
	}
	if d < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("--%s can't be negative", name),
			"Try something like 5s, 2m, or 500ms.")
	}
	return d, nil
}
