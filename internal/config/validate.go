package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/util"
)

// knownRecords are the record types a tcp source may request.
var knownRecords = map[string]bool{
	"CHANNEL": true,
	"NETWORK": true,
	"CLIENT":  true,
	"ALERT":   true,
}

var (
	recordNames = []string{"CHANNEL", "NETWORK", "CLIENT", "ALERT"}
	sourceKinds = []string{SourceTCP, SourceWS, SourceFile, SourceSSH, SourceStdin}
)

// didYouMean formats the closest candidate as a hint, or "" when none is close.
func didYouMean(input string, candidates []string) string {
	similar := util.SuggestSimilar(input, candidates, 3)
	if len(similar) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean '%s'?)", similar[0])
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but rfdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade rfdash")
	}

	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .rfdash.yaml.")
	}

	if cfg.Refresh < MinRefresh {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh %s is too fast", cfg.Refresh),
			fmt.Sprintf("Use at least %s.", MinRefresh))
	}

	if cfg.History < MinHistory || cfg.History > MaxHistory {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("history %d is out of range", cfg.History),
			fmt.Sprintf("Pick a value between %d and %d.", MinHistory, MaxHistory))
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .rfdash.yaml.")
	}

	return nil
}

// validateSource checks that the fields the source kind needs are present.
func validateSource(src SourceConfig) error {
	switch src.Kind {
	case SourceTCP:
		if src.Address == "" {
			return fmt.Errorf("source.address is required for kind 'tcp'")
		}
		if err := validateEnable(src.Enable); err != nil {
			return err
		}
	case SourceWS:
		if src.URL == "" {
			return fmt.Errorf("source.url is required for kind 'ws'")
		}
		if err := validateEnable(src.Enable); err != nil {
			return err
		}
	case SourceFile:
		if src.Path == "" {
			return fmt.Errorf("source.path is required for kind 'file'")
		}
	case SourceSSH:
		if src.Host == "" {
			return fmt.Errorf("source.host is required for kind 'ssh'")
		}
		if src.Command == "" {
			return fmt.Errorf("source.command is required for kind 'ssh'")
		}
	case SourceStdin:
	default:
		return fmt.Errorf("source.kind '%s' isn't valid - use 'tcp', 'ws', 'file', 'ssh', or 'stdin'%s", src.Kind, didYouMean(src.Kind, sourceKinds))
	}

	if src.Timeout < 0 {
		return fmt.Errorf("source.timeout can't be negative")
	}
	return nil
}

// validateEnable checks the requested record types.
func validateEnable(records []string) error {
	for _, rec := range records {
		if !knownRecords[strings.ToUpper(rec)] {
			return fmt.Errorf("source.enable has unknown record type '%s'%s", rec, didYouMean(rec, recordNames))
		}
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}
