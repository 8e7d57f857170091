package sshutil

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// settings holds the resolved connection parameters for one host.
type settings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string
	// matchLine is the line of the first Match block in ~/.ssh/config, or 0.
	matchLine int
	// fromConfig is true when ~/.ssh/config had an entry for the host.
	fromConfig bool
}

func (s *settings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

// splitTarget breaks "user@host:port" into its parts. Missing parts come
// back empty.
func splitTarget(target string) (user, host, port string) {
	if at := strings.Index(target, "@"); at != -1 {
		user = target[:at]
		target = target[at+1:]
	}
	host = target
	if colon := strings.LastIndex(target, ":"); colon != -1 && isDigits(target[colon+1:]) {
		host, port = target[:colon], target[colon+1:]
	}
	return user, host, port
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// resolve fills connection settings for target from its own syntax first,
// then from the ssh config file at configPath. Explicit user and port in
// target win over the config file.
func resolve(target, configPath string) *settings {
	user, host, port := splitTarget(target)

	s := &settings{hostname: host, port: "22", user: currentUser()}
	if u := os.Getenv(UserEnv); u != "" {
		s.user = u
	}

	content, matchLine, err := readConfigUntilMatch(configPath)
	if err == nil {
		s.matchLine = matchLine
		if cfg, err := ssh_config.Decode(bytes.NewReader(content)); err == nil {
			s.applyConfig(cfg, host)
		}
	}

	if user != "" {
		s.user = user
	}
	if port != "" {
		s.port = port
	}
	return s
}

func (s *settings) applyConfig(cfg *ssh_config.Config, alias string) {
	if v, _ := cfg.Get(alias, "HostName"); v != "" {
		s.hostname = v
		s.fromConfig = true
	}
	if v, _ := cfg.Get(alias, "Port"); v != "" {
		s.port = v
		s.fromConfig = true
	}
	if v, _ := cfg.Get(alias, "User"); v != "" {
		s.user = v
		s.fromConfig = true
	}
	if v, _ := cfg.Get(alias, "IdentityFile"); v != "" {
		s.identityFile = expandPath(v)
		s.fromConfig = true
	}
}

// readConfigUntilMatch returns the config file up to its first Match
// directive, which ssh_config cannot parse, and that directive's line.
func readConfigUntilMatch(path string) ([]byte, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			return []byte(strings.Join(lines[:i], "\n")), i + 1, nil
		}
	}
	return content, 0, nil
}

func defaultConfigPath() string {
	return filepath.Join(homeDir(), ".ssh", "config")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
