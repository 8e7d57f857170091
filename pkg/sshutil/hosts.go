package sshutil

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostEntry is one concrete Host alias from an ssh config file.
type HostEntry struct {
	Alias    string
	Hostname string
	User     string
	Port     string
}

// Description is a short human summary for pickers.
func (h HostEntry) Description() string {
	var parts []string
	if h.Hostname != "" && h.Hostname != h.Alias {
		parts = append(parts, h.Hostname)
	}
	if h.User != "" {
		parts = append(parts, "user: "+h.User)
	}
	if h.Port != "" && h.Port != "22" {
		parts = append(parts, "port: "+h.Port)
	}
	if len(parts) == 0 {
		return h.Alias
	}
	return strings.Join(parts, ", ")
}

// ListHosts returns the aliases in ~/.ssh/config.
func ListHosts() ([]HostEntry, error) {
	return ListHostsFile(defaultConfigPath())
}

// ListHostsFile returns the concrete aliases in configPath, sorted, skipping
// wildcard patterns and anything after the first Match block. A missing
// file yields no hosts.
func ListHostsFile(configPath string) ([]HostEntry, error) {
	content, _, err := readConfigUntilMatch(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var hosts []HostEntry
	seen := make(map[string]bool)
	for _, h := range cfg.Hosts {
		for _, pattern := range h.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?") || seen[alias] {
				continue
			}
			seen[alias] = true

			entry := HostEntry{Alias: alias}
			entry.Hostname, _ = cfg.Get(alias, "HostName")
			entry.User, _ = cfg.Get(alias, "User")
			entry.Port, _ = cfg.Get(alias, "Port")
			hosts = append(hosts, entry)
		}
	}

	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Alias < hosts[j].Alias })
	return hosts, nil
}
