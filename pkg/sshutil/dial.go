// Package sshutil opens SSH connections the way the ssh command line does:
// host aliases resolve through ~/.ssh/config, keys come from the agent or
// the usual key files, and host keys are checked against known_hosts.
package sshutil

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"github.com/rileyhilliard/rfdash/internal/logger"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Environment overrides, mostly for CI.
const (
	UserEnv = "RFDASH_SSH_USER"
	KeyEnv  = "RFDASH_SSH_KEY"
)

// StrictHostKeyChecking controls known_hosts verification. Turning it off
// accepts any host key.
var StrictHostKeyChecking = true

var log = logger.NewEnvLogger("[ssh]")

var matchWarningOnce sync.Once

// Client is an open SSH connection plus the names used to reach it.
type Client struct {
	*ssh.Client
	Host    string
	Address string
}

// Dial connects to target, which may be an ssh config alias, a hostname,
// user@host, or host:port. The context bounds the TCP connect and the
// handshake.
func Dial(ctx context.Context, target string, timeout time.Duration) (*Client, error) {
	s := resolve(target, defaultConfigPath())
	if s.matchLine > 0 && !s.fromConfig {
		matchWarningOnce.Do(func() {
			log.Warn("host '%s' not found before the Match block at line %d of ~/.ssh/config; entries after it are ignored",
				target, s.matchLine)
		})
	}

	config, err := clientConfig(s, timeout)
	if err != nil {
		var dashErr *errors.Error
		if stderrors.As(err, &dashErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", target),
			"Check your keys are loaded: ssh-add -l")
	}

	address := s.address()
	log.Debug("dialing %s as %s", address, s.user)

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", target, address),
			dialSuggestion(err))
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		var mismatch *HostKeyMismatchError
		if stderrors.As(err, &mismatch) {
			return nil, errors.New(errors.ErrSSH, mismatch.Error(), mismatch.Suggestion())
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", target),
			handshakeSuggestion(err, s.encryptedKeys))
	}
	_ = conn.SetDeadline(time.Time{})

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    target,
		Address: address,
	}, nil
}

// Close closes the connection. It is safe on a zero Client.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

// clientConfig collects auth methods and the host key callback. Encrypted
// key files are recorded on s so errors can say which ones to ssh-add.
func clientConfig(s *settings, timeout time.Duration) (*ssh.ClientConfig, error) {
	var methods []ssh.AuthMethod

	tryKey := func(path string) {
		m, err := keyFileAuth(path)
		if err != nil {
			var enc *EncryptedKeyError
			if stderrors.As(err, &enc) {
				s.encryptedKeys = append(s.encryptedKeys, path)
			}
			return
		}
		methods = append(methods, m)
	}

	if m := agentAuth(); m != nil {
		methods = append(methods, m)
	}
	if k := os.Getenv(KeyEnv); k != "" {
		tryKey(k)
	}
	if s.identityFile != "" {
		tryKey(s.identityFile)
	}
	for _, k := range defaultKeyFiles() {
		if k != s.identityFile {
			tryKey(k)
		}
	}

	if len(methods) == 0 {
		if len(s.encryptedKeys) > 0 {
			return nil, errors.New(errors.ErrSSH,
				"Found SSH key(s) but they're encrypted: "+strings.Join(s.encryptedKeys, ", "),
				addKeysHint(s.encryptedKeys))
		}
		return nil, errors.New(errors.ErrSSH,
			"No SSH auth methods available",
			"Check your keys are loaded: ssh-add -l")
	}

	callback := ssh.InsecureIgnoreHostKey() //nolint:gosec // only when the user turned checking off
	if StrictHostKeyChecking {
		var err error
		callback, err = hostKeyCallback(filepath.Join(homeDir(), ".ssh", "known_hosts"))
		if err != nil {
			return nil, fmt.Errorf("failed to load known_hosts: %w", err)
		}
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ssh.ClientConfig{
		User:            s.user,
		Auth:            methods,
		HostKeyCallback: callback,
		Timeout:         timeout,
	}, nil
}

func defaultKeyFiles() []string {
	dir := filepath.Join(homeDir(), ".ssh")
	return []string{
		filepath.Join(dir, "id_ed25519"),
		filepath.Join(dir, "id_rsa"),
		filepath.Join(dir, "id_ecdsa"),
	}
}

var (
	agentOnce   sync.Once
	agentConn   net.Conn
	agentClient agent.ExtendedAgent
)

// agentAuth uses the running ssh-agent, shared across dials. An agent with
// no keys is skipped so it does not eat an auth attempt.
func agentAuth() ssh.AuthMethod {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil
	}

	agentOnce.Do(func() {
		conn, err := net.Dial("unix", socket)
		if err != nil {
			return
		}
		agentConn = conn
		agentClient = agent.NewClient(conn)
	})
	if agentClient == nil {
		return nil
	}

	if signers, err := agentClient.Signers(); err != nil || len(signers) == 0 {
		return nil
	}
	return ssh.PublicKeysCallback(agentClient.Signers)
}

// CloseAgent releases the shared agent connection.
func CloseAgent() {
	if agentConn != nil {
		agentConn.Close()
	}
}

func keyFileAuth(path string) (ssh.AuthMethod, error) {
	key, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if stderrors.As(err, &missing) || strings.Contains(string(key), "ENCRYPTED") {
			return nil, &EncryptedKeyError{Path: path}
		}
		return nil, err
	}
	return ssh.PublicKeys(signer), nil
}

// EncryptedKeyError is returned when a key file needs a passphrase.
type EncryptedKeyError struct {
	Path string
}

func (e *EncryptedKeyError) Error() string {
	return fmt.Sprintf("SSH key at %s is encrypted (passphrase protected)", e.Path)
}

// HostKeyMismatchError is a known_hosts conflict with the fix spelled out.
type HostKeyMismatchError struct {
	Hostname     string
	ReceivedType string
	KnownHosts   string
	Want         []knownhosts.KnownKey
}

func (e *HostKeyMismatchError) Error() string {
	return fmt.Sprintf("host key mismatch for %s: server sent %s key", e.Hostname, e.ReceivedType)
}

// Suggestion explains how to refresh known_hosts.
func (e *HostKeyMismatchError) Suggestion() string {
	host := e.Hostname
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	known := make([]string, 0, len(e.Want))
	for _, k := range e.Want {
		known = append(known, k.Key.Type())
	}
	if len(known) == 0 {
		known = append(known, "unknown")
	}

	return fmt.Sprintf(
		"The server's host key doesn't match known_hosts (have %s, got %s).\n"+
			"  Refresh it with: ssh-keygen -R %s && ssh-keyscan %s >> %s",
		strings.Join(known, ", "), e.ReceivedType, host, host, e.KnownHosts)
}

// hostKeyCallback checks known_hosts, creating an empty file if needed, and
// turns key mismatches into HostKeyMismatchError.
func hostKeyCallback(path string) (ssh.HostKeyCallback, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, nil, 0600); err != nil {
			return nil, err
		}
	}

	check, err := knownhosts.New(path)
	if err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := check(hostname, remote, key)
		var keyErr *knownhosts.KeyError
		if stderrors.As(err, &keyErr) && len(keyErr.Want) > 0 {
			return &HostKeyMismatchError{
				Hostname:     hostname,
				ReceivedType: key.Type(),
				KnownHosts:   path,
				Want:         keyErr.Want,
			}
		}
		return err
	}, nil
}

func addKeysHint(keys []string) string {
	var b strings.Builder
	b.WriteString("Add your key(s) to the agent:\n")
	for _, k := range keys {
		if runtime.GOOS == "darwin" {
			b.WriteString("  ssh-add --apple-use-keychain " + k + "\n")
		} else {
			b.WriteString("  ssh-add " + k + "\n")
		}
	}
	return b.String()
}

func dialSuggestion(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "Is SSH running on that box? Try: ssh <host>"
	case strings.Contains(msg, "no route to host"), strings.Contains(msg, "network is unreachable"):
		return "Can't route to the host. Check your network connection."
	case strings.Contains(msg, "timeout"):
		return "Connection timed out. Host might be offline or blocked by a firewall."
	default:
		return "Make sure the host is reachable: ping <host>"
	}
}

func handshakeSuggestion(err error, encrypted []string) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "unable to authenticate"), strings.Contains(msg, "no supported methods"):
		if len(encrypted) > 0 {
			return addKeysHint(encrypted)
		}
		return "Auth failed. Check your keys are loaded: ssh-add -l"
	case strings.Contains(msg, "host key"):
		return "Host key issue. Try connecting manually first: ssh <host>"
	default:
		return "Something went wrong during SSH setup. Try: ssh <host>"
	}
}
