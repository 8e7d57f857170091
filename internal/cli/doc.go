// Package cli implements the rfdash command-line interface.
//
// Each Cobra command loads the config, applies its flag overrides, and
// hands off to the packages that do the work:
//
//	rfdash watch      - Live dashboard (internal/dashboard)
//	rfdash channels   - Print the channel summary table from a feed
//	rfdash alerts     - Print the sorted alert list from a feed
//	rfdash version    - Print build information
//	rfdash completion - Generate shell completion scripts
//
// # Sources
//
// The feed comes from the config's source section unless one of the source
// flags overrides it: --address (tcp), --url (websocket), --file,
// --host (ssh) or --stdin.
// At most one may be given. watch also accepts --pick-host to choose an
// alias from ~/.ssh/config interactively.
//
// # Flags
//
// Global flags (--config, --no-color) are defined on the root command and
// available to all subcommands.
package cli
