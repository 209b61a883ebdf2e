// Package config loads process-logger's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/process-logger/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// Command-line flags are applied on top of the loaded Config by the caller.
//
// # Default Values
//
//   - Source: process (poll the process table)
//   - Poll interval: 500ms
//   - Log file: ~/.local/state/process-logger/process-logger.log
//   - Log level: info
//   - Shutdown timeout: 3s
//
// # TOML Format
//
//	source = "process"          # process | dir | lines
//	poll_interval = "500ms"     # process table polling cadence
//	watch_dir = "~/Downloads"   # dir source: report files created here
//	lines_path = "/tmp/events"  # lines source: file or FIFO, one name per line
//	log_file = "~/.local/state/process-logger/process-logger.log"
//	log_level = "info"          # debug | info | warn | error
//	shutdown_timeout = "3s"     # how long to wait for the producer on exit
//
// Paths beginning with ~ are expanded to the user's home directory and made
// absolute. An unknown source name or a malformed duration is a parse error.
package config
