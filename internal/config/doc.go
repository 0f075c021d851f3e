// Package config handles loading and parsing the fleetdeck configuration file.
//
// # Overview
//
// This package reads fleetdeck's TOML configuration to discover the
// fleet-management backend's endpoint and the session token sources. It is
// read-only and stateless: configuration is loaded once at startup and
// returned as an immutable Config struct.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/fleetdeck/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/fleetdeck/config.toml
//   - API endpoint: 127.0.0.1:8780
//
// # Configuration Fields
//
//   - APIBind: HTTP endpoint (host:port or URL) of the backend
//   - Token: inline bearer token; the FLEETDECK_TOKEN environment variable
//     takes precedence over it
//   - TokenPath: file to read the token from when no inline token is set
//   - DebugLog: when set, gateway debug output is appended to this file
//
// # TOML Format
//
// Example config.toml:
//
//	api_bind = "127.0.0.1:8780"
//	token_path = "~/.fleetdeck/token"
//	debug_log = "~/.fleetdeck/debug.log"
//
// All fields are optional. Tilde expansion is performed automatically on
// the path fields.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults) and TOML parsing errors. A
// missing config file is NOT an error; the console works out of the box
// against a local mock backend without any configuration.
package config
