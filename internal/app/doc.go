// Package app provides the orchestration layer for the fleetdeck console.
//
// # Overview
//
// This package wires together configuration, the session token, the API
// gateway and the UI to create the complete console. It serves as the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/fleetdeck/config.toml
//  2. Load user preferences (theme, page size)
//  3. Resolve the session token (environment, inline config, token file)
//  4. Build the API gateway with the notification center as its error sink
//  5. Start the TUI and block until the user exits or the context cancels
//
// The gateway, client, navigation state and notification center are created
// here exactly once and handed to the UI; nothing else in the process
// constructs them.
package app
