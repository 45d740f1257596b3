// Package driving declares what the CLI, TUI, MCP server and directory
// watcher may ask of the core: document ingestion and management, context
// search, and settings. internal/core/services implements all three.
package driving
