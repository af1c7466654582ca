// Package logging configures fade's structured logging.
//
// Without --debug, logs go to stderr at the configured level. With --debug, JSON
// logs are also written to ~/.fade/logs/fade.log with size-based rotation. The
// interactive launcher and the MCP server never write logs to the terminal.
package logging
