// Package config holds the settings shared by the catalogrank commands.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with CATALOGRANK_. Command-line flags are
// applied last by the commands themselves.
package config
