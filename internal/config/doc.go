// Package config provides configuration structures and utilities for fundboard.
// It defines the listing defaults (dataset, sort key, direction, funded
// visibility), web server settings, and report output preferences, and
// resolves them from the YAML config file, FUNDBOARD_* environment
// variables and command-line flags, in that order of increasing priority.
package config
