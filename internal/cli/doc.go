// Package cli defines the Cobra command tree for the productor CLI. Each file
// in this package registers one top-level command (scan, list, get, etc.)
// with the root command. Commands open a registry described in the manifest
// and only handle flag parsing and output formatting.
package cli
