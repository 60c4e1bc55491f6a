// Package manifest parses and validates productor.yaml, the file that
// describes which registries the CLI can open: their contract, roots,
// file pattern, loader, default implementation and key ordering. Files are
// validated against the JSON Schema embedded from schema/.
package manifest
