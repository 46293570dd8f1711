// Package file loads the service catalog from a local JSON, YAML or TOML
// file and watches it for changes.
package file
