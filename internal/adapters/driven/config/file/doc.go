// Package file provides the file-based configuration store.
//
// Settings live in ~/.tierdeck/config.toml. TIERDECK_* environment
// variables override individual keys for the current process and are
// never written back to the file.
package file
