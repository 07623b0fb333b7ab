// Package connectors holds the adapters that read note vaults.
//
// Each subpackage implements the driven.VaultOpener port for one kind of
// vault. The filesystem connector reads a directory of Markdown files.
package connectors
