// Package normalisers turns raw note files into analysable text plus the
// metadata the vault needs to index them.
package normalisers
