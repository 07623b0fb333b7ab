// Package tokenizers contains implementations of the driven.Tokenizer and
// driven.PhraseExtractor ports.
package tokenizers
