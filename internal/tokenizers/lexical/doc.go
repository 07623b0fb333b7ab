// Package lexical provides a deterministic, dictionary-free tokenizer and a
// key phrase extractor for English-like text.
//
// Tokens are maximal runs of letters and digits. Case is folded with
// Unicode simple folding, which does not depend on the process locale.
// Apostrophes inside a word are dropped, so "don't" becomes "dont".
//
// Key phrases are detected with a RAKE-style scorer: stop-words and
// punctuation split each sentence into candidate phrases, each word is
// scored by degree over frequency, and a phrase scores the sum of its words.
package lexical
