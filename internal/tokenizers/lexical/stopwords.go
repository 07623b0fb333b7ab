package lexical

// defaultStopWords returns a set of common English stop words plus the
// fragments that Markdown and URLs leave behind after tokenization.
func defaultStopWords() map[string]struct{} {
	words := []string{
		"the", "be", "to", "of", "and", "a", "in", "that", "have", "i",
		"it", "for", "not", "on", "with", "he", "as", "you", "do", "at",
		"this", "but", "his", "by", "from", "they", "we", "say", "her", "she",
		"or", "an", "will", "my", "one", "all", "would", "there", "their", "what",
		"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
		"when", "make", "can", "like", "time", "no", "just", "him", "know", "take",
		"into", "year", "your", "good", "some", "could", "them", "see", "other",
		"than", "then", "now", "look", "only", "come", "its", "over", "think", "also",
		"back", "after", "use", "two", "how", "our", "work", "first", "well", "way",
		"even", "new", "want", "because", "any", "these", "give", "day", "most", "us",
		"is", "was", "are", "been", "has", "had", "were", "said", "did", "having",
		"may", "am", "should", "too", "very", "does", "each", "more", "such", "those",
		"here", "where", "why", "own", "same", "both", "few", "many", "much", "must",
		"while", "through", "during", "before", "under", "again", "further", "once",
		"between", "being", "off", "nor", "yet", "per", "via",
		"http", "https", "www", "com", "org", "md", "png", "jpg",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
