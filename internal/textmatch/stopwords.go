package textmatch

// stopWords is the English stop-word list applied by Tokenize.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"about", "above", "after", "again", "all", "also", "am", "an", "and", "another",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "came", "can", "cannot", "come", "could", "did",
		"do", "does", "doing", "during", "each", "few", "for", "from", "further", "get",
		"got", "has", "had", "he", "have", "her", "here", "him", "himself", "his", "how",
		"if", "in", "into", "is", "it", "its", "itself", "like", "make", "many", "me",
		"might", "more", "most", "much", "must", "my", "myself", "never", "now", "of",
		"on", "only", "or", "other", "our", "ours", "ourselves", "out", "over", "own",
		"said", "same", "see", "should", "since", "so", "some", "still", "such", "take",
		"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
		"these", "they", "this", "those", "through", "to", "too", "under", "until", "up",
		"very", "was", "way", "we", "well", "were", "what", "where", "when", "which",
		"while", "who", "whom", "with", "would", "why", "you", "your", "yours",
		"yourself",
	} {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the lower-case word is a stop word.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
