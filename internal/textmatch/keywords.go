package textmatch

// MaxKeywords caps the number of distinct stems ExtractKeywords returns.
const MaxKeywords = 200

// ExtractKeywords derives a bounded keyword taxonomy from a job description:
// normalize, tokenize, stem, deduplicate in first-seen order, keep the first 200.
// The result is never nil.
func ExtractKeywords(text string) []string {
	tokens := Tokenize(Normalize(text))

	keywords := make([]string, 0, min(len(tokens), MaxKeywords))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		stem := Stem(token)
		if _, dup := seen[stem]; dup {
			continue
		}
		seen[stem] = struct{}{}
		keywords = append(keywords, stem)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}
