package retrieval

import "strings"

// Stop words removed from queries before keyword search. Portuguese is the
// primary deployment language; English covers mixed-language queries.
var stopWords = map[string]map[string]bool{
	"pt": {
		"que": true, "com": true, "para": true, "por": true, "como": true,
		"uma": true, "dos": true, "das": true, "nos": true, "nas": true,
		"ele": true, "ela": true, "seu": true, "sua": true, "meu": true,
		"minha": true, "qual": true, "quais": true, "quando": true,
		"onde": true, "sobre": true, "entre": true, "mais": true,
		"muito": true, "esse": true, "essa": true, "este": true,
		"esta": true, "isso": true, "isto": true, "tem": true,
		"ser": true, "estar": true, "fazer": true, "pode": true,
		"deve": true, "qualquer": true, "também": true, "tambem": true,
		"não": true, "nao": true, "sim": true, "aqui": true, "favor": true,
	},
	"en": {
		"the": true, "and": true, "for": true, "are": true, "but": true,
		"not": true, "you": true, "all": true, "can": true, "had": true,
		"what": true, "when": true, "where": true, "which": true,
		"how": true, "why": true, "who": true, "this": true, "that": true,
		"with": true, "from": true, "about": true, "does": true,
		"is": true, "was": true, "has": true, "have": true, "please": true,
	},
}

const minKeywordLength = 3

// ExtractKeywords lowercases the query, strips punctuation, removes stop
// words for the language, discards tokens shorter than three characters and
// deduplicates, preserving first-seen order.
func ExtractKeywords(query, language string) []string {
	stops, ok := stopWords[language]
	if !ok {
		stops = stopWords["pt"]
	}

	words := strings.Fields(strings.ToLower(query))
	seen := make(map[string]bool, len(words))
	keywords := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.Trim(word, ".,?!;:()[]{}\"'`´~^*")
		if len(word) < minKeywordLength {
			continue
		}
		if stops[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}
