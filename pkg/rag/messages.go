package rag

import "strings"

// Terminal user-facing strings. The orchestrator never surfaces raw provider
// errors; every failure path resolves to one of these per language.
var (
	noCorpusMessages = map[string]string{
		"pt": "Ainda não há documentos de referência cadastrados. Por favor, adicione documentos à base de conhecimento antes de fazer perguntas.",
		"en": "There are no reference documents available yet. Please add documents to the knowledge base before asking questions.",
	}

	noMatchMessages = map[string]string{
		"pt": "Não encontrei documentos relevantes para a sua pergunta. Tente reformular usando outros termos.",
		"en": "I couldn't find relevant documents for your question. Please try rephrasing it with different terms.",
	}

	apologyMessages = map[string]string{
		"pt": "Desculpe, não consegui gerar uma resposta no momento. Por favor, tente novamente em instantes.",
		"en": "Sorry, I was unable to generate an answer right now. Please try again in a moment.",
	}
)

// negativePhrases flag answers where the model declared the context
// insufficient. A hit triggers the forceful re-prompt / external lookup pass.
var negativePhrases = map[string][]string{
	"pt": {
		"não encontrei",
		"não contém",
		"não há informações",
		"não possui informações",
		"não foi possível encontrar",
		"não tenho acesso",
		"não está presente",
	},
	"en": {
		"couldn't find",
		"could not find",
		"does not contain",
		"doesn't contain",
		"no information",
		"not mentioned",
		"i don't have access",
	},
}

func messageFor(table map[string]string, language string) string {
	if msg, ok := table[language]; ok {
		return msg
	}
	return table["pt"]
}

// NoCorpusMessage is returned when zero completed documents exist.
func NoCorpusMessage(language string) string {
	return messageFor(noCorpusMessages, language)
}

// NoMatchMessage is returned when even the exhaustive fallback finds nothing.
func NoMatchMessage(language string) string {
	return messageFor(noMatchMessages, language)
}

// ApologyMessage is returned when the provider chain is exhausted.
func ApologyMessage(language string) string {
	return messageFor(apologyMessages, language)
}

// HasNegativePhrase reports whether the answer contains a known
// "no-information" phrase for the language. Both language lists are scanned
// because models occasionally answer in the other language.
func HasNegativePhrase(answer, language string) bool {
	lowered := strings.ToLower(answer)

	phrases := negativePhrases[language]
	if other, ok := negativePhrases[otherLanguage(language)]; ok {
		phrases = append(phrases, other...)
	}

	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}

func otherLanguage(language string) string {
	if language == "pt" {
		return "en"
	}
	return "pt"
}
