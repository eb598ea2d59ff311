package rag

import "strings"

// PromptBuilder assembles the system prompt handed to the generation
// provider. The document context block always comes from the assembler; the
// builder adds role, guidelines and optional external-knowledge material.
type PromptBuilder struct {
	context   string
	language  string
	forceful  bool
	webResult string
}

func NewPromptBuilder(context, language string) *PromptBuilder {
	return &PromptBuilder{
		context:  context,
		language: language,
	}
}

// Forceful switches to the extraction-oriented re-prompt used after a
// negative-phrase hit.
func (b *PromptBuilder) Forceful() *PromptBuilder {
	b.forceful = true
	return b
}

// WithWebResult splices an external-knowledge summary into the prompt for the
// combined second generation pass.
func (b *PromptBuilder) WithWebResult(content string) *PromptBuilder {
	b.webResult = content
	return b
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writeRole(&prompt)
	b.writeContext(&prompt)
	b.writeWebResult(&prompt)
	b.writeGuidelines(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writeRole(prompt *strings.Builder) {
	if b.language == "en" {
		prompt.WriteString("You are a technical support assistant. Answer strictly from the reference documents below.\n\n")
		return
	}
	prompt.WriteString("Você é um assistente de suporte técnico. Responda estritamente com base nos documentos de referência abaixo.\n\n")
}

func (b *PromptBuilder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("<documentos>\n")
	prompt.WriteString(b.context)
	prompt.WriteString("\n</documentos>\n\n")
}

func (b *PromptBuilder) writeWebResult(prompt *strings.Builder) {
	if b.webResult == "" {
		return
	}
	prompt.WriteString("<conhecimento_externo>\n")
	prompt.WriteString(b.webResult)
	prompt.WriteString("\n</conhecimento_externo>\n\n")
}

func (b *PromptBuilder) writeGuidelines(prompt *strings.Builder) {
	if b.forceful {
		b.writeForcefulGuidelines(prompt)
		return
	}

	if b.language == "en" {
		prompt.WriteString("Guidelines:\n")
		prompt.WriteString("- Prioritize any instructions section over technical documents.\n")
		prompt.WriteString("- Quote exact values, part numbers and measurements as they appear.\n")
		prompt.WriteString("- If the documents do not cover the question, say so briefly.\n")
		prompt.WriteString("- Answer in English.\n")
		return
	}
	prompt.WriteString("Diretrizes:\n")
	prompt.WriteString("- Priorize a seção de instruções sobre os documentos técnicos.\n")
	prompt.WriteString("- Cite valores exatos, códigos de peça e medições como aparecem nos documentos.\n")
	prompt.WriteString("- Se os documentos não cobrirem a pergunta, diga isso brevemente.\n")
	prompt.WriteString("- Responda em português.\n")
}

func (b *PromptBuilder) writeForcefulGuidelines(prompt *strings.Builder) {
	if b.language == "en" {
		prompt.WriteString("The documents above DO contain information related to the question. ")
		prompt.WriteString("Re-read them carefully, extract every relevant passage — including partial matches, ")
		prompt.WriteString("tables and measurements — and build the best possible answer from them. ")
		prompt.WriteString("Do not say the information is missing.\n")
		return
	}
	prompt.WriteString("Os documentos acima CONTÊM informações relacionadas à pergunta. ")
	prompt.WriteString("Releia-os com atenção, extraia todos os trechos relevantes — incluindo correspondências parciais, ")
	prompt.WriteString("tabelas e medições — e construa a melhor resposta possível a partir deles. ")
	prompt.WriteString("Não diga que a informação está ausente.\n")
}

// reducedSystemPrompt is the generic prompt used for the cross-provider
// retry. Smaller on purpose: the alternate family runs a lighter model.
func reducedSystemPrompt(context, language string) string {
	var prompt strings.Builder
	if language == "en" {
		prompt.WriteString("You are a support assistant. Use the reference material below to answer the user.\n\n")
	} else {
		prompt.WriteString("Você é um assistente de suporte. Use o material de referência abaixo para responder ao usuário.\n\n")
	}
	prompt.WriteString(context)
	return prompt.String()
}
