package service

import (
	"testing"

	"support-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDocumentType(t *testing.T) {
	tests := []struct {
		name     string
		rawType  string
		docName  string
		expected entity.DocumentType
	}{
		{"explicit type wins", "manual", "Instruções de Atendimento", entity.DocumentTypeManual},
		{"explicit type normalized", "INSTRUCTION", "whatever", entity.DocumentTypeInstruction},
		{"instruction by name", "", "Instruções de Atendimento", entity.DocumentTypeInstruction},
		{"rules by name", "", "Regras do suporte", entity.DocumentTypeInstruction},
		{"priority by name", "", "Avisos PRIORITÁRIOS", entity.DocumentTypeInstruction},
		{"plain name defaults to text", "", "Manual Técnico", entity.DocumentTypeText},
		{"empty everything", "", "", entity.DocumentTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyDocumentType(tt.rawType, tt.docName))
		})
	}
}

func TestLanguageOrDefault(t *testing.T) {
	assert.Equal(t, "pt", languageOrDefault(""))
	assert.Equal(t, "en", languageOrDefault("en"))
}
