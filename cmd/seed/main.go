package main

import (
	"log"
	"os"
	"time"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/mapper"
	"support-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a small demo corpus: one instruction document and one technical
// manual. Chunking and embedding still run through the ingestion pipeline, so
// seeded documents stay pending until the server processes them.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo corpus...")

	docs := []entity.Document{
		{
			Id:       uuid.New(),
			Name:     "Instruções de Atendimento",
			Type:     entity.DocumentTypeInstruction,
			Status:   entity.DocumentStatusPending,
			Language: "pt",
			Content: `REGRAS DE ATENDIMENTO:
1. Sempre responda em tom cordial e objetivo.
2. Cite o documento de origem ao mencionar valores técnicos.
3. Nunca invente especificações que não estejam nos manuais.`,
			CreatedAt: time.Now(),
		},
		{
			Id:       uuid.New(),
			Name:     "Manual Técnico - Módulo de Alimentação",
			Type:     entity.DocumentTypeManual,
			Status:   entity.DocumentStatusPending,
			Language: "pt",
			Content: `CAPÍTULO 1: TENSÕES DE REFERÊNCIA

O ponto de teste VS1 (~2.05 V) fica localizado próximo ao regulador U12.
O ponto de teste VS2 (~3.30 V) alimenta o barramento lógico principal.

CAPÍTULO 2: PROCEDIMENTO DE MEDIÇÃO

Com o multímetro em escala de 20 V DC, meça VS1 contra o terra do chassi.
Valores abaixo de 1.8 V indicam falha no regulador.`,
			CreatedAt: time.Now(),
		},
	}

	docMapper := mapper.NewDocumentMapper()
	for i := range docs {
		m := docMapper.ToModel(&docs[i])
		if err := db.Create(m).Error; err != nil {
			color.Red("Error: failed to seed document %q: %v", docs[i].Name, err)
			os.Exit(1)
		}
		color.Green("Seeded: %s", docs[i].Name)
	}

	color.Green("Seed completed. Start the server to process the corpus.")
}
