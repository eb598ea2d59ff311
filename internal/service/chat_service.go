package service

import (
	"context"

	"support-chat-be/internal/dto"
	"support-chat-be/pkg/rag"
)

type IChatService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

// chatService is a thin adapter between the HTTP surface and the
// orchestrator; all answering logic lives in pkg/rag.
type chatService struct {
	orchestrator    *rag.Orchestrator
	defaultLanguage string
}

func NewChatService(orchestrator *rag.Orchestrator, defaultLanguage string) IChatService {
	if defaultLanguage == "" {
		defaultLanguage = "pt"
	}
	return &chatService{
		orchestrator:    orchestrator,
		defaultLanguage: defaultLanguage,
	}
}

func (c *chatService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	language := req.Language
	if language == "" {
		language = c.defaultLanguage
	}

	answer, err := c.orchestrator.Answer(ctx, req.Query, rag.AskOptions{
		Language:        language,
		ForceExtraction: req.ForceExtraction,
		UserId:          req.UserId,
		WidgetId:        req.WidgetId,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AskResponse{
		Answer:   answer,
		Language: language,
	}, nil
}
