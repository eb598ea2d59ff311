package dto

type AskRequest struct {
	Query           string `json:"query" validate:"required"`
	Language        string `json:"language" validate:"omitempty,oneof=pt en"`
	ForceExtraction bool   `json:"force_extraction"`
	UserId          string `json:"user_id"`
	WidgetId        string `json:"widget_id"`
}

type AskResponse struct {
	Answer   string `json:"answer"`
	Language string `json:"language"`
}
