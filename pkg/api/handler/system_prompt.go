package handler

import (
	"log/slog"
	"net/http"

	"sitesmith/pkg/api/response"
	"sitesmith/pkg/logger"
)

type PromptProvider interface {
	GetUserPrompt() (string, error)
	GetFixedPrompt() (string, error)
}

type systemPrompt struct {
	provider PromptProvider
	writer   response.JSONResponseWriter
}

func NewSystemPrompt(provider PromptProvider) *systemPrompt {
	return &systemPrompt{provider: provider}
}

func (h *systemPrompt) GetUser(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.provider.GetUserPrompt()
	if err != nil {
		slog.ErrorContext(r.Context(), "Fetching user system prompt", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	h.writer.WriteSuccessResponse(w, map[string]string{"userSystemPrompt": prompt})
}

func (h *systemPrompt) GetFixed(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.provider.GetFixedPrompt()
	if err != nil {
		slog.ErrorContext(r.Context(), "Fetching fixed system prompt", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	h.writer.WriteSuccessResponse(w, map[string]string{"fixedSystemPrompt": prompt})
}
