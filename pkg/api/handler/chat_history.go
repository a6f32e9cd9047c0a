package handler

import (
	"log/slog"
	"net/http"

	"sitesmith/pkg/api/response"
	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

type HistoryProvider interface {
	GetHistory(project string) ([]domain.ChatMessage, error)
	ClearHistory(project string) error
}

type chatHistory struct {
	provider HistoryProvider
	writer   response.JSONResponseWriter
}

func NewChatHistory(provider HistoryProvider) *chatHistory {
	return &chatHistory{provider: provider}
}

func (h *chatHistory) Get(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("projectName")
	if project == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "projectName parameter is missing or empty.")
		return
	}

	messages, err := h.provider.GetHistory(project)
	if err != nil {
		slog.ErrorContext(r.Context(), "Fetching chat history", "project", project, logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	h.writer.WriteSuccessResponse(w, messages)
}

func (h *chatHistory) Delete(w http.ResponseWriter, r *http.Request) {
	project := r.URL.Query().Get("projectName")
	if project == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "projectName parameter is missing or empty.")
		return
	}

	if err := h.provider.ClearHistory(project); err != nil {
		slog.ErrorContext(r.Context(), "Clearing chat history", "project", project, logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	h.writer.WriteSuccessResponse(w, map[string]bool{"success": true})
}
