package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sitesmith/pkg/api/response"
	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

type TurnProcessor interface {
	ProcessTurn(ctx context.Context, req domain.TurnRequest) (domain.CompletionResult, error)
}

type chat struct {
	processor TurnProcessor
	writer    response.JSONResponseWriter
}

func NewChat(processor TurnProcessor) *chat {
	return &chat{processor: processor}
}

func (h *chat) ProcessTurn(w http.ResponseWriter, r *http.Request) {
	var req domain.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	result, err := h.processor.ProcessTurn(r.Context(), req)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			h.writer.WriteErrorResponse(w, http.StatusBadRequest, validationErr.Error())
			return
		}

		slog.ErrorContext(r.Context(), "Processing chat turn", "project", req.ProjectName, logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	h.writer.WriteSuccessResponse(w, result)
}
