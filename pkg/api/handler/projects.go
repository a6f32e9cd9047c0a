package handler

import (
	"log/slog"
	"net/http"

	"sitesmith/pkg/api/response"
	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

type ProjectLister interface {
	ListProjects() ([]domain.ProjectInfo, error)
}

type projects struct {
	lister ProjectLister
	writer response.JSONResponseWriter
}

func NewProjects(lister ProjectLister) *projects {
	return &projects{lister: lister}
}

func (h *projects) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.lister.ListProjects()
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing projects", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "A server error occurred.")
		return
	}

	if infos == nil {
		infos = []domain.ProjectInfo{}
	}
	h.writer.WriteSuccessResponse(w, infos)
}
