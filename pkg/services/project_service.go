package services

import (
	"errors"
	"log/slog"

	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

// projectService serves history reads, history deletion and the project
// listing.
type projectService struct {
	historyRepo  HistoryRepository
	artifactRepo ArtifactRepository
}

func NewProjectService(historyRepo HistoryRepository, artifactRepo ArtifactRepository) *projectService {
	return &projectService{
		historyRepo:  historyRepo,
		artifactRepo: artifactRepo,
	}
}

func (p *projectService) GetHistory(project string) ([]domain.ChatMessage, error) {
	messages, err := p.historyRepo.GetMessages(project)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return messages, nil
}

func (p *projectService) ClearHistory(project string) error {
	return p.historyRepo.Clear(project)
}

// ListProjects enumerates stored artifacts, newest first, labeling each with
// its history's first user message.
func (p *projectService) ListProjects() ([]domain.ProjectInfo, error) {
	artifacts, err := p.artifactRepo.List()
	if err != nil {
		return nil, err
	}

	infos := make([]domain.ProjectInfo, 0, len(artifacts))
	for _, a := range artifacts {
		infos = append(infos, domain.ProjectInfo{
			Filename:     a.Filename,
			ProjectName:  a.ProjectName,
			Description:  p.firstUserMessage(a.ProjectName),
			LastModified: a.LastModified,
		})
	}
	return infos, nil
}

func (p *projectService) firstUserMessage(project string) string {
	messages, err := p.historyRepo.GetMessages(project)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptHistory) {
			slog.Warn("Reading history for listing", "project", project, logger.Err(err))
		}
		return ""
	}

	for _, m := range messages {
		if m.Role == domain.ChatMessageRoleUser {
			return m.Content
		}
	}
	return ""
}
