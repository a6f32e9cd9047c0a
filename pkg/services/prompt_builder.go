package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

const (
	latestContextLabel  = "Latest HTML context:\n"
	initialContextLabel = "Initial HTML template:\n"
)

type HistoryRepository interface {
	GetMessages(project string) ([]domain.ChatMessage, error)
	SaveMessages(project string, messages []domain.ChatMessage) error
	Clear(project string) error
	Path(project string) string
}

type ArtifactRepository interface {
	Get(project string) (string, bool, error)
	Save(project, content string) error
	Path(project string) string
	List() ([]domain.ArtifactInfo, error)
}

type PromptRepository interface {
	GetUserPrompt() (string, error)
	SaveUserPrompt(prompt string) error
	GetFixedPrompt() (string, error)
	GetTemplate() (string, bool, error)
}

// promptBuilder assembles the outbound message list for one turn.
type promptBuilder struct {
	historyRepo  HistoryRepository
	artifactRepo ArtifactRepository
	promptRepo   PromptRepository
}

func NewPromptBuilder(
	historyRepo HistoryRepository,
	artifactRepo ArtifactRepository,
	promptRepo PromptRepository,
) *promptBuilder {
	return &promptBuilder{
		historyRepo:  historyRepo,
		artifactRepo: artifactRepo,
		promptRepo:   promptRepo,
	}
}

// Build returns the project's updated history and the transient outbound
// message list. The history is not written here; the orchestrator persists it
// together with the assistant reply. The synthetic context message appears
// only in the outbound list, never in history.
func (p *promptBuilder) Build(project, userMessage string) ([]domain.ChatMessage, []domain.ChatMessage, error) {
	history, err := p.historyRepo.GetMessages(project)
	if err != nil {
		if !errors.Is(err, domain.ErrCorruptHistory) {
			return nil, nil, err
		}
		slog.Warn("Treating undecodable history as empty", "project", project, logger.Err(err))
		history = nil
	}

	if len(history) == 0 {
		combined, err := p.combinedSystemPrompt()
		if err != nil {
			return nil, nil, err
		}
		history = append(history, domain.ChatMessage{
			Role:    domain.ChatMessageRoleSystem,
			Content: combined,
		})
	}

	if shouldAppendUserMessage(history, userMessage) {
		history = append(history, domain.ChatMessage{
			Role:    domain.ChatMessageRoleUser,
			Content: userMessage,
		})
	}

	outbound := make([]domain.ChatMessage, len(history), len(history)+1)
	copy(outbound, history)

	if ctxMsg, ok, err := p.contextMessage(project); err != nil {
		return nil, nil, err
	} else if ok {
		outbound = append(outbound, ctxMsg)
	}

	return history, outbound, nil
}

// combinedSystemPrompt joins the operator-controlled fixed prompt with the
// shared user prompt, computed fresh on every call and never persisted
// pre-combined.
func (p *promptBuilder) combinedSystemPrompt() (string, error) {
	fixed, err := p.promptRepo.GetFixedPrompt()
	if err != nil {
		return "", fmt.Errorf("loading fixed prompt: %w", err)
	}
	user, err := p.promptRepo.GetUserPrompt()
	if err != nil {
		return "", fmt.Errorf("loading user prompt: %w", err)
	}

	switch {
	case fixed == "":
		return user, nil
	case user == "":
		return fixed, nil
	default:
		return fixed + "\n\n" + user, nil
	}
}

// shouldAppendUserMessage rejects blank messages and verbatim resubmissions
// of the immediately preceding message, so a client retry cannot double up
// the history.
func shouldAppendUserMessage(history []domain.ChatMessage, userMessage string) bool {
	trimmed := strings.TrimSpace(userMessage)
	if trimmed == "" {
		return false
	}
	if last := history[len(history)-1]; last.Role == domain.ChatMessageRoleUser &&
		strings.TrimSpace(last.Content) == trimmed {
		return false
	}
	return true
}

// contextMessage yields at most one synthetic system message: the latest
// artifact when one exists, otherwise the shared template for first-time
// projects.
func (p *promptBuilder) contextMessage(project string) (domain.ChatMessage, bool, error) {
	artifact, ok, err := p.artifactRepo.Get(project)
	if err != nil {
		return domain.ChatMessage{}, false, err
	}
	if ok && strings.TrimSpace(artifact) != "" {
		return domain.ChatMessage{
			Role:    domain.ChatMessageRoleSystem,
			Content: latestContextLabel + artifact,
		}, true, nil
	}

	template, ok, err := p.promptRepo.GetTemplate()
	if err != nil {
		return domain.ChatMessage{}, false, err
	}
	if ok && strings.TrimSpace(template) != "" {
		return domain.ChatMessage{
			Role:    domain.ChatMessageRoleSystem,
			Content: initialContextLabel + template,
		}, true, nil
	}

	return domain.ChatMessage{}, false, nil
}
