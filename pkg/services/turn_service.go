package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"sitesmith/pkg/domain"
	"sitesmith/pkg/logger"
)

type PromptBuilder interface {
	Build(project, userMessage string) (history, outbound []domain.ChatMessage, err error)
}

type Completer interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

type ReplyParser interface {
	Parse(raw string) domain.CompletionResult
}

type Committer interface {
	Commit(ctx context.Context, paths []string, label string) error
}

// turnService runs one chat turn: assemble the prompt, call the model,
// interpret the reply, persist history and artifact, then optionally record
// a snapshot.
type turnService struct {
	builder      PromptBuilder
	completer    Completer
	parser       ReplyParser
	committer    Committer
	historyRepo  HistoryRepository
	artifactRepo ArtifactRepository
	promptRepo   PromptRepository

	autoCommit bool
	locks      *keyedMutex
}

func NewTurnService(
	builder PromptBuilder,
	completer Completer,
	parser ReplyParser,
	committer Committer,
	historyRepo HistoryRepository,
	artifactRepo ArtifactRepository,
	promptRepo PromptRepository,
	autoCommit bool,
) *turnService {
	return &turnService{
		builder:      builder,
		completer:    completer,
		parser:       parser,
		committer:    committer,
		historyRepo:  historyRepo,
		artifactRepo: artifactRepo,
		promptRepo:   promptRepo,
		autoCommit:   autoCommit,
		locks:        newKeyedMutex(),
	}
}

// ProcessTurn is atomic up to the completion call: nothing is written before
// the model has replied. The snapshot commit is fire-and-forget; its outcome
// never affects the returned result.
func (s *turnService) ProcessTurn(ctx context.Context, req domain.TurnRequest) (domain.CompletionResult, error) {
	project := strings.TrimSpace(req.ProjectName)
	if project == "" {
		return domain.CompletionResult{}, &domain.ValidationError{Field: "projectName"}
	}

	if req.UserSystemPrompt != "" {
		if err := s.promptRepo.SaveUserPrompt(req.UserSystemPrompt); err != nil {
			return domain.CompletionResult{}, err
		}
	}

	history, outbound, err := s.builder.Build(project, req.UserMessage)
	if err != nil {
		return domain.CompletionResult{}, fmt.Errorf("assembling prompt: %w", err)
	}

	raw, err := s.completer.Complete(ctx, outbound)
	if err != nil {
		return domain.CompletionResult{}, err
	}

	result := s.parser.Parse(raw)

	if err := s.persist(project, history, result); err != nil {
		return domain.CompletionResult{}, err
	}

	if s.autoCommit {
		go s.commitSnapshot(context.WithoutCancel(ctx), project, result.Chat)
	}

	return result, nil
}

// persist holds the project's lock across both writes so concurrent turns for
// the same project cannot interleave a read-modify-write.
func (s *turnService) persist(project string, history []domain.ChatMessage, result domain.CompletionResult) error {
	mu := s.locks.get(project)
	mu.Lock()
	defer mu.Unlock()

	history = append(history, domain.ChatMessage{
		Role:    domain.ChatMessageRoleAssistant,
		Content: result.Chat,
	})
	if err := s.historyRepo.SaveMessages(project, history); err != nil {
		return err
	}

	if strings.TrimSpace(result.Html) != "" {
		if err := s.artifactRepo.Save(project, result.Html); err != nil {
			return err
		}
	}
	return nil
}

func (s *turnService) commitSnapshot(ctx context.Context, project, replyText string) {
	paths := []string{
		s.historyRepo.Path(project),
		s.artifactRepo.Path(project),
	}
	label := fmt.Sprintf("%s: %s", project, lo.Ellipsis(replyText, 72))

	if err := s.committer.Commit(ctx, paths, label); err != nil {
		slog.Error("Snapshot commit failed", "project", project, logger.Err(err))
		return
	}
	slog.Info("Snapshot committed", "project", project)
}
