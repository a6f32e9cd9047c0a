package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sitesmith/pkg/domain"
)

type historyRepository struct {
	dir string
}

func NewHistoryRepository(dir string) (*historyRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	return &historyRepository{dir: dir}, nil
}

func (h *historyRepository) Path(project string) string {
	return filepath.Join(h.dir, safeName(project)+".json")
}

// GetMessages returns the project's history, oldest first. A missing record
// yields an empty history; an undecodable one yields domain.ErrCorruptHistory.
func (h *historyRepository) GetMessages(project string) ([]domain.ChatMessage, error) {
	data, err := os.ReadFile(h.Path(project))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history for %q: %w", project, err)
	}

	var messages []domain.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decoding history for %q: %v: %w", project, err, domain.ErrCorruptHistory)
	}
	return messages, nil
}

// SaveMessages replaces the project's history record with the full sequence.
func (h *historyRepository) SaveMessages(project string, messages []domain.ChatMessage) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history for %q: %w", project, err)
	}

	if err := atomicWriteFile(h.Path(project), data); err != nil {
		return fmt.Errorf("saving history for %q: %w", project, err)
	}
	return nil
}

// Clear removes the project's history record. Removing an absent record is
// not an error.
func (h *historyRepository) Clear(project string) error {
	if err := os.Remove(h.Path(project)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing history for %q: %w", project, err)
	}
	return nil
}
