package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	userPromptFile  = "user_prompt.txt"
	fixedPromptFile = "fixed_prompt.txt"
	templateFile    = "template.html"
)

// promptRepository persists the shared system-prompt scalars. The user part
// is updatable through the turn protocol; the fixed part is an
// operator-managed file and read-only here.
type promptRepository struct {
	dataDir   string
	publicDir string

	mu sync.Mutex
}

func NewPromptRepository(dataDir, publicDir string) (*promptRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &promptRepository{dataDir: dataDir, publicDir: publicDir}, nil
}

func (p *promptRepository) GetUserPrompt() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.readOptional(filepath.Join(p.dataDir, userPromptFile))
}

func (p *promptRepository) SaveUserPrompt(prompt string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := atomicWriteFile(filepath.Join(p.dataDir, userPromptFile), []byte(prompt)); err != nil {
		return fmt.Errorf("saving user prompt: %w", err)
	}
	return nil
}

func (p *promptRepository) GetFixedPrompt() (string, error) {
	return p.readOptional(filepath.Join(p.dataDir, fixedPromptFile))
}

// GetTemplate returns the shared initial-context template, if the operator
// provided one.
func (p *promptRepository) GetTemplate() (string, bool, error) {
	content, err := p.readOptional(filepath.Join(p.publicDir, templateFile))
	if err != nil {
		return "", false, err
	}
	return content, content != "", nil
}

func (p *promptRepository) readOptional(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
