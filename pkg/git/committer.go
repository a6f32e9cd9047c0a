package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// committer records changed files as one labeled git commit by shelling out
// to the git CLI.
type committer struct {
	repoDir string
}

func NewCommitter(repoDir string) *committer {
	return &committer{repoDir: repoDir}
}

// Commit stages the provided paths, skipping ones that do not exist, and
// creates one snapshot commit. When none of the paths exist this is a no-op.
func (c *committer) Commit(ctx context.Context, paths []string, label string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		slog.Info("No snapshot paths exist, skipping commit")
		return nil
	}

	if err := c.run(ctx, append([]string{"add", "--"}, existing...)...); err != nil {
		return fmt.Errorf("staging %v: %w", existing, err)
	}

	if err := c.run(ctx, "commit", "-m", SanitizeLabel(label)); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (c *committer) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.repoDir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// SanitizeLabel strips quoting and control characters that would mangle a
// commit message, and collapses the label to a single line.
func SanitizeLabel(label string) string {
	label = strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '"' || r == '`':
			return -1
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case r < 0x20:
			return -1
		default:
			return r
		}
	}, label)

	return strings.Join(strings.Fields(label), " ")
}
