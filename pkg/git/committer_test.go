package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"plain label", "demo: added a header", "demo: added a header"},
		{"single quotes stripped", "demo: it's done", "demo: its done"},
		{"double quotes and backticks stripped", "demo: \"done\" `now`", "demo: done now"},
		{"newlines collapsed", "demo: line one\nline two", "demo: line one line two"},
		{"control characters removed", "demo: \x1b[31mred\x1b[0m", "demo: [31mred[0m"},
		{"whitespace collapsed", "demo:    lots   of   space", "demo: lots of space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeLabel(tt.label))
		})
	}
}

func TestCommitter_NoExistingPathsIsNoOp(t *testing.T) {
	dir := t.TempDir()
	c := NewCommitter(dir)

	err := c.Commit(context.Background(), []string{
		filepath.Join(dir, "missing.json"),
		filepath.Join(dir, "missing.html"),
	}, "demo: nothing")
	require.NoError(t, err)
}
