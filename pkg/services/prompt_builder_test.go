package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sitesmith/pkg/domain"
	"sitesmith/pkg/repository"
)

type testRepos struct {
	history  HistoryRepository
	artifact ArtifactRepository
	prompt   PromptRepository

	dataDir   string
	publicDir string
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	dataDir := t.TempDir()
	publicDir := t.TempDir()

	history, err := repository.NewHistoryRepository(dataDir)
	require.NoError(t, err)
	artifact, err := repository.NewArtifactRepository(publicDir)
	require.NoError(t, err)
	prompt, err := repository.NewPromptRepository(dataDir, publicDir)
	require.NoError(t, err)

	return testRepos{
		history:   history,
		artifact:  artifact,
		prompt:    prompt,
		dataDir:   dataDir,
		publicDir: publicDir,
	}
}

func TestPromptBuilder_SeedsSystemMessageOnFirstTurn(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, os.WriteFile(filepath.Join(repos.dataDir, "fixed_prompt.txt"), []byte("fixed rules"), 0o644))
	require.NoError(t, repos.prompt.SaveUserPrompt("user style"))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, outbound, err := builder.Build("demo", "hello")
	require.NoError(t, err)

	require.Equal(t, []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: "fixed rules\n\nuser style"},
		{Role: domain.ChatMessageRoleUser, Content: "hello"},
	}, history)
	require.Equal(t, history, outbound)
}

func TestPromptBuilder_SkipsDuplicateUserMessage(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.history.SaveMessages("demo", []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: "sys"},
		{Role: domain.ChatMessageRoleUser, Content: "hello"},
	}))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, _, err := builder.Build("demo", "  hello  ")
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestPromptBuilder_SkipsBlankUserMessage(t *testing.T) {
	repos := newTestRepos(t)
	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, _, err := builder.Build("demo", "   ")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, domain.ChatMessageRoleSystem, history[0].Role)
}

func TestPromptBuilder_AppendsArtifactContext(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.artifact.Save("demo", "<p>old page</p>"))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, outbound, err := builder.Build("demo", "tweak it")
	require.NoError(t, err)

	require.Len(t, outbound, len(history)+1)
	last := outbound[len(outbound)-1]
	require.Equal(t, domain.ChatMessageRoleSystem, last.Role)
	require.Equal(t, latestContextLabel+"<p>old page</p>", last.Content)
}

func TestPromptBuilder_UsesTemplateWhenNoArtifact(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, os.WriteFile(filepath.Join(repos.publicDir, "template.html"), []byte("<html>tmpl</html>"), 0o644))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, outbound, err := builder.Build("demo", "start")
	require.NoError(t, err)

	require.Len(t, outbound, len(history)+1)
	require.Equal(t, initialContextLabel+"<html>tmpl</html>", outbound[len(outbound)-1].Content)
}

func TestPromptBuilder_ContextMessageNeverPersisted(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.artifact.Save("demo", "<p>page</p>"))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, _, err := builder.Build("demo", "hello")
	require.NoError(t, err)
	for _, m := range history {
		require.NotContains(t, m.Content, latestContextLabel)
	}
}

func TestPromptBuilder_TreatsCorruptHistoryAsEmpty(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, os.WriteFile(repos.history.Path("demo"), []byte("{broken"), 0o644))

	builder := NewPromptBuilder(repos.history, repos.artifact, repos.prompt)

	history, _, err := builder.Build("demo", "hello")
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, domain.ChatMessageRoleSystem, history[0].Role)
}
