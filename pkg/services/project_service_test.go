package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"sitesmith/pkg/domain"
)

func TestProjectService_GetHistoryMissingIsEmptySlice(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewProjectService(repos.history, repos.artifact)

	messages, err := svc.GetHistory("missing")
	require.NoError(t, err)
	require.NotNil(t, messages)
	require.Empty(t, messages)
}

func TestProjectService_ClearThenGetIsEmpty(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.history.SaveMessages("demo", []domain.ChatMessage{
		{Role: domain.ChatMessageRoleUser, Content: "hello"},
	}))

	svc := NewProjectService(repos.history, repos.artifact)

	require.NoError(t, svc.ClearHistory("demo"))
	require.NoError(t, svc.ClearHistory("demo"))

	messages, err := svc.GetHistory("demo")
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestProjectService_ListProjects(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.artifact.Save("demo", "<p>page</p>"))
	require.NoError(t, repos.history.SaveMessages("demo", []domain.ChatMessage{
		{Role: domain.ChatMessageRoleSystem, Content: "sys"},
		{Role: domain.ChatMessageRoleUser, Content: "build me a landing page"},
	}))

	svc := NewProjectService(repos.history, repos.artifact)

	infos, err := svc.ListProjects()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, "demo.html", infos[0].Filename)
	require.Equal(t, "demo", infos[0].ProjectName)
	require.Equal(t, "build me a landing page", infos[0].Description)
	require.False(t, infos[0].LastModified.IsZero())
}

func TestProjectService_ListProjectsCorruptHistoryGetsEmptyDescription(t *testing.T) {
	repos := newTestRepos(t)
	require.NoError(t, repos.artifact.Save("demo", "<p>page</p>"))
	require.NoError(t, os.WriteFile(repos.history.Path("demo"), []byte("{broken"), 0o644))

	svc := NewProjectService(repos.history, repos.artifact)

	infos, err := svc.ListProjects()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Empty(t, infos[0].Description)
}
