package domain

import "time"

// TurnRequest is one inbound chat turn for a project.
type TurnRequest struct {
	ProjectName      string `json:"projectName"`
	UserMessage      string `json:"userMessage"`
	UserSystemPrompt string `json:"userSystemPrompt,omitempty"`
}

// CompletionResult is the normalized decoding of the model's reply.
// Html is empty when the reply carried no usable artifact content.
type CompletionResult struct {
	Html string `json:"html"`
	Chat string `json:"chat"`
}

// ArtifactInfo describes one stored artifact file.
type ArtifactInfo struct {
	Filename     string
	ProjectName  string
	LastModified time.Time
}

// ProjectInfo is an ArtifactInfo cross-referenced with the project's
// first user message for a human-readable label.
type ProjectInfo struct {
	Filename     string    `json:"filename"`
	ProjectName  string    `json:"projectName"`
	Description  string    `json:"description"`
	LastModified time.Time `json:"lastModified"`
}
