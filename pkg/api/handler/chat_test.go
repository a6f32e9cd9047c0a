package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sitesmith/pkg/domain"
)

type fakeTurnProcessor struct {
	result domain.CompletionResult
	err    error

	gotReq domain.TurnRequest
}

func (f *fakeTurnProcessor) ProcessTurn(_ context.Context, req domain.TurnRequest) (domain.CompletionResult, error) {
	f.gotReq = req
	return f.result, f.err
}

func TestChat_ProcessTurn(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		result     domain.CompletionResult
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "successful turn",
			body:       `{"projectName":"demo","userMessage":"hello"}`,
			result:     domain.CompletionResult{Html: "<p>hi</p>", Chat: "hi there"},
			wantStatus: http.StatusOK,
			wantBody:   `{"html":"<p>hi</p>","chat":"hi there"}`,
		},
		{
			name:       "missing project name",
			body:       `{"userMessage":"hello"}`,
			err:        &domain.ValidationError{Field: "projectName"},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"missing required field \"projectName\""}`,
		},
		{
			name:       "upstream failure is a generic server error",
			body:       `{"projectName":"demo","userMessage":"hello"}`,
			err:        &domain.UpstreamError{StatusCode: 500, Body: "boom"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"A server error occurred."}`,
		},
		{
			name:       "invalid json body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid JSON body."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChat(&fakeTurnProcessor{result: tt.result, err: tt.err})

			rec := httptest.NewRecorder()
			h.ProcessTurn(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code)
			require.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestChat_PassesRequestThrough(t *testing.T) {
	processor := &fakeTurnProcessor{result: domain.CompletionResult{Chat: "ok"}}
	h := NewChat(processor)

	body := `{"projectName":"demo","userMessage":"hello","userSystemPrompt":"be brief"}`
	rec := httptest.NewRecorder()
	h.ProcessTurn(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body)))

	require.Equal(t, domain.TurnRequest{
		ProjectName:      "demo",
		UserMessage:      "hello",
		UserSystemPrompt: "be brief",
	}, processor.gotReq)
}
