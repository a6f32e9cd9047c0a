package services

import (
	"encoding/json"
	"strings"

	"sitesmith/pkg/domain"
)

// FallbackPolicy selects what the chat reply becomes when the model's output
// is not the expected JSON object.
type FallbackPolicy string

const (
	// FallbackRaw passes the raw reply through verbatim.
	FallbackRaw FallbackPolicy = "raw"
	// FallbackFixed substitutes a fixed error string.
	FallbackFixed FallbackPolicy = "fixed"
)

const fixedFallbackText = "response error"

type replyParser struct {
	policy FallbackPolicy
}

func NewReplyParser(policy FallbackPolicy) *replyParser {
	if policy == "" {
		policy = FallbackRaw
	}
	return &replyParser{policy: policy}
}

// Parse decodes the model's reply into a CompletionResult. It never fails:
// malformed replies degrade to a chat-only result per the fallback policy, so
// the user always sees something.
func (p *replyParser) Parse(raw string) domain.CompletionResult {
	var result domain.CompletionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return domain.CompletionResult{Chat: p.fallbackText(raw)}
	}

	if strings.TrimSpace(result.Html) == "" {
		result.Html = ""
	}
	return result
}

func (p *replyParser) fallbackText(raw string) string {
	if p.policy == FallbackFixed {
		return fixedFallbackText
	}
	return raw
}
