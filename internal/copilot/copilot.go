// Package copilot implements the conversational assistant: a deterministic
// local answerer for common dataset questions, LLM providers for everything
// else, and the resolver that ties the two together with a fallback that
// never fails.
package copilot

import (
	"context"
)

// Message is one turn of the chat conversation. Only the most recent user
// message drives answer resolution; prior turns are carried for shape
// compatibility with the UI, not consulted.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the outbound LLM contract: a system/user prompt pair in,
// completion text or an error out. Implementations must honor the context
// deadline; the resolver treats any error as a signal to fall back to local
// computation, so providers never retry.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}
