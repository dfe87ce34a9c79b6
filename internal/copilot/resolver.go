package copilot

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/KingVikasIndoria/vervewell-marketing-dashboard/internal/dataset"
)

// Validation errors are the only errors Resolve surfaces to callers; the
// HTTP layer maps them to a client error. Everything else is absorbed into
// a fallback reply.
var (
	ErrNoMessages   = errors.New("messages array required")
	ErrEmptyMessage = errors.New("message content required")
)

// Source tags which tier of the resolution strategy produced a reply.
type Source string

const (
	SourceLocal    Source = "local"
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Result is the outcome of answer resolution. The tagged Source makes the
// tiered strategy explicit rather than relying on exception suppression:
// every path through Resolve ends in exactly one of the three sources.
type Result struct {
	Reply  string
	Source Source
}

const (
	unavailablePrefix = "AI currently unavailable. Here is a data-driven overview from your CSV."
	errorPrefix       = "Encountered an error, but here's an overview based on your data."
)

// Resolver answers chat questions with a tiered strategy: the deterministic
// local answerer first, then the LLM provider with dataset context, then a
// deterministic overview fallback. For well-formed input it always returns
// a reply; provider failures never cross this boundary as errors.
type Resolver struct {
	data      dataset.Dataset
	knowledge dataset.Knowledge
	provider  Provider // nil when no API credential is configured
	timeout   time.Duration
}

// NewResolver builds a resolver over an immutable dataset snapshot.
// provider may be nil; the resolver then answers locally or via fallback.
func NewResolver(data dataset.Dataset, knowledge dataset.Knowledge, provider Provider, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Resolver{
		data:      data,
		knowledge: knowledge,
		provider:  provider,
		timeout:   timeout,
	}
}

// Resolve runs the strategy for one conversation. Only the last message's
// content is consulted. Validation failures return an error; every other
// path returns a Result.
func (r *Resolver) Resolve(ctx context.Context, messages []Message) (res Result, err error) {
	if len(messages) == 0 {
		return Result{}, ErrNoMessages
	}
	question := strings.TrimSpace(messages[len(messages)-1].Content)
	if question == "" {
		return Result{}, ErrEmptyMessage
	}

	// The always-answer guarantee: any panic below degrades to the error
	// overview instead of propagating.
	defer func() {
		if p := recover(); p != nil {
			log.Printf("copilot: recovered during resolve: %v", p)
			res = Result{
				Reply:  errorPrefix + "\n\n" + BuildGeneralOverview(r.data),
				Source: SourceFallback,
			}
			err = nil
		}
	}()

	if local := TryLocalAnswer(r.data, question); local.Matched {
		return Result{Reply: local.Reply, Source: SourceLocal}, nil
	}

	if r.provider != nil {
		reply, aiErr := r.askProvider(ctx, question)
		if aiErr == nil {
			return Result{Reply: reply, Source: SourceAI}, nil
		}
		log.Printf("copilot: %s call failed, using fallback: %v", r.provider.Name(), aiErr)
	}

	return Result{
		Reply:  unavailablePrefix + "\n\n" + BuildGeneralOverview(r.data),
		Source: SourceFallback,
	}, nil
}

func (r *Resolver) askProvider(ctx context.Context, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	system := buildSystemPrompt(r.knowledge, dataset.SelectContext(question, r.data))
	reply, err := r.provider.Complete(ctx, system, question)
	if err != nil {
		return "", err
	}
	return cleanReply(reply), nil
}

var bulletPattern = regexp.MustCompile(`(?m)^\s*[-•]\s*`)

// markupStripper removes the emphasis and heading markers models add even
// when asked for plain text. Order matters: "**" before "*", "###" before
// "##".
var markupStripper = strings.NewReplacer("**", "", "*", "", "###", "", "##", "")

// cleanReply normalizes provider output for the chat widget: no markdown
// emphasis or headings, bullets unified to "• ", surrounding whitespace
// trimmed.
func cleanReply(reply string) string {
	cleaned := markupStripper.Replace(reply)
	cleaned = bulletPattern.ReplaceAllString(cleaned, "• ")
	return strings.TrimSpace(cleaned)
}
