// Package agent orchestrates the question-answering pipeline: classify the
// question, short-circuit gated cases, retrieve supporting context, compose a
// prompt, call the generator, and validate the result.
//
// The pipeline's contract is total: Answer always returns a non-empty answer
// text. Generator failures and rejected responses never propagate; they are
// recorded on the Result and replaced with a deterministic fallback template.
// A single generation attempt is made per question, with no retries.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minbarhq/minbar/internal/classify"
	"github.com/minbarhq/minbar/internal/log"
	"github.com/minbarhq/minbar/internal/prompt"
	"github.com/minbarhq/minbar/internal/respond"
	"github.com/minbarhq/minbar/internal/retrieval"
)

// Generator failure conditions. All of them route to a fallback template.
var (
	ErrUnavailable      = errors.New("generator unavailable")
	ErrEmptyResponse    = errors.New("generator returned empty response")
	ErrBlocked          = errors.New("generation blocked by safety filter")
	ErrTimeout          = errors.New("generation timed out")
	ErrResponseRejected = errors.New("generated response rejected")
)

// Generator produces answer text for a composed prompt. Implementations
// should honor context cancellation and map their failure modes to the
// sentinel errors above where possible.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Searcher retrieves the best-matching knowledge chunks for a question.
type Searcher interface {
	Search(question string, maxResults int) []string
}

// Category labels how an answer was produced.
type Category string

const (
	CategoryAnswered      Category = "answered"
	CategoryInappropriate Category = "inappropriate"
	CategoryScholar       Category = "scholar_recommendation"
	CategoryFallback      Category = "fallback"
)

// Result is one pipeline run. Text is always non-empty. Failure records the
// generator condition that forced a fallback, nil otherwise.
type Result struct {
	Text     string
	Category Category
	Type     classify.Type
	Failure  error
}

// Retrieval budget for the jurisprudence path. The standard path uses
// retrieval.DefaultMaxResults.
const complexMaxResults = 2

const (
	defaultTimeout      = 45 * time.Second
	defaultHistoryLimit = 5
)

// Pipeline runs the full answer flow for one question at a time. It is safe
// for concurrent use as long as its collaborators are.
type Pipeline struct {
	search       Searcher
	gen          Generator
	logger       log.Logger
	timeout      time.Duration
	historyLimit int
}

// NewPipeline wires a pipeline. A non-positive timeout or history limit
// falls back to the defaults.
func NewPipeline(search Searcher, gen Generator, logger log.Logger, timeout time.Duration, historyLimit int) *Pipeline {
	if logger == nil {
		logger = log.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Pipeline{
		search:       search,
		gen:          gen,
		logger:       logger,
		timeout:      timeout,
		historyLimit: historyLimit,
	}
}

// Answer runs the pipeline for one question. The returned Result always
// carries non-empty text.
func (p *Pipeline) Answer(ctx context.Context, question string, history []prompt.Turn) Result {
	c := classify.Classify(question)

	if c.Inappropriate {
		p.logger.Debug("question gated", "reason", "inappropriate")
		return Result{Text: inappropriateAnswer, Category: CategoryInappropriate, Type: c.Type}
	}
	if c.RecommendScholar {
		p.logger.Debug("question gated", "reason", "scholar_recommendation", "topic", c.ScholarTopic)
		return Result{Text: scholarAnswer(c.ScholarTopic), Category: CategoryScholar, Type: c.Type}
	}

	rendered := prompt.RenderHistory(history, p.historyLimit)
	if c.NeedsDetailedFiqh || c.ComplexFiqh {
		return p.complexPath(ctx, question, rendered, c)
	}
	return p.standardPath(ctx, question, rendered, c)
}

// complexPath answers jurisprudential questions with a tighter retrieval
// budget and the fiqh prompt templates. A request for evidences takes it
// even when no complex-fiqh marker is present.
func (p *Pipeline) complexPath(ctx context.Context, question, history string, c classify.Result) Result {
	chunks := p.search.Search(question, complexMaxResults)

	mode := prompt.ModeComplexFiqh
	if c.NeedsDetailedFiqh {
		mode = prompt.ModeDetailedFiqh
	}

	text, err := p.generate(ctx, prompt.Compose(mode, prompt.Input{
		Question: question,
		Context:  strings.Join(chunks, "\n\n"),
		History:  history,
		Guidance: c.TopicGuidance,
	}))
	if err != nil {
		p.logger.Warn("fiqh generation failed, using fallback", "mode", mode, "error", err)
		return Result{Text: fiqhFallback(question), Category: CategoryFallback, Type: c.Type, Failure: err}
	}

	p.logger.Debug("question answered", "mode", mode, "chunks", len(chunks))
	return Result{Text: text, Category: CategoryAnswered, Type: c.Type}
}

// standardPath answers everything that was not gated or routed to the fiqh
// path: retrieve, grade context quality, pick the prompt mode by question
// type, generate.
func (p *Pipeline) standardPath(ctx context.Context, question, history string, c classify.Result) Result {
	chunks := p.search.Search(question, retrieval.DefaultMaxResults)
	quality := prompt.ContextQuality(question, chunks)
	mode := prompt.ModeForType(c.Type, quality)

	in := prompt.Input{
		Question: question,
		History:  history,
		Guidance: c.TopicGuidance,
	}
	if mode != prompt.ModeWithoutContext {
		in.Context = strings.Join(chunks, "\n\n")
	}

	text, err := p.generate(ctx, prompt.Compose(mode, in))
	if err != nil {
		p.logger.Warn("generation failed, using fallback", "mode", mode, "error", err)
		return Result{Text: genericFallback(question, chunks), Category: CategoryFallback, Type: c.Type, Failure: err}
	}

	p.logger.Debug("question answered", "mode", mode, "quality", quality, "chunks", len(chunks))
	return Result{Text: text, Category: CategoryAnswered, Type: c.Type}
}

// generate makes the single timeout-bounded generation attempt, then
// validates and cleans the output.
func (p *Pipeline) generate(ctx context.Context, composed string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	raw, err := p.gen.Generate(ctx, composed)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("generate: %w", ErrTimeout)
		}
		return "", fmt.Errorf("generate: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyResponse
	}
	if !respond.IsAcceptable(raw) {
		return "", ErrResponseRejected
	}
	return respond.Clean(raw), nil
}
