// Package pipeline runs the full prompt enhancement: classification,
// ambiguity scoring, scaffold building, synthesis (locally or through a
// remote model), optional pro expansion and before/after quality scoring.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tigerprompts/internal/analysis"
	"github.com/tigerprompts/internal/llm"
	"github.com/tigerprompts/internal/pqs"
	"github.com/tigerprompts/internal/prompts"
	"github.com/tigerprompts/internal/synth"
	"github.com/tigerprompts/pkg/models"
)

var (
	// ErrEmptyPrompt is returned by the command and HTTP surfaces when asked
	// to send a blank prompt to a remote model.
	ErrEmptyPrompt = errors.New("prompt is empty")
	// ErrNoCompleter means a remote path was requested but no model is configured.
	ErrNoCompleter = errors.New("no LLM adapter configured")
	// ErrUnknownTemplate is returned for a template key that is not registered.
	ErrUnknownTemplate = errors.New("unknown template")
)

// Mode tags recorded on PromptRecord.Mode.
const (
	ModeLocalLight = "local-light"
	ModeLocalDeep  = "local-deep"
	ModeLocalPro   = "local-deep-pro"
	ModeLLMLight   = "llm-light"
	ModeLLMDeep    = "llm-deep"
	ModeLLMPro     = "llm-deep-pro"
)

// EnhancementOptions selects the enhancement variant. The zero value is a
// local light enhancement.
type EnhancementOptions struct {
	Depth        models.Depth // empty means the template's depth, else light
	Pro          bool         // deep results only
	UseLLM       bool
	Explain      bool
	Model        string // remote model; empty uses the enhancer default
	MaxTokens    int
	Template     string            // template key, optional
	TemplateVars map[string]string // values for the template's placeholders
	Code         *models.CodeContext
}

// Enhancer runs enhancements. It is safe for concurrent use unless built
// with a Synthesizer that carries a random source.
type Enhancer struct {
	completer    llm.Completer
	synth        *synth.Synthesizer
	defaultModel string
	maxTokens    int
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithCompleter sets the remote model adapter used by the LLM path and Run.
func WithCompleter(c llm.Completer) Option {
	return func(e *Enhancer) { e.completer = c }
}

// WithSynthesizer replaces the default deterministic synthesizer.
func WithSynthesizer(s *synth.Synthesizer) Option {
	return func(e *Enhancer) { e.synth = s }
}

// WithDefaultModel sets the model used when a request names none.
func WithDefaultModel(model string) Option {
	return func(e *Enhancer) { e.defaultModel = model }
}

// WithMaxTokens sets the completion budget used when a request leaves it unset.
func WithMaxTokens(n int) Option {
	return func(e *Enhancer) { e.maxTokens = n }
}

// New creates an Enhancer.
func New(opts ...Option) *Enhancer {
	e := &Enhancer{
		synth:        synth.New(),
		defaultModel: prompts.DefaultModel,
		maxTokens:    llm.DefaultMaxTokens,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// HasCompleter reports whether remote calls are possible.
func (e *Enhancer) HasCompleter() bool {
	return e.completer != nil
}

// request is the resolved form of EnhancementOptions for one call.
type request struct {
	raw      string
	working  string // raw with the template context prepended
	depth    models.Depth
	code     *models.CodeContext
	model    string
	template *prompts.Template
}

func (e *Enhancer) resolve(raw string, opts EnhancementOptions) (request, error) {
	r := request{
		raw:     raw,
		working: raw,
		depth:   opts.Depth,
		code:    opts.Code.Clone(),
		model:   opts.Model,
	}
	if opts.Template != "" {
		tpl, ok := prompts.Lookup(opts.Template)
		if !ok {
			return r, fmt.Errorf("%w: %q", ErrUnknownTemplate, opts.Template)
		}
		r.template = &tpl
		r.working = tpl.Apply(raw, opts.TemplateVars)
		if r.depth == "" {
			r.depth = tpl.Depth
		}
		if tpl.Coding && r.code == nil {
			r.code = &models.CodeContext{}
		}
	}
	if r.depth != models.DepthDeep {
		r.depth = models.DepthLight
	}
	if r.model == "" {
		r.model = e.defaultModel
	}
	return r, nil
}

// Enhance produces a PromptRecord for raw. On any failure no record is
// returned. Remote failures wrap the adapter's *llm.AdapterError.
func (e *Enhancer) Enhance(ctx context.Context, raw string, opts EnhancementOptions) (*models.PromptRecord, error) {
	start := time.Now()
	req, err := e.resolve(raw, opts)
	if err != nil {
		return nil, err
	}

	var rec *models.PromptRecord
	if opts.UseLLM {
		rec, err = e.enhanceRemote(ctx, req, opts)
	} else {
		rec = e.enhanceLocal(req, opts)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("mode", rec.Mode).
		Str("task_type", string(rec.TaskType)).
		Float64("pqs_before", rec.PQSBefore).
		Float64("pqs_after", rec.PQSAfter).
		Dur("elapsed", time.Since(start)).
		Msg("Prompt enhanced")
	return rec, nil
}

func (e *Enhancer) enhanceLocal(req request, opts EnhancementOptions) *models.PromptRecord {
	taskType := analysis.Classify(req.working)
	ambiguity := analysis.ScoreAmbiguity(req.working)
	scaffold := synth.BuildScaffold(ambiguity, taskType)

	mode := ModeLocalLight
	var enhanced string
	if req.depth == models.DepthDeep {
		doc := e.synth.Deep(req.working, taskType, scaffold, req.code)
		mode = ModeLocalDeep
		if opts.Pro {
			doc = synth.ProExpand(doc, taskType, req.code != nil)
			mode = ModeLocalPro
		}
		enhanced = doc.String()
	} else {
		enhanced = e.synth.Light(req.working, taskType, scaffold, req.code)
	}

	rec := newRecord(req.raw, enhanced, taskType, ambiguity, mode)
	if opts.Explain {
		rec.Explanation = localExplanation(req, rec, opts.Pro && req.depth == models.DepthDeep)
	}
	return rec
}

func (e *Enhancer) enhanceRemote(ctx context.Context, req request, opts EnhancementOptions) (*models.PromptRecord, error) {
	if e.completer == nil {
		return nil, ErrNoCompleter
	}

	user := prompts.BuildCodingUserPrompt(req.working, req.code)
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = e.maxTokens
	}

	out, err := e.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: prompts.SystemPromptFor(req.depth),
		UserPrompt:   user,
		Model:        req.model,
		MaxTokens:    maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("enhance with %s: %w", req.model, err)
	}

	taskType := analysis.Classify(req.raw)
	ambiguity := analysis.ScoreAmbiguity(req.raw)

	enhanced := strings.TrimSpace(out)
	mode := ModeLLMLight
	if req.depth == models.DepthDeep {
		mode = ModeLLMDeep
		if opts.Pro {
			enhanced = synth.ProExpandText(enhanced, taskType, req.code != nil)
			mode = ModeLLMPro
		}
	}

	rec := newRecord(req.raw, enhanced, taskType, ambiguity, mode)
	if opts.Explain {
		rec.Explanation = remoteExplanation(req, rec)
	}
	return rec, nil
}

// Run sends an already enhanced prompt to the model with the plain
// assistant system prompt and returns the reply.
func (e *Enhancer) Run(ctx context.Context, prompt, model string) (string, error) {
	if e.completer == nil {
		return "", ErrNoCompleter
	}
	if model == "" {
		model = e.defaultModel
	}
	out, err := e.completer.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: prompts.RunSystemPrompt,
		UserPrompt:   prompt,
		Model:        model,
		MaxTokens:    e.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("run prompt with %s: %w", model, err)
	}
	return strings.TrimSpace(out), nil
}

// newRecord scores both texts independently.
func newRecord(raw, enhanced string, taskType models.TaskType, ambiguity float64, mode string) *models.PromptRecord {
	before := pqs.Score(raw)
	after := pqs.Score(enhanced)
	return &models.PromptRecord{
		Original:       raw,
		Enhanced:       enhanced,
		TaskType:       taskType,
		AmbiguityScore: ambiguity,
		PQSBefore:      before,
		PQSAfter:       after,
		DeltaQ:         after - before,
		Mode:           mode,
	}
}
