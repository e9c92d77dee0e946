package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/tigerprompts/internal/analysis"
	"github.com/tigerprompts/internal/history"
	"github.com/tigerprompts/internal/llm"
	"github.com/tigerprompts/internal/pipeline"
	"github.com/tigerprompts/internal/pqs"
	"github.com/tigerprompts/internal/scanner"
	"github.com/tigerprompts/internal/synth"
	"github.com/tigerprompts/pkg/models"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TextRequest carries the text analysed by classify, ambiguity and pqs.
type TextRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse represents the response for classification
type ClassifyResponse struct {
	TaskType models.TaskType         `json:"task_type"`
	Scores   map[models.TaskType]int `json:"scores"`
}

// AmbiguityResponse represents the response for ambiguity scoring
type AmbiguityResponse struct {
	Score     float64  `json:"score"`
	Triggered []string `json:"triggered"`
}

// PQSResponse represents the response for quality scoring
type PQSResponse struct {
	Score     float64       `json:"score"`
	Breakdown pqs.Breakdown `json:"breakdown"`
}

// SynthesizeRequest represents a direct synthesis call. TaskType and
// Scaffold are derived from the prompt when omitted.
type SynthesizeRequest struct {
	Prompt   string              `json:"prompt"`
	TaskType string              `json:"task_type,omitempty"`
	Scaffold *models.Scaffold    `json:"scaffold,omitempty"`
	Depth    models.Depth        `json:"depth"`
	Pro      bool                `json:"pro"`
	Code     *models.CodeContext `json:"code,omitempty"`
}

// SynthesizeResponse represents the synthesized prompt
type SynthesizeResponse struct {
	Enhanced string          `json:"enhanced"`
	TaskType models.TaskType `json:"task_type"`
	Scaffold models.Scaffold `json:"scaffold"`
}

// ScanRequest represents a code scan request
type ScanRequest struct {
	Code string `json:"code"`
}

// EnhanceRequest represents a full pipeline call
type EnhanceRequest struct {
	Prompt       string              `json:"prompt"`
	Depth        models.Depth        `json:"depth"`
	Pro          bool                `json:"pro"`
	UseLLM       bool                `json:"use_llm"`
	Explain      bool                `json:"explain"`
	Model        string              `json:"model,omitempty"`
	Template     string              `json:"template,omitempty"`
	TemplateVars map[string]string   `json:"template_vars,omitempty"`
	Code         *models.CodeContext `json:"code,omitempty"`
	Save         bool                `json:"save"`
}

// EnhanceResponse is the enhancement record, plus the saved entry when
// Save was requested.
type EnhanceResponse struct {
	*models.PromptRecord
	Saved *models.SavedPrompt `json:"saved,omitempty"`
}

// RunRequest sends an enhanced prompt to the model.
type RunRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
}

// RunResponse holds the model's reply.
type RunResponse struct {
	Output string `json:"output"`
}

// SaveRequest stores a prompt pair in history.
type SaveRequest struct {
	Original string `json:"original"`
	Enhanced string `json:"enhanced"`
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// fail maps domain errors onto status codes.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, history.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pipeline.ErrEmptyPrompt), errors.Is(err, pipeline.ErrUnknownTemplate):
		status = http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoCompleter):
		status = http.StatusServiceUnavailable
	case llm.IsAdapterError(err):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func (s *Server) classify(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return c.JSON(http.StatusOK, ClassifyResponse{
		TaskType: analysis.Classify(req.Text),
		Scores:   analysis.Scores(req.Text),
	})
}

func (s *Server) ambiguity(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	triggered := analysis.TriggeredRules(req.Text)
	if triggered == nil {
		triggered = []string{}
	}
	return c.JSON(http.StatusOK, AmbiguityResponse{
		Score:     analysis.ScoreAmbiguity(req.Text),
		Triggered: triggered,
	})
}

func (s *Server) scorePQS(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	b := pqs.Evaluate(req.Text)
	return c.JSON(http.StatusOK, PQSResponse{Score: b.Total(), Breakdown: b})
}

func (s *Server) synthesize(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	taskType := analysis.Classify(req.Prompt)
	if req.TaskType != "" {
		t, ok := models.ParseTaskType(req.TaskType)
		if !ok {
			return badRequest(c, "unknown task_type "+req.TaskType)
		}
		taskType = t
	}

	var scaffold models.Scaffold
	if req.Scaffold != nil {
		scaffold = *req.Scaffold
	} else {
		scaffold = synth.BuildScaffold(analysis.ScoreAmbiguity(req.Prompt), taskType)
	}

	depth := models.ParseDepth(string(req.Depth))
	enhanced := synth.Synthesize(req.Prompt, taskType, scaffold, depth, req.Code)
	if req.Pro && depth == models.DepthDeep {
		enhanced = synth.ProExpandText(enhanced, taskType, req.Code != nil)
	}

	return c.JSON(http.StatusOK, SynthesizeResponse{
		Enhanced: enhanced,
		TaskType: taskType,
		Scaffold: scaffold,
	})
}

func (s *Server) scan(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	return c.JSON(http.StatusOK, scanner.Scan(req.Code))
}

func (s *Server) enhance(c echo.Context) error {
	var req EnhanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Depth != "" {
		req.Depth = models.ParseDepth(string(req.Depth))
	}

	handle := func(c echo.Context) error { return s.doEnhance(c, req) }
	if req.UseLLM {
		if strings.TrimSpace(req.Prompt) == "" {
			return fail(c, pipeline.ErrEmptyPrompt)
		}
		return s.llmLimit(handle)(c)
	}
	return handle(c)
}

func (s *Server) doEnhance(c echo.Context, req EnhanceRequest) error {
	if req.Save && s.history == nil {
		return noHistory(c)
	}
	ctx := c.Request().Context()
	rec, err := s.enhancer.Enhance(ctx, req.Prompt, pipeline.EnhancementOptions{
		Depth:        req.Depth,
		Pro:          req.Pro,
		UseLLM:       req.UseLLM,
		Explain:      req.Explain,
		Model:        req.Model,
		Template:     req.Template,
		TemplateVars: req.TemplateVars,
		Code:         req.Code,
	})
	if err != nil {
		return fail(c, err)
	}

	resp := EnhanceResponse{PromptRecord: rec}
	if req.Save {
		saved, err := s.history.Save(ctx, rec.Original, rec.Enhanced)
		if err != nil {
			return fail(c, err)
		}
		resp.Saved = &saved
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) run(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return fail(c, pipeline.ErrEmptyPrompt)
	}
	out, err := s.enhancer.Run(c.Request().Context(), req.Prompt, req.Model)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, RunResponse{Output: out})
}
