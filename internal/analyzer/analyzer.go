// Package analyzer runs the two-pass LLM analysis for one lead: a
// search-augmented research pass, then a strict-JSON scoring pass whose
// prompt embeds the research findings. Any failure in either pass
// collapses into the canonical fallback analysis; Analyze never errors.
package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/dqe-comms/battlecard-cli/internal/model"
	"github.com/dqe-comms/battlecard-cli/pkg/anthropic"
	"github.com/dqe-comms/battlecard-cli/pkg/perplexity"
)

// Config selects models and sampling for the two passes. Research runs hot
// and unconstrained; scoring runs cold with a bounded output.
type Config struct {
	ResearchModel       string
	ResearchTemperature float64
	ScoringModel        string
	ScoringTemperature  float64
	ScoringMaxTokens    int64
}

// Analyzer scores one lead per Analyze call. Safe for concurrent use; the
// only shared mutable state is the usage tracker, which locks internally.
type Analyzer struct {
	research perplexity.Client
	scoring  anthropic.Client
	cfg      Config
	usage    *UsageTracker
}

// New creates an Analyzer. The usage tracker is shared across all workers
// in a batch and must not be nil.
func New(research perplexity.Client, scoring anthropic.Client, cfg Config, usage *UsageTracker) *Analyzer {
	return &Analyzer{
		research: research,
		scoring:  scoring,
		cfg:      cfg,
		usage:    usage,
	}
}

// Usage returns the shared usage tracker.
func (a *Analyzer) Usage() *UsageTracker {
	return a.usage
}

// Analyze runs research then scoring for one lead. The scoring pass always
// runs, even without ConnectBase enrichment; the prompt degrades to its
// no-network-data variant instead of skipping the lead.
func (a *Analyzer) Analyze(ctx context.Context, ey model.EYData, cb model.ConnectBaseData) *model.AnalysisResult {
	log := zap.L().With(zap.String("business", ey.Name))
	log.Info("analyzer: researching")

	researchText, err := a.runResearch(ctx, ey, cb)
	if err != nil {
		log.Warn("analyzer: research pass failed", zap.Error(err))
		return model.FallbackAnalysis(err.Error())
	}

	log.Debug("analyzer: creating battle card")

	result, err := a.runScoring(ctx, researchText, ey, cb)
	if err != nil {
		log.Warn("analyzer: scoring pass failed", zap.Error(err))
		return model.FallbackAnalysis(err.Error())
	}

	log.Info("analyzer: scored",
		zap.Int("overall_score", result.OverallScore),
		zap.Float64("confidence", result.DataConfidence.ConfidenceScore),
		zap.Int("icp_score", result.ICPFit.ICPFitScore),
		zap.String("priority", result.SalesIntelligence.PriorityLevel),
	)
	return result
}

// runResearch issues the free-text research call.
func (a *Analyzer) runResearch(ctx context.Context, ey model.EYData, cb model.ConnectBaseData) (string, error) {
	temp := a.cfg.ResearchTemperature
	resp, err := a.research.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Model: a.cfg.ResearchModel,
		Messages: []perplexity.Message{
			{Role: "user", Content: researchPrompt(ey, cb)},
		},
		Temperature:         &temp,
		SearchRecencyFilter: "year",
	})
	if err != nil {
		return "", err
	}

	a.usage.Add(int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens))
	return resp.Text(), nil
}

// runScoring issues the constrained-JSON scoring call and decodes it.
func (a *Analyzer) runScoring(ctx context.Context, researchText string, ey model.EYData, cb model.ConnectBaseData) (*model.AnalysisResult, error) {
	temp := a.cfg.ScoringTemperature
	resp, err := a.scoring.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.cfg.ScoringModel,
		MaxTokens: a.cfg.ScoringMaxTokens,
		System:    scoringSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: scoringPrompt(researchText, ey, cb)},
		},
		Temperature: &temp,
	})
	if err != nil {
		return nil, err
	}

	a.usage.Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	resp.Usage.LogCost(a.cfg.ScoringModel, "scoring")

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(stripFences(resp.Text)), &result); err != nil {
		return nil, err
	}
	result.Status = model.AnalysisScored
	return &result, nil
}

// stripFences removes an optional Markdown code fence wrapper from a model
// response before JSON decoding.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
