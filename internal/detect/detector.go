package detect

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/llm"
)

// Config controls classification thresholds and the semantic stage
type Config struct {
	// Threshold is the confidence at or above which a message is a scam.
	Threshold float64
	// LowFloor is the confidence at or below which the pattern stage alone
	// rules the message benign.
	LowFloor float64
	// HistoryWindow bounds how many prior turns the semantic stage sees.
	HistoryWindow int
	// Provider optionally names the LLM provider; empty uses the router default.
	Provider string
	// Model optionally overrides the provider's default model.
	Model string
}

// Detector classifies messages for scam intent
type Detector struct {
	router *llm.Router
	cfg    Config
}

// NewDetector creates a detector backed by the given LLM router.
func NewDetector(router *llm.Router, cfg Config) *Detector {
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.7
	}
	if cfg.LowFloor == 0 {
		cfg.LowFloor = 0.3
	}
	if cfg.HistoryWindow == 0 {
		cfg.HistoryWindow = 6
	}
	return &Detector{router: router, cfg: cfg}
}

// Classify produces a scam assessment for one message. It never returns an
// error: when the pattern score is conclusive the semantic stage is skipped
// entirely, and when the semantic stage fails for any reason the pattern
// verdict is returned as a degraded decision.
func (d *Detector) Classify(ctx context.Context, msg domain.Message, history []domain.Message) domain.Assessment {
	score, categories := Score(msg.Text)

	heuristic := domain.Assessment{
		IsScam:     score >= d.cfg.Threshold,
		Confidence: score,
		Categories: categories,
		Stage:      domain.StageHeuristic,
	}

	if score >= d.cfg.Threshold {
		heuristic.Reasoning = "pattern stage matched strong scam signals"
		return heuristic
	}
	if score <= d.cfg.LowFloor {
		heuristic.Reasoning = "pattern stage found no meaningful scam signals"
		return heuristic
	}

	verdict, err := d.semanticStage(ctx, msg, history)
	if err != nil {
		log.Warn().
			Err(err).
			Float64("pattern_confidence", score).
			Msg("Semantic stage failed, degrading to pattern verdict")
		heuristic.Reasoning = "pattern verdict (semantic stage unavailable)"
		return heuristic
	}

	verdict.Stage = domain.StageLLM
	verdict.IsScam = verdict.Confidence >= d.cfg.Threshold
	return *verdict
}

// semanticVerdict mirrors the JSON contract the detection prompt asks for.
type semanticVerdict struct {
	IsScam     bool     `json:"is_scam"`
	Confidence float64  `json:"confidence"`
	Categories []string `json:"categories"`
	Reasoning  string   `json:"reasoning"`
}

func (d *Detector) semanticStage(ctx context.Context, msg domain.Message, history []domain.Message) (*domain.Assessment, error) {
	provider, err := d.router.GetProvider(d.cfg.Provider)
	if err != nil {
		return nil, err
	}

	resp, err := provider.Complete(ctx, llm.Request{
		System:      detectionSystemPrompt,
		Prompt:      buildDetectionPrompt(msg.Text, history, d.cfg.HistoryWindow),
		Temperature: 0.3,
		MaxTokens:   300,
		ForceJSON:   true,
	}, d.cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("semantic detection failed: %w", err)
	}

	var verdict semanticVerdict
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &verdict); err != nil {
		return nil, fmt.Errorf("malformed detection verdict: %w", err)
	}

	if verdict.Confidence < 0 {
		verdict.Confidence = 0
	}
	if verdict.Confidence > 1 {
		verdict.Confidence = 1
	}

	return &domain.Assessment{
		IsScam:     verdict.IsScam,
		Confidence: verdict.Confidence,
		Categories: verdict.Categories,
		Reasoning:  verdict.Reasoning,
	}, nil
}
