// Package analyzer orchestrates schema-constrained contract analysis.
package analyzer

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/llm"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/report"
	"github.com/hyperjump/keiyaku/pkg/utils"
)

// Analyzer runs one analysis pass over extracted contract text.
type Analyzer struct {
	client *llm.Client
	cfg    config.AnalysisConfig
	logger *zap.Logger
}

// New creates an Analyzer.
func New(client *llm.Client, cfg config.AnalysisConfig, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Analyze sends the extracted text through the generation capability and
// returns the validated record together with its rendered report.
//
// Precondition checks run in order: credential present, then document long
// enough. Text beyond the input budget is clipped before prompting. Exactly
// one generation request is issued; failures are never retried here, the
// caller owns retry policy.
func (a *Analyzer) Analyze(ctx context.Context, text, credential string) (*models.AnalysisRecord, *report.Rendered, error) {
	if credential == "" {
		return nil, nil, ErrMissingCredential
	}
	if len(strings.TrimSpace(text)) < a.cfg.MinDocumentChars {
		return nil, nil, ErrDocumentTooShort
	}

	clipped := utils.Clip(text, a.cfg.MaxInputChars)
	if len(clipped) < len(text) {
		a.logger.Debug("clipped document to input budget",
			zap.Int("original", len(text)),
			zap.Int("clipped", len(clipped)))
	}

	raw, err := a.client.Complete(ctx, credential, llm.Request{
		Model: a.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: analysisSystemPrompt},
			{Role: "user", Content: buildAnalysisPrompt(clipped, a.cfg.Language)},
		},
		Temperature: a.cfg.TemperatureOrDefault(),
		JSONObject:  true,
		MaxTokens:   a.cfg.MaxTokens,
	})
	if err != nil {
		return nil, nil, err
	}

	extracted := extractJSON(raw)
	if extracted == "" {
		a.logger.Warn("analysis response contained no JSON",
			zap.String("preview", utils.Truncate(raw, 200)))
		return nil, nil, &MalformedResponseError{Raw: raw}
	}
	var rec models.AnalysisRecord
	if err := json.Unmarshal([]byte(extracted), &rec); err != nil {
		a.logger.Warn("analysis response not parseable",
			zap.String("preview", utils.Truncate(raw, 200)),
			zap.Error(err))
		return nil, nil, &MalformedResponseError{Raw: raw}
	}

	points := models.GroupCriticalPoints(rec.CriticalPoints)
	risks := models.GroupRisks(rec.Risks)
	a.logger.Info("contract analyzed",
		zap.String("contract_type", rec.ContractType),
		zap.Int("critical_high", len(points[models.TierHigh])),
		zap.Int("critical_medium", len(points[models.TierMedium])),
		zap.Int("critical_low", len(points[models.TierLow])),
		zap.Int("risks_high", len(risks[models.TierHigh])))

	return &rec, report.Render(&rec), nil
}
