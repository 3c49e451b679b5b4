// Package qa answers free-form questions grounded in an extracted contract.
package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/llm"
	"github.com/hyperjump/keiyaku/pkg/utils"
)

// Sentinel errors for Q&A preconditions, checked in declaration order.
var (
	// ErrNoQuestion means the question was empty.
	ErrNoQuestion = errors.New("no question provided")

	// ErrNoDocument means no contract text has been extracted yet.
	ErrNoDocument = errors.New("no document available, analyze a contract first")

	// ErrMissingCredential means no API credential was supplied for the call.
	ErrMissingCredential = errors.New("no API credential provided")
)

// qaSystemPrompt frames the model as a contract advisor answering questions.
const qaSystemPrompt = "You are an experienced legal advisor. You answer questions about contracts in a detailed and clear manner."

const qaPromptTemplate = `Contract Text:
"""
%s
"""

User Question: %s

Answer the user's question in a detailed and clear manner, based on this contract.
Reference the relevant clauses of the contract in your answer.`

// Service answers questions about a previously extracted contract.
type Service struct {
	client *llm.Client
	cfg    config.AnalysisConfig
	logger *zap.Logger
}

// New creates a Service.
func New(client *llm.Client, cfg config.AnalysisConfig, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Ask sends one grounded question about text and returns the free-form
// answer. Preconditions are checked in order: question present, document
// present, credential present; the first failing one wins. The document is
// clipped to the same input budget as analysis. Each call is independent;
// no conversation memory is carried between questions.
func (s *Service) Ask(ctx context.Context, question, text, credential string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrNoQuestion
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoDocument
	}
	if credential == "" {
		return "", ErrMissingCredential
	}

	clipped := utils.Clip(text, s.cfg.MaxInputChars)
	answer, err := s.client.Complete(ctx, credential, llm.Request{
		Model: s.cfg.Model,
		Messages: []llm.Message{
			{Role: "system", Content: qaSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(qaPromptTemplate, clipped, question)},
		},
		Temperature: s.cfg.TemperatureOrDefault(),
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug("question answered",
		zap.Int("question_chars", len(question)),
		zap.Int("answer_chars", len(answer)))
	return answer, nil
}
