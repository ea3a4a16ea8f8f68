package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quaero-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// User-facing replies for the degraded paths. These are answers, not
// errors: the ask loop keeps running after printing them.
const (
	noContextMessage = "I don't have any relevant information to answer this question."
	askErrorMessage  = "I encountered an error while processing your question."
)

// defaultRAGPrompt grounds the answer in the retrieved context.
// Used when no prompt store is configured or the template cannot load.
const defaultRAGPrompt = `You are a helpful AI assistant. Answer the question based on the provided context.
If you cannot find the answer in the context, say "I don't have enough information to answer this question."
Do not make up or infer information that is not in the context.

Context:
{context}

Question:
{question}

Answer:`

// AssistantService answers questions grounded in retrieved chunks.
type AssistantService struct {
	retriever driving.Retriever
	llm       driven.LLMService
	prompts   driven.PromptStore
	defaultK  int
}

// NewAssistantService creates a new assistant service.
// The prompts parameter is optional (can be nil); the built-in template
// is used then. defaultK is the retrieval depth when Ask passes k <= 0.
func NewAssistantService(
	retriever driving.Retriever,
	llm driven.LLMService,
	prompts driven.PromptStore,
	defaultK int,
) *AssistantService {
	if defaultK <= 0 {
		defaultK = domain.DefaultAskResults
	}
	return &AssistantService{
		retriever: retriever,
		llm:       llm,
		prompts:   prompts,
		defaultK:  defaultK,
	}
}

// AddDocuments indexes documents for later retrieval.
func (s *AssistantService) AddDocuments(ctx context.Context, docs []domain.Document) (int, error) {
	return s.retriever.Ingest(ctx, docs)
}

// Ask retrieves the most relevant chunks for the question and asks the
// LLM to answer from them.
//
// Retrieval and generation failures produce the fixed error reply with a
// nil error so interactive loops keep running; the cause is logged.
// Context cancellation is the exception and propagates.
func (s *AssistantService) Ask(ctx context.Context, question string, k int) (string, error) {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", question)

	if s.llm == nil {
		return "", domain.ErrNoProviderConfigured
	}

	if k <= 0 {
		k = s.defaultK
	}

	results, err := s.retriever.Search(ctx, question, k)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("Retrieval failed: %v", err)
		return askErrorMessage, nil
	}

	contextText, ok := assembleContext(results)
	if !ok {
		logger.Debug("No chunks retrieved, returning no-context reply")
		return noContextMessage, nil
	}
	logger.Debug("Context: %d chunks, %d characters", len(results), len(contextText))

	prompt := strings.NewReplacer(
		"{context}", contextText,
		"{question}", question,
	).Replace(s.promptTemplate())

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		logger.Warn("Generation failed: %v", err)
		return askErrorMessage, nil
	}

	logger.Info("Answer generated (%d characters)", len(answer))
	return strings.TrimSpace(answer), nil
}

// promptTemplate returns the answer template, falling back to the
// built-in default when the store is missing or failing.
func (s *AssistantService) promptTemplate() string {
	if s.prompts == nil {
		return defaultRAGPrompt
	}
	tmpl, err := s.prompts.Load(driven.PromptRAGAnswer)
	if err != nil || strings.TrimSpace(tmpl) == "" {
		if err != nil {
			logger.Warn("Loading %s prompt failed: %v (using built-in)", driven.PromptRAGAnswer, err)
		}
		return defaultRAGPrompt
	}
	return tmpl
}

// assembleContext joins retrieved chunk texts into the context block.
// ok is false when nothing was retrieved.
func assembleContext(results []domain.SearchResult) (string, bool) {
	if len(results) == 0 {
		return "", false
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	return strings.Join(texts, "\n\n"), true
}
