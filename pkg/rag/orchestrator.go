// Package rag orchestrates the answer pipeline: corpus check, hybrid
// retrieval, context assembly, generation with provider fallback, and the
// negative-answer recovery passes.
package rag

import (
	"context"
	"strings"

	"support-chat-be/internal/entity"
	"support-chat-be/internal/pkg/logger"
	"support-chat-be/internal/repository/contract"
	"support-chat-be/pkg/llm"
	"support-chat-be/pkg/ragcontext"
	"support-chat-be/pkg/retrieval"
	"support-chat-be/pkg/websearch"
)

// FallbackScore is assigned to exhaustive-fallback candidates. Above the
// similarity threshold so they survive downstream filtering, below a perfect
// match so genuine semantic hits outrank them.
const FallbackScore = 0.8

// Retriever is the candidate-search collaborator.
type Retriever interface {
	Retrieve(ctx context.Context, query string, opts retrieval.Options) ([]retrieval.Candidate, error)
}

// WebSearcher is the optional external-knowledge collaborator.
type WebSearcher interface {
	Search(ctx context.Context, query, language string) (*websearch.Result, error)
}

// AskOptions tunes one Answer call.
type AskOptions struct {
	Language        string
	ForceExtraction bool // bypass retrieval, use the whole corpus
	UserId          string
	WidgetId        string
}

func (o AskOptions) normalized() AskOptions {
	if o.Language == "" {
		o.Language = "pt"
	}
	return o
}

// Orchestrator runs the full question-answering pipeline. Every failure path
// resolves to a localized message; callers never see provider errors.
type Orchestrator struct {
	docs      contract.DocumentRepository
	retriever Retriever
	assembler *ragcontext.Assembler
	providers *llm.Chain
	search    WebSearcher // nil disables the external-knowledge pass
	knowledge contract.KnowledgeRepository
	topics    *TopicCache
	aiConfig  contract.AiConfigRepository
	usage     contract.UsageLogRepository
	logger    logger.ILogger

	defaultModel       string
	defaultTemperature float64
}

// Config carries the orchestrator's collaborators. Search, Knowledge, Topics,
// AiConfig and Usage may be nil; the pipeline degrades without them.
type Config struct {
	Documents          contract.DocumentRepository
	Retriever          Retriever
	Assembler          *ragcontext.Assembler
	Providers          *llm.Chain
	Search             WebSearcher
	Knowledge          contract.KnowledgeRepository
	Topics             *TopicCache
	AiConfig           contract.AiConfigRepository
	Usage              contract.UsageLogRepository
	Logger             logger.ILogger
	DefaultModel       string
	DefaultTemperature float64
}

func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.Assembler == nil {
		cfg.Assembler = ragcontext.NewAssembler()
	}
	if cfg.DefaultTemperature == 0 {
		cfg.DefaultTemperature = 0.3
	}
	return &Orchestrator{
		docs:               cfg.Documents,
		retriever:          cfg.Retriever,
		assembler:          cfg.Assembler,
		providers:          cfg.Providers,
		search:             cfg.Search,
		knowledge:          cfg.Knowledge,
		topics:             cfg.Topics,
		aiConfig:           cfg.AiConfig,
		usage:              cfg.Usage,
		logger:             cfg.Logger,
		defaultModel:       cfg.DefaultModel,
		defaultTemperature: cfg.DefaultTemperature,
	}
}

// Answer resolves a user question against the document corpus. The returned
// error is always nil for user-level failures; those become localized
// messages in the answer string.
func (o *Orchestrator) Answer(ctx context.Context, query string, opts AskOptions) (string, error) {
	opts = opts.normalized()

	if strings.TrimSpace(query) == "" {
		return NoMatchMessage(opts.Language), nil
	}

	corpus, err := o.docs.FindTrained(ctx)
	if err != nil {
		o.logger.Error("rag", "corpus lookup failed", map[string]interface{}{"error": err.Error()})
		return ApologyMessage(opts.Language), nil
	}
	if len(corpus) == 0 {
		return NoCorpusMessage(opts.Language), nil
	}

	candidates := o.retrieve(ctx, query, opts, corpus)
	if len(candidates) == 0 {
		return NoMatchMessage(opts.Language), nil
	}

	assembled := o.assembler.FormatForPrompt(candidates)
	if assembled == ragcontext.NoDocumentsSentinel {
		return NoMatchMessage(opts.Language), nil
	}

	model, temperature := o.resolveModelConfig(ctx)

	answer, err := o.generate(ctx, assembled, query, model, temperature, opts)
	if err != nil {
		return ApologyMessage(opts.Language), nil
	}

	if HasNegativePhrase(answer, opts.Language) {
		answer = o.recoverNegativeAnswer(ctx, assembled, query, answer, model, temperature, opts)
	}

	return answer, nil
}

// retrieve runs hybrid retrieval and, when it comes back empty or extraction
// is forced, falls back to the entire non-empty corpus.
func (o *Orchestrator) retrieve(ctx context.Context, query string, opts AskOptions, corpus []*entity.Document) []retrieval.Candidate {
	var candidates []retrieval.Candidate

	if !opts.ForceExtraction {
		found, err := o.retriever.Retrieve(ctx, query, retrieval.Options{Language: opts.Language})
		if err != nil {
			o.logger.Warn("rag", "retrieval failed, using exhaustive fallback", map[string]interface{}{"error": err.Error()})
		} else {
			candidates = withContent(found)
		}
	}

	if len(candidates) == 0 {
		nonEmpty := make([]*entity.Document, 0, len(corpus))
		for _, d := range corpus {
			if strings.TrimSpace(d.Content) != "" {
				nonEmpty = append(nonEmpty, d)
			}
		}
		candidates = retrieval.CandidatesFromDocuments(nonEmpty, FallbackScore)
	}

	return candidates
}

func withContent(cands []retrieval.Candidate) []retrieval.Candidate {
	kept := cands[:0]
	for _, c := range cands {
		if strings.TrimSpace(c.Content) != "" {
			kept = append(kept, c)
		}
	}
	return kept
}

// resolveModelConfig prefers the active stored configuration and falls back
// to the orchestrator defaults.
func (o *Orchestrator) resolveModelConfig(ctx context.Context) (string, float64) {
	model := o.defaultModel
	temperature := o.defaultTemperature

	if o.aiConfig == nil {
		return model, temperature
	}

	cfg, err := o.aiConfig.FindActive(ctx)
	if err != nil {
		o.logger.Warn("rag", "active ai config lookup failed, using defaults", map[string]interface{}{"error": err.Error()})
		return model, temperature
	}
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.Temperature > 0 {
			temperature = cfg.Temperature
		}
	}
	return model, temperature
}

// generate tries the primary provider with the full prompt, then each
// fallback with the reduced generic prompt and the family's default model.
// Every attempt is usage-logged.
func (o *Orchestrator) generate(ctx context.Context, assembled, query, model string, temperature float64, opts AskOptions) (string, error) {
	systemPrompt := NewPromptBuilder(assembled, opts.Language).Build()

	var lastErr error
	for i, provider := range o.providers.Providers() {
		prompt := systemPrompt
		callOpts := []llm.Option{llm.WithTemperature(temperature)}
		if i == 0 {
			if model != "" {
				callOpts = append(callOpts, llm.WithModel(model))
			}
		} else {
			// Alternate family runs its lighter default model on a
			// reduced prompt.
			prompt = reducedSystemPrompt(assembled, opts.Language)
		}

		result, err := provider.Chat(ctx, buildHistory(prompt, query), callOpts...)
		o.logUsage(provider.Name(), result, err, opts)
		if err != nil {
			o.logger.Warn("rag", "generation failed, trying next provider", map[string]interface{}{
				"provider": provider.Name(),
				"error":    err.Error(),
			})
			lastErr = err
			continue
		}
		return result.Content, nil
	}

	if lastErr == nil {
		lastErr = llm.ErrNoProviders
	}
	return "", lastErr
}

// generateOnce runs a single pass with an explicit system prompt through the
// provider chain. Used by the recovery passes.
func (o *Orchestrator) generateOnce(ctx context.Context, systemPrompt, query, model string, temperature float64, opts AskOptions) (string, error) {
	var lastErr error
	for i, provider := range o.providers.Providers() {
		callOpts := []llm.Option{llm.WithTemperature(temperature)}
		// The configured model only binds the primary; alternates run
		// their own family default.
		if i == 0 && model != "" {
			callOpts = append(callOpts, llm.WithModel(model))
		}

		result, err := provider.Chat(ctx, buildHistory(systemPrompt, query), callOpts...)
		o.logUsage(provider.Name(), result, err, opts)
		if err != nil {
			lastErr = err
			continue
		}
		return result.Content, nil
	}

	if lastErr == nil {
		lastErr = llm.ErrNoProviders
	}
	return "", lastErr
}

// recoverNegativeAnswer handles answers that declared the context
// insufficient: one forceful extraction re-prompt, then one external
// knowledge pass. Each retry runs at most once; any failure keeps the best
// answer produced so far.
func (o *Orchestrator) recoverNegativeAnswer(ctx context.Context, assembled, query, answer, model string, temperature float64, opts AskOptions) string {
	forceful := NewPromptBuilder(assembled, opts.Language).Forceful().Build()
	retried, err := o.generateOnce(ctx, forceful, query, model, temperature, opts)
	if err == nil && retried != "" {
		answer = retried
		if !HasNegativePhrase(answer, opts.Language) {
			return answer
		}
	}

	// Previously learned answers short-circuit the network lookup.
	webResult := o.lookupStoredKnowledge(ctx, query, opts.Language)
	if webResult == nil {
		if o.search == nil {
			return answer
		}
		var err error
		webResult, err = o.search.Search(ctx, query, opts.Language)
		if err != nil || webResult == nil || webResult.Content == "" {
			if err != nil {
				o.logger.Warn("rag", "external knowledge lookup failed", map[string]interface{}{"error": err.Error()})
			}
			return answer
		}
		o.persistKnowledge(query, webResult, opts)
	}

	combined := NewPromptBuilder(assembled, opts.Language).
		WithWebResult(webResult.Content).
		Build()
	final, err := o.generateOnce(ctx, combined, query, model, temperature, opts)
	if err == nil && final != "" {
		return final
	}
	return answer
}

// lookupStoredKnowledge serves a previously persisted external answer when
// the query matches a known topic, sparing the network chain.
func (o *Orchestrator) lookupStoredKnowledge(ctx context.Context, query, language string) *websearch.Result {
	if o.knowledge == nil || o.topics == nil {
		return nil
	}

	topics, err := o.topics.Topics(ctx, language)
	if err != nil {
		o.logger.Warn("rag", "topic cache lookup failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	for _, topic := range topics {
		if !strings.EqualFold(topic, strings.TrimSpace(query)) {
			continue
		}
		entries, err := o.knowledge.FindByTopic(ctx, topic, language)
		if err != nil || len(entries) == 0 {
			return nil
		}
		var sb strings.Builder
		for i, e := range entries {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(e.Content)
		}
		return &websearch.Result{Content: sb.String(), Source: "knowledge_store"}
	}
	return nil
}

// persistKnowledge stores the external answer for future retrieval.
// Best-effort: failures are logged, never surfaced.
func (o *Orchestrator) persistKnowledge(query string, result *websearch.Result, opts AskOptions) {
	if o.knowledge == nil {
		return
	}

	entry := &entity.KnowledgeEntry{
		Topic:    query,
		Content:  result.Content,
		Source:   result.Source,
		Language: opts.Language,
	}

	go func() {
		if err := o.knowledge.Create(context.Background(), entry); err != nil {
			o.logger.Warn("rag", "failed to persist knowledge entry", map[string]interface{}{"error": err.Error()})
			return
		}
		if o.topics != nil {
			o.topics.Append(opts.Language, entry.Topic)
		}
	}()
}

// logUsage records one provider invocation, fire-and-forget.
func (o *Orchestrator) logUsage(providerName string, result *llm.Result, callErr error, opts AskOptions) {
	if o.usage == nil {
		return
	}

	log := &entity.UsageLog{
		Operation: entity.UsageOperationGeneration,
		Success:   callErr == nil,
		UserId:    opts.UserId,
		WidgetId:  opts.WidgetId,
		Metadata:  map[string]interface{}{"provider": providerName},
	}
	if result != nil {
		log.Model = result.Model
		log.TokensUsed = result.Usage.TotalTokens
	}
	if callErr != nil {
		log.ErrorMessage = callErr.Error()
	}

	go func() {
		if err := o.usage.Create(context.Background(), log); err != nil {
			o.logger.Warn("rag", "failed to write usage log", map[string]interface{}{"error": err.Error()})
		}
	}()
}

func buildHistory(systemPrompt, query string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: query},
	}
}
