package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"choconati/internal/core"
	"choconati/internal/metrics"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Fixed replies. The advisor never surfaces an error to its caller.
const (
	ApologyReply    = "Desculpe, estou com dificuldades para conectar com o cérebro da confeitaria agora. Por favor, tente novamente mais tarde."
	EmptyReply      = "Não consegui gerar uma resposta no momento."
	BlankInputReply = "Escreva uma pergunta sobre o seu estoque ou as suas receitas."
)

// AdvisorService answers free-text questions about the shop, grounded on a snapshot.
type AdvisorService interface {
	Ask(ctx context.Context, userText string, snap core.Snapshot) string
}

// Options tunes the model call. Zero values take the defaults below.
type Options struct {
	Model           string
	BaseURL         string
	Shop            string
	Timeout         time.Duration
	MaxOutputTokens int64
	// ClientOptions are appended to the SDK client options.
	ClientOptions []option.RequestOption
}

const (
	defaultModel   = "gpt-4o-mini"
	defaultShop    = "ChocoNati"
	defaultTimeout = 30 * time.Second
)

type Agent struct {
	client    *openai.Client
	model     string
	shop      string
	timeout   time.Duration
	maxTokens int64
	log       *slog.Logger
}

var _ AdvisorService = (*Agent)(nil)

// NewAgent builds the advisor. An empty apiKey is accepted; every Ask then
// logs the missing credential and returns the apology.
func NewAgent(apiKey string, log *slog.Logger, opts Options) *Agent {
	a := &Agent{
		model:     opts.Model,
		shop:      opts.Shop,
		timeout:   opts.Timeout,
		maxTokens: opts.MaxOutputTokens,
		log:       log.With("component", "advisor"),
	}
	if a.model == "" {
		a.model = defaultModel
	}
	if a.shop == "" {
		a.shop = defaultShop
	}
	if a.timeout <= 0 {
		a.timeout = defaultTimeout
	}
	if apiKey != "" {
		clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if opts.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
		}
		clientOpts = append(clientOpts, opts.ClientOptions...)
		client := openai.NewClient(clientOpts...)
		a.client = &client
	}
	return a
}

// Instructions renders the system prompt for snap.
func (a *Agent) Instructions(snap core.Snapshot) string {
	return fmt.Sprintf(`Você é um especialista em consultoria para confeitaria da %q.
Seu objetivo é ajudar o dono do negócio a maximizar lucros, reduzir desperdícios e criar produtos deliciosos.

Estoque Atual:
%s

Receitas Atuais:
%s

Responda sempre em Português do Brasil.
Mantenha um tom profissional, encorajador e útil. Foque em eficiência financeira e criatividade culinária.
Formate sua resposta usando Markdown.`, a.shop, snap.InventoryText(), snap.RecipesText())
}

func (a *Agent) Ask(ctx context.Context, userText string, snap core.Snapshot) string {
	question := strings.TrimSpace(userText)
	if question == "" {
		metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeBlank).Inc()
		return BlankInputReply
	}
	if a.client == nil {
		a.log.Error("advisor credential not configured; set advisor.api_key or OPENAI_API_KEY")
		metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeUnconfigured).Inc()
		return ApologyReply
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(a.model),
		Instructions: param.NewOpt(a.Instructions(snap)),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(question),
		},
	}
	if a.maxTokens > 0 {
		params.MaxOutputTokens = param.NewOpt(a.maxTokens)
	}

	start := time.Now()
	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		a.log.Error("advisor request failed", "model", a.model, "err", err, "elapsed", time.Since(start))
		metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeError).Inc()
		return ApologyReply
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		a.log.Warn("advisor returned an empty reply", "model", a.model, "response_id", resp.ID)
		metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return EmptyReply
	}
	a.log.Debug("advisor replied", "model", a.model, "chars", len(text), "elapsed", time.Since(start))
	metrics.AdvisorRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	return text
}
