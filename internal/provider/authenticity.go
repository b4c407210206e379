package provider

import (
	"context"
	"fmt"

	"certapi/internal/config"
	"certapi/internal/model"
)

const authenticityPrompt = "Assess whether the text is likely AI-generated. " +
	"Return JSON with 'aiGeneratedLikelihood' (0-1) and 'fraudFlags'."

// authenticityClient calls the dedicated AI-origin classifier. Its opinion is
// authoritative over the mapper's secondary one.
type authenticityClient struct {
	chat *chatClient
}

// NewAuthenticityScorer constructs the HTTP-backed authenticity scorer.
func NewAuthenticityScorer(cfg config.ProviderConfig) AuthenticityScorer {
	return &authenticityClient{
		chat: newChatClient(chatConfig{
			url:     cfg.AuthenticityURL,
			apiKey:  cfg.AuthenticityAPIKey,
			model:   cfg.Model,
			timeout: cfg.AuthenticityTimeout,
		}),
	}
}

// wireAssessment is the provider payload schema. Decoded strictly: a missing
// or out-of-range likelihood is a schema mismatch, not a usable score.
type wireAssessment struct {
	AIGeneratedLikelihood *float64        `json:"aiGeneratedLikelihood"`
	FraudFlags            []wireFraudFlag `json:"fraudFlags"`
}

type wireFraudFlag struct {
	Kind    string  `json:"kind"`
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

func (w wireAssessment) validate() error {
	if w.AIGeneratedLikelihood == nil {
		return fmt.Errorf("%w: missing aiGeneratedLikelihood", ErrMalformedResponse)
	}
	if *w.AIGeneratedLikelihood < 0 || *w.AIGeneratedLikelihood > 1 {
		return fmt.Errorf("%w: aiGeneratedLikelihood out of range", ErrMalformedResponse)
	}
	return nil
}

func toModelFlags(in []wireFraudFlag) []model.FraudFlag {
	out := make([]model.FraudFlag, 0, len(in))
	for _, f := range in {
		out = append(out, model.FraudFlag{Kind: f.Kind, Message: f.Message, Score: f.Score})
	}
	return out
}

// Score asks the classifier for an AI-origin likelihood and fraud flags.
func (c *authenticityClient) Score(ctx context.Context, content string) (model.AuthenticityAssessment, error) {
	var wire wireAssessment
	if err := c.chat.complete(ctx, authenticityPrompt, content, &wire); err != nil {
		return model.AuthenticityAssessment{}, err
	}
	if err := wire.validate(); err != nil {
		return model.AuthenticityAssessment{}, err
	}
	return model.AuthenticityAssessment{
		AIGeneratedLikelihood: *wire.AIGeneratedLikelihood,
		FraudFlags:            toModelFlags(wire.FraudFlags),
	}, nil
}
