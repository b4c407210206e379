package provider

import (
	"context"

	"certapi/internal/config"
)

const mapperPrompt = "You are a competency-certification assistant. " +
	"Analyze the text, attribute relevant existing indicatorIds, and estimate the " +
	"likelihood (0-1) that it is AI-generated. " +
	"Return JSON with 'mappedIndicators', 'aiGeneratedLikelihood', 'fraudFlags'."

// mapperClient calls the broader semantic classifier: indicator attribution
// plus a secondary authenticity opinion.
type mapperClient struct {
	chat *chatClient
}

// NewIndicatorMapper constructs the HTTP-backed indicator mapper.
func NewIndicatorMapper(cfg config.ProviderConfig) IndicatorMapper {
	return &mapperClient{
		chat: newChatClient(chatConfig{
			url:     cfg.MapperURL,
			apiKey:  cfg.MapperAPIKey,
			model:   cfg.Model,
			timeout: cfg.MapperTimeout,
		}),
	}
}

type wireMapping struct {
	MappedIndicators []string `json:"mappedIndicators"`
	wireAssessment
}

// MapIndicators attributes content to indicator ids. Hints are merged by the
// caller, not here: this client reports only what the classifier said.
func (c *mapperClient) MapIndicators(ctx context.Context, content string) (MappingResult, error) {
	var wire wireMapping
	if err := c.chat.complete(ctx, mapperPrompt, content, &wire); err != nil {
		return MappingResult{}, err
	}
	if err := wire.validate(); err != nil {
		return MappingResult{}, err
	}

	indicators := wire.MappedIndicators
	if indicators == nil {
		indicators = []string{}
	}
	return MappingResult{
		Indicators:            indicators,
		AIGeneratedLikelihood: *wire.AIGeneratedLikelihood,
		FraudFlags:            toModelFlags(wire.FraudFlags),
	}, nil
}
