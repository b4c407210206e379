package provider

import (
	"context"
	"errors"

	"certapi/internal/model"
)

// Package provider contains the HTTP clients for the external classifiers the
// pipeline depends on: speech-to-text transcription, AI-origin scoring, and
// semantic indicator mapping. Clients return typed errors on transport,
// status, or schema failures; the pipeline converts those into the degraded
// sentinels below so a provider outage never fails an ingestion run.

// ErrMalformedResponse indicates the provider answered 2xx with a body that
// does not match the documented schema. Treated the same as any transport failure.
var ErrMalformedResponse = errors.New("provider response does not match schema")

// Transcriber converts audio bytes into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// AuthenticityScorer produces the authoritative AI-origin opinion for content.
type AuthenticityScorer interface {
	Score(ctx context.Context, content string) (model.AuthenticityAssessment, error)
}

// MappingResult is the indicator mapper's output: attributed indicator ids
// plus a secondary authenticity opinion.
type MappingResult struct {
	Indicators            []string
	AIGeneratedLikelihood float64
	FraudFlags            []model.FraudFlag
}

// IndicatorMapper attributes content to zero or more competency indicators.
type IndicatorMapper interface {
	MapIndicators(ctx context.Context, content string) (MappingResult, error)
}

// Degraded sentinel values. The 0.5 likelihood means "unknown, needs human
// review"; consumers distinguish it from a genuine 0.5 only via the flag.
const (
	DegradedLikelihood      = 0.5
	FlagAnalysisUnavailable = "analysis_unavailable"
	FlagLLMUnavailable      = "llm_unavailable"
)

// DegradedAssessment is the fixed sentinel substituted when the authenticity
// scorer is unavailable.
func DegradedAssessment() model.AuthenticityAssessment {
	return model.AuthenticityAssessment{
		AIGeneratedLikelihood: DegradedLikelihood,
		FraudFlags: []model.FraudFlag{{
			Kind:    FlagAnalysisUnavailable,
			Message: "AI-origin analysis failed; perform a manual review.",
			Score:   0.5,
		}},
	}
}

// DegradedMapping is the fixed sentinel substituted when the indicator mapper
// is unavailable. The indicator set is empty; caller-supplied hints still apply.
func DegradedMapping() MappingResult {
	return MappingResult{
		Indicators:            []string{},
		AIGeneratedLikelihood: DegradedLikelihood,
		FraudFlags: []model.FraudFlag{{
			Kind:    FlagLLMUnavailable,
			Message: "Classifier response unavailable; manual check required.",
			Score:   0.2,
		}},
	}
}
