package model

import "time"

// MediaKind classifies an uploaded evidence artifact.
type MediaKind string

const (
	MediaText     MediaKind = "text"
	MediaAudio    MediaKind = "audio"
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaDocument MediaKind = "document"
)

// FraudFlag is one annotation produced by an authenticity or mapping
// classifier. Order matters: consumers display the first flag as primary.
type FraudFlag struct {
	Kind    string  `json:"kind"`
	Message string  `json:"message"`
	Score   float64 `json:"score"`
}

// AuthenticityAssessment is the combined AI-origin opinion for one piece of
// content. It is embedded into the evidence record, never stored standalone.
type AuthenticityAssessment struct {
	AIGeneratedLikelihood float64     `json:"ai_generated_likelihood"`
	FraudFlags            []FraudFlag `json:"fraud_flags"`
}

// EvidenceItem represents one uploaded or supplied piece of evidence.
// Immutable once created; ExtractedText is attached exactly once when
// transcription succeeds.
// This is a pure domain model with no database-specific dependencies or tags.
type EvidenceItem struct {
	ID                    string      `json:"id"`
	TenantID              string      `json:"tenant_id"`
	CandidateID           string      `json:"candidate_id"`
	UploadedByUserID      string      `json:"uploaded_by_user_id"`
	MediaKind             MediaKind   `json:"media_kind"`
	StoragePath           string      `json:"storage_path,omitempty"`
	Description           string      `json:"description"`
	ExtractedText         *string     `json:"extracted_text,omitempty"`
	MappedIndicators      []string    `json:"mapped_indicators"`
	AIGeneratedLikelihood float64     `json:"ai_generated_likelihood"`
	FraudFlags            []FraudFlag `json:"fraud_flags"`
	CreatedAt             time.Time   `json:"created_at"`
}
