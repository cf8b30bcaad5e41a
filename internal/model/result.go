package model

import "time"

// VerdictLabel is the analyzer's judgment on one claim
type VerdictLabel string

const (
	LabelTrue          VerdictLabel = "True"
	LabelPartiallyTrue VerdictLabel = "PartiallyTrue"
	LabelFalse         VerdictLabel = "False"
	LabelUnverifiable  VerdictLabel = "Unverifiable"
)

// ValidLabel reports whether l is one of the four fixed verdict labels
func ValidLabel(l VerdictLabel) bool {
	switch l {
	case LabelTrue, LabelPartiallyTrue, LabelFalse, LabelUnverifiable:
		return true
	}
	return false
}

// Confidence expresses how sure the analyzer is about a verdict
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Verdict is the analyzer's full judgment on one claim
type Verdict struct {
	Label            VerdictLabel `json:"label"`
	Confidence       Confidence   `json:"confidence"`
	Explanation      string       `json:"explanation"`
	EvidenceSnippets []string     `json:"evidenceSnippets"`
	Context          string       `json:"context,omitempty"`
}

// ClaimResult pairs a claim with its verdict and the sources the evidence came from.
// Sources are URL tokens lifted from the raw evidence text, capped at 5,
// in gathering order; duplicates are possible.
type ClaimResult struct {
	Claim   string   `json:"claim"`
	Verdict Verdict  `json:"verdict"`
	Sources []string `json:"sources"`
}

// Status is the lifecycle state of a fact-check request
type Status string

const (
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// FactCheckResult is the persisted record for one fact-check request.
// A record is written once at acceptance with StatusProcessing and
// overwritten exactly once more when the pipeline reaches a terminal state.
type FactCheckResult struct {
	RequestID         string        `json:"requestId"`
	Status            Status        `json:"status"`
	TweetText         string        `json:"tweetText"`
	TweetURL          string        `json:"tweetUrl,omitempty"`
	ClaimResults      []ClaimResult `json:"claimResults"`
	OverallAssessment string        `json:"overallAssessment"`
	CheckedAt         time.Time     `json:"checkedAt"`
	Error             string        `json:"error,omitempty"`
}

// NoClaimsAssessment is the fixed assessment used for the complete state
// in which extraction found nothing verifiable.
const NoClaimsAssessment = "No verifiable factual claims were found in this post. " +
	"It appears to contain opinions, predictions, or subjective statements."
