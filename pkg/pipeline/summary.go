package pipeline

import (
	"fmt"

	"github.com/ExpiredOTM/RealityCheck/pkg/detector/distortion"
)

// AnalysisSummary is a consumer-facing digest of one record.
type AnalysisSummary struct {
	// Sentiment is a categorical label derived from valence, with a
	// high-arousal suffix when arousal exceeds 0.6.
	Sentiment string `json:"sentiment"`

	// RiskScore is the fused risk in [0, 1].
	RiskScore float64 `json:"risk_score"`

	// RiskLevel is low, medium, or high.
	RiskLevel string `json:"risk_level"`

	// PrimaryConcerns lists what drove the risk, in fixed order:
	// dominant distortion category, hostile language, elevated arousal.
	PrimaryConcerns []string `json:"primary_concerns"`

	// Recommendation is keyed off the risk level only.
	Recommendation string `json:"recommendation"`
}

// Arousal thresholds for summary labeling.
const (
	positiveValence   = 0.3
	negativeValence   = -0.3
	highArousal       = 0.6
	elevatedArousal   = 0.8
	highArousalSuffix = " (high arousal)"
)

// Summarize derives the consumer-facing summary from a record.
func (p *Pipeline) Summarize(rec *Record) AnalysisSummary {
	if rec == nil {
		return AnalysisSummary{
			Sentiment:      "neutral",
			RiskLevel:      "low",
			Recommendation: recommendationFor("low"),
		}
	}

	label := "neutral"
	switch {
	case rec.Sentiment.Valence > positiveValence:
		label = "positive"
	case rec.Sentiment.Valence < negativeValence:
		label = "negative"
	}
	if rec.Sentiment.Arousal > highArousal {
		label += highArousalSuffix
	}

	score := p.RiskScore(rec)
	level := RiskLevel(score)

	var concerns []string
	if len(rec.Distortions) > 0 {
		summary := distortion.Summarize(rec.Distortions)
		concerns = append(concerns, fmt.Sprintf("cognitive distortion: %s", summary.PrimaryCategory))
	}
	if len(rec.Rage) > 0 {
		concerns = append(concerns, "hostile language")
	}
	if rec.Sentiment.Arousal > elevatedArousal {
		concerns = append(concerns, "elevated arousal")
	}

	return AnalysisSummary{
		Sentiment:       label,
		RiskScore:       score,
		RiskLevel:       level,
		PrimaryConcerns: concerns,
		Recommendation:  recommendationFor(level),
	}
}

func recommendationFor(level string) string {
	switch level {
	case "high":
		return "Strong distress signals detected. Consider stepping away from this feed and checking in with how you feel."
	case "medium":
		return "Some agitation detected in recent content. A short break may help."
	default:
		return "No significant concerns detected."
	}
}
