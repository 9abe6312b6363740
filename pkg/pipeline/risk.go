package pipeline

import (
	"strings"

	"github.com/ExpiredOTM/RealityCheck/pkg/detector/rage"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
)

// RiskScore fuses a record's detector outputs into a single risk in [0, 1]:
// a weighted sum of sentiment risk, distortion risk recomputed over the
// concatenated distortion contexts, and rage risk over the record's
// indicators.
func (p *Pipeline) RiskScore(rec *Record) float64 {
	if rec == nil {
		return 0
	}

	sentimentRisk := (-rec.Sentiment.Valence + rec.Sentiment.Arousal) / 2
	if sentimentRisk < 0 {
		sentimentRisk = 0
	}

	distortionRisk := 0.0
	if len(rec.Distortions) > 0 {
		contexts := make([]string, 0, len(rec.Distortions))
		for _, ind := range rec.Distortions {
			contexts = append(contexts, ind.Context)
		}
		distortionRisk = p.distortion.CalculateRisk(strings.Join(contexts, " "))
	}

	rageRisk := rage.CalculateRisk(rec.Rage)

	score := clamp01(p.risk.SentimentWeight*sentimentRisk +
		p.risk.DistortionWeight*distortionRisk +
		p.risk.RageWeight*rageRisk)

	metrics.RecordRiskLevel(RiskLevel(score))
	return score
}

// RiskLevel buckets a risk score: low below 0.4, medium through 0.7, high
// above.
func RiskLevel(score float64) string {
	switch {
	case score > 0.7:
		return "high"
	case score >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// FuseRisk blends a text risk score with a scroll intensity using the given
// scroll weight in [0, 1]. Fusion of the two streams is a caller-level
// concern; this helper just keeps the arithmetic in one place.
func FuseRisk(textRisk, scrollIntensity, scrollWeight float64) float64 {
	scrollWeight = clamp01(scrollWeight)
	return clamp01((1-scrollWeight)*clamp01(textRisk) + scrollWeight*clamp01(scrollIntensity))
}
