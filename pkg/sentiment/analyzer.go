package sentiment

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
)

// Analyzer produces enhanced sentiment readings from text, degrading to a
// zero reading whenever the underlying classifier is unavailable. Safe for
// concurrent use.
type Analyzer struct {
	classifier    Classifier
	maxTextLen    int
	readyAttempts int
	readyInterval time.Duration
	ready         atomic.Bool
}

// NewAnalyzer wraps a classifier with normalization, readiness tracking, and
// rule enhancement. A nil classifier yields a permanently degraded analyzer.
func NewAnalyzer(classifier Classifier, cfg config.SentimentConfig) *Analyzer {
	attempts := cfg.ReadyAttempts
	if attempts <= 0 {
		attempts = 30
	}
	maxLen := cfg.MaxTextLength
	if maxLen <= 0 {
		maxLen = defaultMaxTextLength
	}
	return &Analyzer{
		classifier:    classifier,
		maxTextLen:    maxLen,
		readyAttempts: attempts,
		readyInterval: config.Duration(cfg.ReadyInterval, time.Second),
	}
}

// WaitReady polls the classifier until it reports ready, the attempt budget
// is exhausted, or ctx is cancelled. It never blocks indefinitely. Returns
// whether the analyzer is usable; when false the analyzer keeps producing
// zero readings rather than failing.
func (a *Analyzer) WaitReady(ctx context.Context) bool {
	if a.classifier == nil {
		logging.Warnf("No sentiment classifier configured; analyses will carry zero sentiment")
		return false
	}

	for attempt := 1; attempt <= a.readyAttempts; attempt++ {
		if a.classifier.Ready(ctx) {
			a.ready.Store(true)
			logging.Infof("Sentiment classifier ready after %d attempt(s)", attempt)
			return true
		}
		select {
		case <-ctx.Done():
			logging.Warnf("Sentiment readiness polling cancelled: %v", ctx.Err())
			return false
		case <-time.After(a.readyInterval):
		}
	}

	logging.Warnf("Sentiment classifier not ready after %d attempts; continuing degraded", a.readyAttempts)
	return false
}

// Ready reports whether the classifier has come up.
func (a *Analyzer) Ready() bool { return a.ready.Load() }

// Analyze scores text and applies the rule enhancer. On any classifier
// failure it returns the zero reading; the error never propagates.
func (a *Analyzer) Analyze(ctx context.Context, text string) Reading {
	normalized := Normalize(text, a.maxTextLen)
	if normalized == "" {
		return Reading{}
	}
	lower := strings.ToLower(normalized)

	if a.classifier == nil || !a.ready.Load() {
		metrics.RecordSentimentDegraded()
		return Reading{}
	}

	result, err := a.classifier.Classify(ctx, normalized)
	if err != nil {
		logging.Warnf("Sentiment classification failed, degrading to zero reading: %v", err)
		metrics.RecordSentimentDegraded()
		return Reading{}
	}

	return Enhance(fromClassification(result), lower)
}

// fromClassification maps the raw label/score pair onto the valence/arousal
// plane. Scores act as magnitude; the enhancer refines both axes afterwards.
func fromClassification(c Classification) Reading {
	score := clamp01(c.Score)
	r := Reading{Confidence: score}

	switch strings.ToLower(c.Label) {
	case "positive":
		r.Valence = score
		r.Arousal = 0.5 * score
	case "negative":
		r.Valence = -score
		r.Arousal = 0.7 * score
	default:
		r.Arousal = 0.1 * score
	}
	return r.Clamp()
}
