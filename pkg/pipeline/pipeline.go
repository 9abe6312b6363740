// Package pipeline orchestrates the text detectors per content item: the
// rage detector, distortion detector, and sentiment analyzer run concurrently
// over an immutable text snapshot and their outputs merge into a single
// analysis record with a confidence and a fused risk score.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/detector/distortion"
	"github.com/ExpiredOTM/RealityCheck/pkg/detector/rage"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
	"github.com/ExpiredOTM/RealityCheck/pkg/sentiment"
)

// minItemTextLength mirrors the extraction layer's own minimum-length
// filtering: shorter items are "nothing to analyze", not errors.
const minItemTextLength = 10

// maxBatchConcurrency bounds parallel item analysis in a batch.
const maxBatchConcurrency = 8

// Item is one unit of text delivered by a collaborator.
type Item struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	PlatformTag string    `json:"platform_tag,omitempty"`
	ContentTag  string    `json:"content_tag,omitempty"`
}

// NewItem builds an item with a fresh ID and the current timestamp.
func NewItem(text, platformTag, contentTag string) Item {
	return Item{
		ID:          uuid.NewString(),
		Text:        text,
		Timestamp:   time.Now(),
		PlatformTag: platformTag,
		ContentTag:  contentTag,
	}
}

// Record is the merged output of one analyzed item. A nil *Record means no
// detector produced anything; a present record with empty indicator slices
// means the item was analyzed and found clean.
type Record struct {
	ItemID           string                 `json:"item_id,omitempty"`
	Sentiment        sentiment.Reading      `json:"sentiment"`
	Distortions      []distortion.Indicator `json:"distortions"`
	Rage             []rage.Indicator       `json:"rage"`
	Confidence       float64                `json:"confidence"`
	ProcessingTimeMs float64                `json:"processing_time_ms"`
}

// Pipeline runs the three analyzers per item and merges their outputs. Safe
// for concurrent use.
type Pipeline struct {
	rage       *rage.Detector
	distortion *distortion.Detector
	sentiment  *sentiment.Analyzer
	risk       config.RiskConfig
	degraded   bool
}

// New builds a pipeline from config. The sentiment classifier may be nil;
// the pipeline then runs permanently degraded.
func New(cfg *config.EngineConfig, classifier sentiment.Classifier) (*Pipeline, error) {
	if cfg == nil {
		cfg = &config.EngineConfig{}
	}

	rageDet, err := rage.New(cfg.RageRules)
	if err != nil {
		return nil, err
	}
	distDet, err := distortion.New(cfg.DistortionRules)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		rage:       rageDet,
		distortion: distDet,
		sentiment:  sentiment.NewAnalyzer(classifier, cfg.Sentiment),
		risk:       normalizeRiskWeights(cfg.Risk),
	}, nil
}

// Init waits for the sentiment collaborator with a bounded retry budget.
// When it never becomes ready the pipeline proceeds degraded; Init never
// blocks indefinitely and never fails the rule-based detectors.
func (p *Pipeline) Init(ctx context.Context) {
	if !p.sentiment.WaitReady(ctx) {
		p.degraded = true
		logging.Warnf("Pipeline initialized in degraded mode (no sentiment)")
		return
	}
	logging.Infof("Pipeline initialized")
}

// Degraded reports whether the pipeline is running without sentiment.
func (p *Pipeline) Degraded() bool { return p.degraded }

// RageDetector exposes the rage detector (rule management, risk helper).
func (p *Pipeline) RageDetector() *rage.Detector { return p.rage }

// DistortionDetector exposes the distortion detector.
func (p *Pipeline) DistortionDetector() *distortion.Detector { return p.distortion }

// Analyze runs all detectors concurrently over the item and merges their
// outputs. Returns nil when nothing fired: no sentiment signal, no
// distortions, no rage indicators.
func (p *Pipeline) Analyze(ctx context.Context, item Item) *Record {
	start := time.Now()

	text := item.Text
	if len(strings.TrimSpace(text)) < minItemTextLength {
		metrics.RecordAnalysis(time.Since(start).Seconds(), "skipped")
		return nil
	}

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		reading     sentiment.Reading
		distortions []distortion.Indicator
		rageInds    []rage.Indicator
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		inds := p.rage.Detect(text)
		mu.Lock()
		rageInds = inds
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		inds := p.distortion.Detect(text)
		mu.Lock()
		distortions = inds
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		r := p.sentiment.Analyze(ctx, text)
		mu.Lock()
		reading = r
		mu.Unlock()
	}()
	wg.Wait()

	elapsed := time.Since(start)
	if reading.IsZero() && len(distortions) == 0 && len(rageInds) == 0 {
		metrics.RecordAnalysis(elapsed.Seconds(), "empty")
		return nil
	}

	rec := &Record{
		ItemID:           item.ID,
		Sentiment:        reading,
		Distortions:      distortions,
		Rage:             rageInds,
		ProcessingTimeMs: float64(elapsed.Microseconds()) / 1000.0,
	}
	rec.Confidence = combineConfidence(reading, distortions, rageInds)

	metrics.RecordAnalysis(elapsed.Seconds(), "record")
	logging.Debugf("Analyzed item %s: %d distortions, %d rage indicators, confidence %.2f",
		item.ID, len(distortions), len(rageInds), rec.Confidence)
	return rec
}

// AnalyzeBatch analyzes items in parallel. The result is index-aligned with
// the input; items that fired nothing hold nil. An empty input returns an
// empty slice.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, items []Item) []*Record {
	results := make([]*Record, len(items))
	if len(items) == 0 {
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			results[i] = p.Analyze(gctx, items[i])
			return nil
		})
	}
	// Workers never return errors; per-item failures degrade to nil slots.
	_ = g.Wait()
	return results
}

// combineConfidence averages whichever confidence factors are present:
// sentiment confidence, a distortion-derived factor, and a rage-derived
// factor. Missing signals are excluded rather than counted as zero.
func combineConfidence(reading sentiment.Reading, distortions []distortion.Indicator, rageInds []rage.Indicator) float64 {
	var factors []float64

	if reading.Confidence > 0 {
		factors = append(factors, reading.Confidence)
	}
	if n := len(distortions); n > 0 {
		mean := 0.0
		for _, ind := range distortions {
			mean += ind.Severity
		}
		mean /= float64(n)
		factors = append(factors, clamp01(0.2*float64(n)+mean))
	}
	if n := len(rageInds); n > 0 {
		mean := 0.0
		for _, ind := range rageInds {
			mean += ind.Intensity
		}
		mean /= float64(n)
		factors = append(factors, clamp01(0.2*float64(n)+mean))
	}

	if len(factors) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range factors {
		total += f
	}
	return total / float64(len(factors))
}

func normalizeRiskWeights(rc config.RiskConfig) config.RiskConfig {
	sum := rc.SentimentWeight + rc.DistortionWeight + rc.RageWeight
	if sum == 0 {
		return config.RiskConfig{SentimentWeight: 0.3, DistortionWeight: 0.4, RageWeight: 0.3}
	}
	rc.SentimentWeight /= sum
	rc.DistortionWeight /= sum
	rc.RageWeight /= sum
	return rc
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
