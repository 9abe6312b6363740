// Package scroll classifies short-window scrolling behavior from raw
// position samples. The profiler is a two-state machine (idle/scrolling)
// with a rearm-on-event debounce timer and a bounded sample history.
package scroll

import (
	"sync"
	"time"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
)

// Direction of a scroll sample.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Sample is one recorded scroll observation. Samples are immutable values;
// readers always receive copies.
type Sample struct {
	// Velocity in pixels per second, non-negative.
	Velocity float64 `json:"velocity"`

	// Direction of travel.
	Direction Direction `json:"direction"`

	// DwellMs is the time spent idle before this event, 0 while actively
	// scrolling.
	DwellMs int64 `json:"dwell_ms"`

	// At is the sample's timestamp.
	At time.Time `json:"at"`
}

// State is a snapshot of the profiler.
type State struct {
	IsScrolling      bool    `json:"is_scrolling"`
	RapidScrollCount int     `json:"rapid_scroll_count"`
	CurrentVelocity  float64 `json:"current_velocity"`
	DwellMs          int64   `json:"dwell_ms"`
}

// Classification thresholds for rage scrolling.
const (
	minClassifySamples  = 3
	minIntensitySamples = 2
	rapidRatioThreshold = 0.6
	reversalThreshold   = 3
	lowDwellMs          = 500
	lowDwellRapidRatio  = 0.4
	dwellNormalizerMs   = 2000
)

// Profiler consumes raw (position, timestamp) scroll events and exposes
// rage-scroll classification over a sliding window. Safe for concurrent
// reads while the event handler writes.
type Profiler struct {
	mu sync.Mutex

	rapidVelocity  float64
	debounce       time.Duration
	capacity       int
	horizon        time.Duration
	classifyWindow time.Duration

	scrolling  bool
	paused     bool
	anchored   bool
	lastPos    float64
	lastAt     time.Time
	lastIdleAt time.Time

	velocity   float64
	rapidCount int
	samples    []Sample

	timer *time.Timer

	// now is the clock; replaced in tests.
	now func() time.Time
}

// NewProfiler builds a profiler from config, applying defaults for unset
// fields.
func NewProfiler(cfg config.ScrollConfig) *Profiler {
	rapid := cfg.RapidVelocity
	if rapid <= 0 {
		rapid = 1000
	}
	capacity := cfg.HistoryCapacity
	if capacity <= 0 {
		capacity = 100
	}

	p := &Profiler{
		rapidVelocity:  rapid,
		debounce:       config.Duration(cfg.Debounce, 150*time.Millisecond),
		capacity:       capacity,
		horizon:        config.Duration(cfg.HistoryHorizon, 5*time.Minute),
		classifyWindow: config.Duration(cfg.ClassifyWindow, 10*time.Second),
		samples:        make([]Sample, 0, capacity),
		now:            time.Now,
	}
	p.lastIdleAt = p.now()
	return p
}

// OnScroll records one raw scroll event. The first event after construction,
// Resume, or Pause only re-anchors position tracking so no spurious velocity
// is synthesized from the gap.
func (p *Profiler) OnScroll(position float64, at time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return
	}

	if !p.anchored {
		p.anchored = true
		p.lastPos = position
		p.lastAt = at
		p.enterScrollingLocked()
		return
	}

	dt := at.Sub(p.lastAt)
	if dt <= 0 {
		dt = time.Millisecond
	}
	delta := position - p.lastPos
	velocity := abs(delta) / dt.Seconds()

	direction := DirectionDown
	if delta < 0 {
		direction = DirectionUp
	}

	var dwellMs int64
	if !p.scrolling && !p.lastIdleAt.IsZero() {
		dwellMs = at.Sub(p.lastIdleAt).Milliseconds()
		if dwellMs < 0 {
			dwellMs = 0
		}
	}

	sample := Sample{
		Velocity:  velocity,
		Direction: direction,
		DwellMs:   dwellMs,
		At:        at,
	}
	if len(p.samples) >= p.capacity {
		p.samples = p.samples[1:]
	}
	p.samples = append(p.samples, sample)
	metrics.RecordScrollSample()

	p.lastPos = position
	p.lastAt = at
	p.velocity = velocity
	if velocity > p.rapidVelocity {
		p.rapidCount++
	}
	p.enterScrollingLocked()
}

// enterScrollingLocked transitions to scrolling and rearms the quiet timer.
func (p *Profiler) enterScrollingLocked() {
	p.scrolling = true
	if p.timer == nil {
		p.timer = time.AfterFunc(p.debounce, p.onQuiet)
	} else {
		p.timer.Reset(p.debounce)
	}
}

// onQuiet fires after the debounce window with no further events.
func (p *Profiler) onQuiet() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.scrolling {
		return
	}
	p.scrolling = false
	p.lastIdleAt = p.now()
	p.velocity = 0
	if p.rapidCount > 0 {
		p.rapidCount--
	}
	logging.Debugf("Scroll session idle; rapid count now %d", p.rapidCount)
}

// CurrentState returns a snapshot of the profiler.
func (p *Profiler) CurrentState() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	var dwellMs int64
	if !p.scrolling && !p.lastIdleAt.IsZero() {
		dwellMs = p.now().Sub(p.lastIdleAt).Milliseconds()
		if dwellMs < 0 {
			dwellMs = 0
		}
	}
	return State{
		IsScrolling:      p.scrolling,
		RapidScrollCount: p.rapidCount,
		CurrentVelocity:  p.velocity,
		DwellMs:          dwellMs,
	}
}

// RecentMetrics returns copies of all samples within the given window.
func (p *Profiler) RecentMetrics(window time.Duration) []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.samplesSinceLocked(p.now().Add(-window))
}

func (p *Profiler) samplesSinceLocked(cutoff time.Time) []Sample {
	var out []Sample
	for _, s := range p.samples {
		if s.At.After(cutoff) {
			out = append(out, s)
		}
	}
	return out
}

// IsRageScrolling classifies the recent window as compulsive scrolling.
// Requires at least 3 samples; flags on a high rapid-velocity ratio, many
// direction reversals, or short dwell combined with a moderate rapid ratio.
func (p *Profiler) IsRageScrolling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	recent := p.samplesSinceLocked(p.now().Add(-p.classifyWindow))
	if len(recent) < minClassifySamples {
		metrics.SetRageScrollActive(false)
		return false
	}

	ratio, reversals, meanDwell := p.windowStats(recent)
	active := ratio > rapidRatioThreshold ||
		reversals > reversalThreshold ||
		(meanDwell < lowDwellMs && ratio > lowDwellRapidRatio)

	metrics.SetRageScrollActive(active)
	return active
}

// RageScrollIntensity scores the recent window in [0, 1] as a fixed linear
// blend of rapid ratio, reversal density, and inverse dwell time. Requires at
// least 2 samples.
func (p *Profiler) RageScrollIntensity() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	recent := p.samplesSinceLocked(p.now().Add(-p.classifyWindow))
	if len(recent) < minIntensitySamples {
		return 0
	}

	ratio, reversals, meanDwell := p.windowStats(recent)

	denom := float64(len(recent) - 1)
	if denom < 1 {
		denom = 1
	}
	reversalTerm := float64(reversals) / denom

	dwellTerm := 1 - meanDwell/dwellNormalizerMs
	if dwellTerm < 0 {
		dwellTerm = 0
	}

	intensity := 0.4*ratio + 0.3*reversalTerm + 0.3*dwellTerm
	if intensity > 1 {
		intensity = 1
	}
	if intensity < 0 {
		intensity = 0
	}
	return intensity
}

// windowStats computes the rapid-velocity ratio, direction reversal count,
// and mean dwell in milliseconds over the given samples.
func (p *Profiler) windowStats(samples []Sample) (ratio float64, reversals int, meanDwellMs float64) {
	rapid := 0
	totalDwell := int64(0)
	for i, s := range samples {
		if s.Velocity > p.rapidVelocity {
			rapid++
		}
		totalDwell += s.DwellMs
		if i > 0 && s.Direction != samples[i-1].Direction {
			reversals++
		}
	}
	n := float64(len(samples))
	return float64(rapid) / n, reversals, float64(totalDwell) / n
}

// Cleanup drops samples older than the history horizon.
func (p *Profiler) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := p.now().Add(-p.horizon)
	kept := p.samples[:0]
	for _, s := range p.samples {
		if s.At.After(cutoff) {
			kept = append(kept, s)
		}
	}
	p.samples = kept
}

// Pause suspends sampling (e.g. page hidden). Position anchors are dropped
// so resuming never synthesizes a huge velocity from the hidden interval.
func (p *Profiler) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.paused = true
	p.anchored = false
	if p.timer != nil {
		p.timer.Stop()
	}
	if p.scrolling {
		p.scrolling = false
		p.lastIdleAt = p.now()
		p.velocity = 0
	}
}

// Resume re-enables sampling after a Pause.
func (p *Profiler) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
}

// Close stops the debounce timer. The profiler must not be used afterwards.
func (p *Profiler) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
