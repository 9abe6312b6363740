// Package distortion detects cognitive-distortion language (persecution,
// grandiosity, conspiracy, catastrophizing, all-or-nothing, mind reading,
// fortune telling) in short runs of text.
package distortion

import (
	"math"
	"sort"
	"strings"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
	"github.com/ExpiredOTM/RealityCheck/pkg/patterns"
)

const minTextLength = 10

// repetitionBonusCap bounds the severity boost from repeated matches of one
// rule, so a copy-pasted phrase cannot dominate on repetition alone.
const repetitionBonusCap = 0.5

// Indicator is one detected distortion. Values are immutable once returned.
type Indicator struct {
	// Category is one of the Category* constants.
	Category string `json:"category"`

	// Severity is the signal strength in [0, 1].
	Severity float64 `json:"severity"`

	// MatchedText is the literal substring that triggered the rule.
	MatchedText string `json:"matched_text"`

	// Context is a bounded snippet surrounding the match. It contains
	// MatchedText whenever the match is locatable.
	Context string `json:"context"`
}

// Summary condenses a set of indicators. CategoryCounts always enumerates
// every category, zero-filled when absent.
type Summary struct {
	// TotalSeverity is the severity sum clamped to [0, 1].
	TotalSeverity float64 `json:"total_severity"`

	// PrimaryCategory is the category of the single highest-severity
	// indicator, or "" when there are none.
	PrimaryCategory string `json:"primary_category"`

	// CategoryCounts maps every category to its indicator count.
	CategoryCounts map[string]int `json:"category_counts"`
}

// Detector scans text for cognitive distortions. Safe for concurrent use;
// the rule table may be mutated between calls via Table().
type Detector struct {
	table *patterns.Table
}

// New builds a detector from the given rule table. Empty cfgRules selects the
// built-in table. Malformed rules are skipped with a log line; construction
// only fails when no rule survives.
func New(cfgRules []config.RuleConfig) (*Detector, error) {
	if len(cfgRules) == 0 {
		cfgRules = DefaultRules()
	}
	table, err := patterns.NewTable(cfgRules)
	if err != nil {
		logging.Warnf("Distortion rule table built with errors: %v", err)
	}
	if table.Len() == 0 {
		return nil, err
	}
	return &Detector{table: table}, nil
}

// Table exposes the rule table for runtime management.
func (d *Detector) Table() *patterns.Table { return d.table }

// Detect scans text and returns all distortion indicators sorted by
// descending severity. Deterministic for a given enabled-rule state; holds no
// reference to text after returning.
func (d *Detector) Detect(text string) []Indicator {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil
	}

	lower := strings.ToLower(text)
	source := text
	if len(lower) != len(text) {
		source = lower
	}

	var indicators []Indicator
	for _, rule := range d.table.Enabled() {
		locs := rule.Expr.FindAllStringIndex(lower, -1)
		if len(locs) == 0 {
			continue
		}
		bonus := math.Min(0.1*float64(len(locs)-1), repetitionBonusCap)
		start, end := locs[0][0], locs[0][1]
		indicators = append(indicators, Indicator{
			Category:    rule.Category,
			Severity:    clamp01(rule.Weight + bonus),
			MatchedText: strings.Clone(source[start:end]),
			Context:     patterns.Snippet(source, start, end),
		})
	}

	sort.SliceStable(indicators, func(i, j int) bool {
		return indicators[i].Severity > indicators[j].Severity
	})

	for _, ind := range indicators {
		metrics.RecordIndicator("distortion", ind.Category)
	}
	return indicators
}

// Summarize condenses indicators into totals. The count map covers all
// categories even when empty.
func Summarize(indicators []Indicator) Summary {
	counts := make(map[string]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}

	total := 0.0
	primary := ""
	best := -1.0
	for _, ind := range indicators {
		counts[ind.Category]++
		total += ind.Severity
		if ind.Severity > best {
			best = ind.Severity
			primary = ind.Category
		}
	}

	return Summary{
		TotalSeverity:   clamp01(total),
		PrimaryCategory: primary,
		CategoryCounts:  counts,
	}
}

// CalculateRisk runs detection on text and combines a category-weighted
// match-count term with the clamped total severity into a risk in [0, 1].
func (d *Detector) CalculateRisk(text string) float64 {
	indicators := d.Detect(text)
	if len(indicators) == 0 {
		return 0
	}
	summary := Summarize(indicators)

	weighted := 0.0
	for category, count := range summary.CategoryCounts {
		weight, ok := categoryRiskWeights[category]
		if !ok {
			weight = 0.5
		}
		weighted += weight * float64(count) * 0.1
	}

	return clamp01(weighted + 0.5*summary.TotalSeverity)
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
