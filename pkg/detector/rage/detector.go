// Package rage detects aggressive and hostile language in short runs of
// text: weighted rule-table matches plus structural signals (caps lock,
// exclamation spam, profanity).
package rage

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/metrics"
	"github.com/ExpiredOTM/RealityCheck/pkg/patterns"
)

// minTextLength is the shortest text worth scanning. Anything below it yields
// an empty indicator set.
const minTextLength = 10

// Indicator is one detected rage signal. Values are immutable once returned.
type Indicator struct {
	// Category is one of the Category* constants.
	Category string `json:"category"`

	// Intensity is the signal strength in [0, 1].
	Intensity float64 `json:"intensity"`

	// MatchedText is the literal substring that triggered the signal.
	MatchedText string `json:"matched_text"`

	// Context is a bounded snippet surrounding the match. It contains
	// MatchedText whenever the match is locatable.
	Context string `json:"context"`
}

// Detector scans text for rage indicators. Safe for concurrent use; the rule
// table may be mutated between calls via Table().
type Detector struct {
	table     *patterns.Table
	profanity []*regexp.Regexp
	capsRun   *regexp.Regexp
	exclaim   *regexp.Regexp
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
		logging.Warnf("Rage rule table built with errors: %v", err)
	}
	if table.Len() == 0 {
		return nil, err
	}

	profanity := make([]*regexp.Regexp, 0, len(profanityPatterns))
	for _, p := range profanityPatterns {
		profanity = append(profanity, regexp.MustCompile(p))
	}

	return &Detector{
		table:     table,
		profanity: profanity,
		capsRun:   regexp.MustCompile(`[A-Z]{3,}`),
		exclaim:   regexp.MustCompile(`!{2,}`),
	}, nil
}

// Table exposes the rule table for runtime management.
func (d *Detector) Table() *patterns.Table { return d.table }

// Detect scans text and returns all rage indicators sorted by descending
// intensity. Deterministic for a given enabled-rule state; holds no reference
// to text after returning.
func (d *Detector) Detect(text string) []Indicator {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil
	}

	lower := strings.ToLower(text)
	// Lowercasing can change byte length for some scripts; match indices are
	// only transferable to the original text when the lengths agree.
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
		intensity := clamp01(rule.Weight + 0.1*float64(len(locs)-1))
		start, end := locs[0][0], locs[0][1]
		indicators = append(indicators, Indicator{
			Category:    rule.Category,
			Intensity:   intensity,
			MatchedText: strings.Clone(source[start:end]),
			Context:     patterns.Snippet(source, start, end),
		})
	}

	if ind, ok := d.detectCapsLock(text); ok {
		indicators = append(indicators, ind)
	}
	if ind, ok := d.detectExclamationSpam(text); ok {
		indicators = append(indicators, ind)
	}
	if ind, ok := d.detectProfanity(text, lower); ok {
		indicators = append(indicators, ind)
	}

	sort.SliceStable(indicators, func(i, j int) bool {
		return indicators[i].Intensity > indicators[j].Intensity
	})

	for _, ind := range indicators {
		metrics.RecordIndicator("rage", ind.Category)
	}
	return indicators
}

// detectCapsLock flags shouting. Only texts with more than 10 alphabetic
// characters are considered, so short acronyms don't trip it.
func (d *Detector) detectCapsLock(text string) (Indicator, bool) {
	var letters, upper int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters <= 10 {
		return Indicator{}, false
	}

	ratio := float64(upper) / float64(letters)
	runs := d.capsRun.FindAllStringIndex(text, -1)
	if ratio <= 0.5 && len(runs) == 0 {
		return Indicator{}, false
	}

	matched := ""
	ctx := patterns.Snippet(text, 0, len(text))
	if len(runs) > 0 {
		matched = strings.Clone(text[runs[0][0]:runs[0][1]])
		ctx = patterns.Snippet(text, runs[0][0], runs[0][1])
	}

	return Indicator{
		Category:    CategoryCapsLock,
		Intensity:   clamp01(ratio + 0.2*float64(len(runs))),
		MatchedText: matched,
		Context:     ctx,
	}, true
}

// detectExclamationSpam flags runs of two or more exclamation marks.
func (d *Detector) detectExclamationSpam(text string) (Indicator, bool) {
	runs := d.exclaim.FindAllStringIndex(text, -1)
	if len(runs) == 0 {
		return Indicator{}, false
	}

	maxRun := 0
	for _, loc := range runs {
		if n := loc[1] - loc[0]; n > maxRun {
			maxRun = n
		}
	}

	return Indicator{
		Category:    CategoryExclamation,
		Intensity:   clamp01(0.2*float64(maxRun-1) + 0.1*float64(len(runs))),
		MatchedText: strings.Clone(text[runs[0][0]:runs[0][1]]),
		Context:     patterns.Snippet(text, runs[0][0], runs[0][1]),
	}, true
}

// detectProfanity aggregates all profanity family matches into a single
// indicator whose intensity grows with the total match count.
func (d *Detector) detectProfanity(text, lower string) (Indicator, bool) {
	total := 0
	first := []int(nil)
	for _, expr := range d.profanity {
		locs := expr.FindAllStringIndex(lower, -1)
		total += len(locs)
		if first == nil && len(locs) > 0 {
			first = locs[0]
		}
	}
	if total == 0 {
		return Indicator{}, false
	}

	source := text
	if len(lower) != len(text) {
		source = lower
	}
	return Indicator{
		Category:    CategoryProfanity,
		Intensity:   clamp01(0.3 * float64(total)),
		MatchedText: strings.Clone(source[first[0]:first[1]]),
		Context:     patterns.Snippet(source, first[0], first[1]),
	}, true
}

// CalculateRisk combines indicators into a single rage risk in [0, 1].
// The sum is halved so one maximal indicator cannot saturate the score on
// its own.
func CalculateRisk(indicators []Indicator) float64 {
	if len(indicators) == 0 {
		return 0
	}
	total := 0.0
	for _, ind := range indicators {
		weight, ok := typeWeights[ind.Category]
		if !ok {
			weight = 0.5
		}
		total += ind.Intensity * weight
	}
	return clamp01(total / 2)
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
