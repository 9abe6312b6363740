package rage

import "github.com/ExpiredOTM/RealityCheck/pkg/config"

// Indicator categories. Rule-table hits use the first three; the structural
// detectors emit the rest.
const (
	CategoryVerbalAggression = "verbal_aggression"
	CategoryThreat           = "threat"
	CategoryExtremeAnger     = "extreme_anger"
	CategoryCapsLock         = "caps_lock"
	CategoryExclamation      = "exclamation"
	CategoryProfanity        = "profanity"
)

// typeWeights scale each category's contribution to the combined rage risk.
var typeWeights = map[string]float64{
	CategoryThreat:           1.0,
	CategoryVerbalAggression: 0.9,
	CategoryExtremeAnger:     0.9,
	CategoryProfanity:        0.6,
	CategoryCapsLock:         0.4,
	CategoryExclamation:      0.3,
}

// DefaultRules returns the built-in rage rule table. Patterns are matched
// against lower-cased text and pair an aggressor clause with a target clause
// to avoid firing on isolated words.
func DefaultRules() []config.RuleConfig {
	return []config.RuleConfig{
		// Verbal aggression
		{
			ID:       "va_hate",
			Category: CategoryVerbalAggression,
			Weight:   0.65,
			Pattern:  `\b(?:i\s+)?(?:hate|despise|loathe)\s+(?:you|u|them|him|her|everyone|everybody|this|it)\b`,
		},
		{
			ID:       "va_insult",
			Category: CategoryVerbalAggression,
			Weight:   0.6,
			Pattern:  `\byou(?:'re|\s+are)?\s+(?:so\s+|such\s+a\s+|an?\s+)?(?:stupid|dumb|idiot(?:ic)?|moron(?:ic)?|pathetic|worthless|trash|garbage|disgusting)\b`,
		},
		{
			ID:       "va_shutup",
			Category: CategoryVerbalAggression,
			Weight:   0.55,
			Pattern:  `\b(?:shut\s+(?:the\s+\w+\s+)?up|shut\s+it|nobody\s+asked\s+you|get\s+out\s+of\s+my\s+face)\b`,
		},
		{
			ID:       "va_disgust",
			Category: CategoryVerbalAggression,
			Weight:   0.5,
			Pattern:  `\b(?:you|they)\s+(?:disgust|sicken|repulse)\s+(?:me|us)\b`,
		},

		// Threat language
		{
			ID:       "th_direct",
			Category: CategoryThreat,
			Weight:   0.9,
			Pattern:  `\bi(?:'ll|\s+will|'m\s+going\s+to|\s+am\s+going\s+to|\s+might)\s+(?:kill|hurt|destroy|end|beat|smash|ruin)\s+(?:you|u|them|him|her)\b`,
		},
		{
			ID:       "th_wish",
			Category: CategoryThreat,
			Weight:   0.85,
			Pattern:  `\b(?:you|they|he|she)\s+(?:deserves?\s+to\s+(?:die|suffer)|should\s+(?:die|be\s+dead|disappear\s+forever))\b`,
		},
		{
			ID:       "th_warning",
			Category: CategoryThreat,
			Weight:   0.8,
			Pattern:  `\b(?:you(?:'ll|\s+will)\s+(?:regret|pay\s+for)\s+(?:this|that|it)|watch\s+your\s+back|i\s+know\s+where\s+you\s+live)\b`,
		},

		// Extreme anger phrasing
		{
			ID:       "ea_furious",
			Category: CategoryExtremeAnger,
			Weight:   0.6,
			Pattern:  `\b(?:i(?:'m|\s+am)\s+(?:so\s+|absolutely\s+)?(?:furious|livid|seething|enraged)|makes?\s+my\s+blood\s+boil)\b`,
		},
		{
			ID:       "ea_explode",
			Category: CategoryExtremeAnger,
			Weight:   0.55,
			Pattern:  `\b(?:about\s+to\s+(?:explode|snap|lose\s+it)|losing\s+my\s+mind\s+(?:over|at|with)|can(?:'t|not)\s+take\s+(?:this|it)\s+anymore)\b`,
		},
		{
			ID:       "ea_fedup",
			Category: CategoryExtremeAnger,
			Weight:   0.5,
			Pattern:  `\b(?:sick\s+(?:and\s+tired\s+)?of\s+(?:this|you|them|it\s+all)|fed\s+up\s+with\s+(?:this|you|them|everything))\b`,
		},
	}
}

// Profanity match expressions: direct terms, censored/obfuscated spellings,
// and common abbreviations. Matched against lower-cased text and aggregated
// into a single profanity indicator.
var profanityPatterns = []string{
	`\b(?:fuck\w*|shit\w*|bitch\w*|asshole\w*|bastard\w*|damn\w*|cunts?|pricks?|dickheads?)\b`,
	`(?:f[*@#$%!+]+c?k?|s[*@#$%!+]+t\b|b[*@#$%!+]+ch|a[*@#$%!+]+holes?|sh[1!]t|b[i1!]tch|f[-_.]u[-_.]c[-_.]k)`,
	`\b(?:wtf|stfu|gtfo|ffs|omfg|fml|lmfao)\b`,
}
