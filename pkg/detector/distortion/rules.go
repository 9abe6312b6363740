package distortion

import "github.com/ExpiredOTM/RealityCheck/pkg/config"

// Cognitive distortion categories.
const (
	CategoryPersecution     = "persecution"
	CategoryGrandiosity     = "grandiosity"
	CategoryConspiracy      = "conspiracy"
	CategoryCatastrophizing = "catastrophizing"
	CategoryAllOrNothing    = "all_or_nothing"
	CategoryMindReading     = "mind_reading"
	CategoryFortuneTelling  = "fortune_telling"
)

// Categories lists every distortion category in a fixed order. Summaries
// enumerate all of them, zero-filled when absent.
var Categories = []string{
	CategoryPersecution,
	CategoryGrandiosity,
	CategoryConspiracy,
	CategoryCatastrophizing,
	CategoryAllOrNothing,
	CategoryMindReading,
	CategoryFortuneTelling,
}

// categoryRiskWeights scale each category's match count in the combined
// distortion risk.
var categoryRiskWeights = map[string]float64{
	CategoryPersecution:     0.9,
	CategoryConspiracy:      0.8,
	CategoryCatastrophizing: 0.7,
	CategoryGrandiosity:     0.6,
	CategoryMindReading:     0.6,
	CategoryAllOrNothing:    0.5,
	CategoryFortuneTelling:  0.5,
}

// DefaultRules returns the built-in distortion rule table: 18 rules across
// the 7 categories. Each pattern pairs a subject clause with a predicate
// clause so isolated words don't fire.
func DefaultRules() []config.RuleConfig {
	return []config.RuleConfig{
		// Persecution
		{
			ID:       "pers_surveillance",
			Category: CategoryPersecution,
			Weight:   0.8,
			Pattern:  `\b(?:they|everyone|people|everybody)\s+(?:are\s+|is\s+|were\s+)?(?:all\s+)?(?:watching|tracking|spying\s+on|monitoring|following)\s+(?:me|us)\b`,
		},
		{
			ID:       "pers_against",
			Category: CategoryPersecution,
			Weight:   0.75,
			Pattern:  `\b(?:everyone|they|people|the\s+(?:whole\s+)?world)\s+(?:is|are)\s+(?:all\s+)?(?:out\s+to\s+get|against|turning\s+against|plotting\s+against)\s+(?:me|us)\b`,
		},
		{
			ID:       "pers_targeted",
			Category: CategoryPersecution,
			Weight:   0.7,
			Pattern:  `\b(?:why\s+(?:is|are)\s+(?:everyone|they)\s+(?:always\s+)?(?:attacking|targeting|picking\s+on)\s+me|i(?:'m|\s+am)\s+being\s+(?:targeted|persecuted|silenced|censored))\b`,
		},

		// Conspiracy
		{
			ID:       "consp_coverup",
			Category: CategoryConspiracy,
			Weight:   0.8,
			Pattern:  `\b(?:they|the\s+(?:government|media|elites?))\s+(?:(?:don'?t|doesn'?t|do\s+not|does\s+not)\s+want\s+(?:you|us)\s+to\s+know|are\s+(?:hiding|covering\s+up|suppressing)\s+(?:it|this|the\s+truth))\b`,
		},
		{
			ID:       "consp_hoax",
			Category: CategoryConspiracy,
			Weight:   0.75,
			Pattern:  `\b(?:wake\s+up,?\s+(?:people|sheeple)|the\s+truth\s+(?:is\s+being|has\s+been)\s+(?:hidden|suppressed|buried)|it'?s\s+all\s+(?:a\s+)?(?:lie|hoax|staged|scripted))\b`,
		},
		{
			ID:       "consp_strings",
			Category: CategoryConspiracy,
			Weight:   0.7,
			Pattern:  `\b(?:who(?:'s|\s+is)\s+really\s+(?:behind|in\s+control\s+of)|pulling\s+the\s+strings|(?:secret|hidden)\s+agenda\s+(?:to|behind))\b`,
		},

		// Catastrophizing
		{
			ID:       "cat_ruin",
			Category: CategoryCatastrophizing,
			Weight:   0.75,
			Pattern:  `\b(?:this\s+(?:will|is\s+going\s+to)\s+(?:ruin|destroy|end)\s+(?:everything|my\s+life|us)|everything\s+is\s+(?:falling\s+apart|ruined|over))\b`,
		},
		{
			ID:       "cat_disaster",
			Category: CategoryCatastrophizing,
			Weight:   0.7,
			Pattern:  `\b(?:worst\s+thing\s+(?:that(?:'s|\s+has)?\s+)?(?:ever\s+)?happened|complete\s+(?:disaster|catastrophe)|the\s+end\s+of\s+the\s+world)\b`,
		},
		{
			ID:       "cat_norecovery",
			Category: CategoryCatastrophizing,
			Weight:   0.7,
			Pattern:  `\b(?:i(?:'ll|\s+will)\s+never\s+(?:recover|get\s+over|survive)\s+(?:this|it)|there(?:'s|\s+is)\s+no\s+(?:coming\s+back|way\s+out|hope\s+left))\b`,
		},

		// Grandiosity
		{
			ID:       "gran_only",
			Category: CategoryGrandiosity,
			Weight:   0.7,
			Pattern:  `\b(?:only\s+i\s+(?:can|could|truly\s+)?(?:see|understand|fix|save)|i(?:'m|\s+am)\s+the\s+only\s+one\s+who\s+(?:sees?|understands?|knows?|gets?\s+it))\b`,
		},
		{
			ID:       "gran_chosen",
			Category: CategoryGrandiosity,
			Weight:   0.65,
			Pattern:  `\b(?:i(?:'m|\s+am)\s+(?:destined|chosen|meant)\s+(?:for|to)|no\s+one\s+is\s+on\s+my\s+level|they\s+(?:can'?t|couldn'?t)\s+handle\s+(?:my|someone\s+like\s+me))\b`,
		},

		// All-or-nothing
		{
			ID:       "aon_always",
			Category: CategoryAllOrNothing,
			Weight:   0.6,
			Pattern:  `\b(?:(?:you|they|he|she)\s+(?:always|never)\s+(?:listen|care|help|ruin|fail)\w*|nothing\s+(?:ever\s+)?(?:works|matters|changes))\b`,
		},
		{
			ID:       "aon_noone",
			Category: CategoryAllOrNothing,
			Weight:   0.55,
			Pattern:  `\b(?:every(?:one|body)\s+(?:always\s+)?(?:lies|leaves|disappoints)|no\s+one\s+(?:ever\s+)?(?:cares|listens|helps|understands))\b`,
		},
		{
			ID:       "aon_total",
			Category: CategoryAllOrNothing,
			Weight:   0.55,
			Pattern:  `\b(?:(?:complete|total|utter)\s+(?:failure|waste\s+of\s+time)|either\s+.{1,40}\s+or\s+(?:nothing|not\s+at\s+all))\b`,
		},

		// Mind reading
		{
			ID:       "mr_thoughts",
			Category: CategoryMindReading,
			Weight:   0.65,
			Pattern:  `\b(?:i\s+know\s+(?:exactly\s+)?what\s+(?:you|they|he|she)(?:'re|\s+are|'s|\s+is)\s+thinking|(?:you|they)\s+(?:obviously|clearly|definitely)\s+(?:think|hate|despise|believe))\b`,
		},
		{
			ID:       "mr_judged",
			Category: CategoryMindReading,
			Weight:   0.6,
			Pattern:  `\b(?:everyone\s+(?:is\s+)?(?:judging|laughing\s+at|talking\s+about)\s+me|they\s+all\s+think\s+i(?:'m|\s+am))\b`,
		},

		// Fortune telling
		{
			ID:       "ft_doom",
			Category: CategoryFortuneTelling,
			Weight:   0.65,
			Pattern:  `\b(?:(?:this|it)\s+(?:will|is\s+going\s+to)\s+(?:definitely\s+)?(?:fail|end\s+badly|go\s+wrong)|i\s+know\s+(?:exactly\s+)?how\s+(?:this|it)\s+(?:ends|will\s+end))\b`,
		},
		{
			ID:       "ft_never",
			Category: CategoryFortuneTelling,
			Weight:   0.6,
			Pattern:  `\b(?:(?:it|this|things)\s+will\s+never\s+(?:work|change|get\s+better)|i(?:'ll|\s+will)\s+never\s+(?:succeed|make\s+it|be\s+good\s+enough))\b`,
		},
	}
}
