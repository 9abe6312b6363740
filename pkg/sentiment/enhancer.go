package sentiment

import (
	"regexp"
)

// Lexical cue tables for the rule enhancer. Word-boundary matching against
// lower-cased text.
var (
	highArousalWords = regexp.MustCompile(`\b(?:furious|outraged|terrified|panicking|ecstatic|thrilled|screaming|urgent|emergency|insane|unbelievable|shocking)\b`)
	lowArousalWords  = regexp.MustCompile(`\b(?:calm|peaceful|relaxed|tired|sleepy|bored|quiet|mellow|serene)\b`)
	positiveWords    = regexp.MustCompile(`\b(?:love|great|wonderful|amazing|happy|excellent|beautiful|fantastic|grateful|awesome)\b`)
	negativeWords    = regexp.MustCompile(`\b(?:hate|terrible|awful|horrible|disgusting|miserable|worthless|ugly|pathetic|dreadful)\b`)
	intensifierWords = regexp.MustCompile(`\b(?:so|very|extremely|absolutely|totally|completely|utterly|incredibly)\b`)
)

// Per-cue adjustments applied by Enhance.
const (
	highArousalBoost = 0.2
	lowArousalDrop   = 0.15
	valenceShift     = 0.15
	intensifierBoost = 0.1
)

// Enhance adjusts a raw reading using lexical arousal and valence cues from
// the text, independent of the classifier's own output. Confidence is passed
// through untouched: the enhancer never fabricates certainty. The result is
// re-clamped, so enhancing an already-clamped reading with no cues present
// returns it unchanged.
func Enhance(r Reading, lowerText string) Reading {
	arousal := r.Arousal
	arousal += highArousalBoost * float64(len(highArousalWords.FindAllString(lowerText, -1)))
	arousal -= lowArousalDrop * float64(len(lowArousalWords.FindAllString(lowerText, -1)))
	if intensifierWords.MatchString(lowerText) {
		arousal += intensifierBoost
	}

	valence := r.Valence
	valence += valenceShift * float64(len(positiveWords.FindAllString(lowerText, -1)))
	valence -= valenceShift * float64(len(negativeWords.FindAllString(lowerText, -1)))

	return Reading{
		Valence:    valence,
		Arousal:    arousal,
		Confidence: r.Confidence,
	}.Clamp()
}
