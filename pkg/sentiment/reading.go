// Package sentiment wraps the external sentiment classifier behind a
// tolerant boundary: readings are normalized, lexically enhanced, and degrade
// to a zero reading when the collaborator is unavailable.
package sentiment

// Reading is a normalized emotional reading. Produced fresh per call and
// never mutated afterwards.
type Reading struct {
	// Valence is the pleasantness axis in [-1, 1].
	Valence float64 `json:"valence"`

	// Arousal is the activation axis in [0, 1].
	Arousal float64 `json:"arousal"`

	// Confidence is the classifier's confidence in [0, 1]. Zero means the
	// reading is degraded or absent.
	Confidence float64 `json:"confidence"`
}

// IsZero reports whether the reading carries no signal.
func (r Reading) IsZero() bool {
	return r.Valence == 0 && r.Arousal == 0 && r.Confidence == 0
}

// Clamp returns the reading with valence clamped to [-1, 1] and arousal and
// confidence clamped to [0, 1]. Idempotent.
func (r Reading) Clamp() Reading {
	if r.Valence < -1 {
		r.Valence = -1
	} else if r.Valence > 1 {
		r.Valence = 1
	}
	r.Arousal = clamp01(r.Arousal)
	r.Confidence = clamp01(r.Confidence)
	return r
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
