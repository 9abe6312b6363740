package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
)

// fakeClassifier is a controllable collaborator for tests.
type fakeClassifier struct {
	ready  bool
	result Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (Classification, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeClassifier) Ready(ctx context.Context) bool { return f.ready }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse whitespace", "hello   there\n\tfriend", "hello there friend"},
		{"strip disallowed", "nice~ day| here^", "nice day here"},
		{"keep basic punctuation", "wait, what?! \"really\" - yes.", "wait, what?! \"really\" - yes."},
		{"trim edges", "  padded  ", "padded"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in, 0))
		})
	}
}

func TestNormalize_Truncates(t *testing.T) {
	long := strings.Repeat("a", 600)
	assert.Len(t, Normalize(long, 0), 512)
	assert.Len(t, Normalize(long, 100), 100)
}

func TestClamp_Idempotent(t *testing.T) {
	readings := []Reading{
		{Valence: -2, Arousal: 3, Confidence: 1.5},
		{Valence: 0.4, Arousal: 0.2, Confidence: 0.9},
		{},
	}
	for _, r := range readings {
		once := r.Clamp()
		assert.Equal(t, once, once.Clamp())
		assert.GreaterOrEqual(t, once.Valence, -1.0)
		assert.LessOrEqual(t, once.Valence, 1.0)
		assert.GreaterOrEqual(t, once.Arousal, 0.0)
		assert.LessOrEqual(t, once.Arousal, 1.0)
	}
}

func TestEnhance_NoCuesLeavesReadingUnchanged(t *testing.T) {
	r := Reading{Valence: 0.5, Arousal: 0.5, Confidence: 0.8}
	assert.Equal(t, r, Enhance(r, "the quarterly report arrived on schedule"))
}

func TestEnhance_AppliesLexicalCues(t *testing.T) {
	base := Reading{Valence: 0, Arousal: 0.3, Confidence: 0.7}

	// One high-arousal word (+0.2), one intensifier (+0.1), two negative
	// words (-0.3 valence).
	out := Enhance(base, "i am so furious about this terrible and awful mess")
	assert.InDelta(t, 0.6, out.Arousal, 1e-9)
	assert.InDelta(t, -0.3, out.Valence, 1e-9)
	assert.Equal(t, base.Confidence, out.Confidence)

	// Positive and calming cues pull the other way.
	out = Enhance(base, "what a wonderful, peaceful morning walk")
	assert.InDelta(t, 0.15, out.Arousal, 1e-9)
	assert.InDelta(t, 0.15, out.Valence, 1e-9)
}

func TestEnhance_ConfidencePassthrough(t *testing.T) {
	r := Reading{Valence: 0, Arousal: 0, Confidence: 0}
	out := Enhance(r, "absolutely thrilled and ecstatic, amazing wonderful great")
	// Cues move valence and arousal but never fabricate confidence.
	assert.Zero(t, out.Confidence)
	assert.Greater(t, out.Arousal, 0.0)
}

func TestAnalyzer_DegradedWhenNeverReady(t *testing.T) {
	fake := &fakeClassifier{ready: false}
	a := NewAnalyzer(fake, config.SentimentConfig{
		ReadyAttempts: 2,
		ReadyInterval: "1ms",
	})

	assert.False(t, a.WaitReady(context.Background()))
	assert.False(t, a.Ready())

	reading := a.Analyze(context.Background(), "this is a long enough message to analyze")
	assert.True(t, reading.IsZero())
	assert.Zero(t, fake.calls, "classifier must not be called while not ready")
}

func TestAnalyzer_NilClassifier(t *testing.T) {
	a := NewAnalyzer(nil, config.SentimentConfig{})
	assert.False(t, a.WaitReady(context.Background()))
	assert.True(t, a.Analyze(context.Background(), "whatever text arrives here").IsZero())
}

func TestAnalyzer_ClassifierErrorDegrades(t *testing.T) {
	fake := &fakeClassifier{ready: true, err: errors.New("model crashed")}
	a := NewAnalyzer(fake, config.SentimentConfig{ReadyAttempts: 1, ReadyInterval: "1ms"})
	require.True(t, a.WaitReady(context.Background()))

	reading := a.Analyze(context.Background(), "a perfectly ordinary message body")
	assert.True(t, reading.IsZero())
}

func TestAnalyzer_MapsLabels(t *testing.T) {
	tests := []struct {
		name        string
		result      Classification
		wantValence float64
	}{
		{"negative", Classification{Label: "negative", Score: 0.9}, -0.9},
		{"positive", Classification{Label: "positive", Score: 0.8}, 0.8},
		{"neutral", Classification{Label: "neutral", Score: 0.6}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClassifier{ready: true, result: tt.result}
			a := NewAnalyzer(fake, config.SentimentConfig{ReadyAttempts: 1, ReadyInterval: "1ms"})
			require.True(t, a.WaitReady(context.Background()))

			// Cue-free text so the enhancer leaves the mapping visible.
			reading := a.Analyze(context.Background(), "the delivery arrived at noon as planned")
			assert.InDelta(t, tt.wantValence, reading.Valence, 1e-9)
			assert.Equal(t, tt.result.Score, reading.Confidence)
			assert.GreaterOrEqual(t, reading.Arousal, 0.0)
			assert.LessOrEqual(t, reading.Arousal, 1.0)
		})
	}
}

func TestAnalyzer_CancelledContextStopsPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeClassifier{ready: false}
	a := NewAnalyzer(fake, config.SentimentConfig{ReadyAttempts: 30, ReadyInterval: "1s"})
	assert.False(t, a.WaitReady(ctx))
}
