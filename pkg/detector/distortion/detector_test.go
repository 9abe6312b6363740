package distortion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
)

func newDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := New(nil)
	require.NoError(t, err)
	return d
}

func TestDetect_PersecutionScenario(t *testing.T) {
	d := newDetector(t)

	indicators := d.Detect("they are all watching me and tracking everything I do")
	require.Len(t, indicators, 1)
	assert.Equal(t, CategoryPersecution, indicators[0].Category)
	assert.GreaterOrEqual(t, indicators[0].Severity, 0.8)
	assert.Contains(t, indicators[0].Context, indicators[0].MatchedText)
}

func TestDetect_EmptyAndShortText(t *testing.T) {
	d := newDetector(t)

	assert.Empty(t, d.Detect(""))
	assert.Empty(t, d.Detect("fine"))
	assert.Zero(t, d.CalculateRisk(""))
}

func TestDetect_Categories(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		name     string
		text     string
		category string
	}{
		{"conspiracy", "the government doesn't want you to know what happened", CategoryConspiracy},
		{"catastrophizing", "this will ruin everything, it is the worst thing that ever happened", CategoryCatastrophizing},
		{"grandiosity", "I am the only one who sees what is really going on here", CategoryGrandiosity},
		{"all or nothing", "no one ever listens and nothing ever changes around here", CategoryAllOrNothing},
		{"mind reading", "they obviously hate me, I can tell from across the room", CategoryMindReading},
		{"fortune telling", "this will definitely fail just like everything else I try", CategoryFortuneTelling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indicators := d.Detect(tt.text)
			require.NotEmpty(t, indicators)
			found := false
			for _, ind := range indicators {
				if ind.Category == tt.category {
					found = true
				}
				assert.GreaterOrEqual(t, ind.Severity, 0.0)
				assert.LessOrEqual(t, ind.Severity, 1.0)
			}
			assert.True(t, found, "expected a %s indicator", tt.category)
		})
	}
}

func TestDetect_SortedAndDeterministic(t *testing.T) {
	d := newDetector(t)
	text := "they are all watching me, no one ever listens, and this will definitely fail"

	first := d.Detect(text)
	second := d.Detect(text)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].Severity, first[i].Severity)
	}
}

func TestSummarize_EnumeratesAllCategories(t *testing.T) {
	d := newDetector(t)

	summary := Summarize(d.Detect("they are all watching me and tracking everything I do"))
	assert.Len(t, summary.CategoryCounts, len(Categories))
	for _, category := range Categories {
		_, present := summary.CategoryCounts[category]
		assert.True(t, present, "category %s missing from counts", category)
	}
	assert.Equal(t, 1, summary.CategoryCounts[CategoryPersecution])
	assert.Equal(t, 0, summary.CategoryCounts[CategoryGrandiosity])
	assert.Equal(t, CategoryPersecution, summary.PrimaryCategory)
	assert.InDelta(t, 0.8, summary.TotalSeverity, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.TotalSeverity)
	assert.Empty(t, summary.PrimaryCategory)
	assert.Len(t, summary.CategoryCounts, len(Categories))
}

func TestSummarize_PrimaryIsHighestSeverity(t *testing.T) {
	summary := Summarize([]Indicator{
		{Category: CategoryAllOrNothing, Severity: 0.5},
		{Category: CategoryAllOrNothing, Severity: 0.5},
		{Category: CategoryPersecution, Severity: 0.9},
	})
	// Highest single severity wins, not the most frequent category.
	assert.Equal(t, CategoryPersecution, summary.PrimaryCategory)
	assert.Equal(t, 2, summary.CategoryCounts[CategoryAllOrNothing])
}

func TestCalculateRisk_Bounds(t *testing.T) {
	d := newDetector(t)

	texts := []string{
		"they are all watching me and tracking everything I do",
		"they are all watching me, everyone is out to get me, I am being targeted, the government doesn't want you to know, it's all a hoax, this will ruin everything, no one ever listens",
		"a perfectly calm and ordinary message about gardening",
	}
	for _, text := range texts {
		risk := d.CalculateRisk(text)
		assert.GreaterOrEqual(t, risk, 0.0)
		assert.LessOrEqual(t, risk, 1.0)
	}
}

func TestRuleManagement(t *testing.T) {
	d := newDetector(t)
	text := "they are all watching me and tracking everything I do"

	require.True(t, d.Table().DisableRule("pers_surveillance"))
	assert.Empty(t, d.Detect(text))
	require.True(t, d.Table().EnableRule("pers_surveillance"))
	assert.NotEmpty(t, d.Detect(text))

	require.NoError(t, d.Table().AddRule(config.RuleConfig{
		ID:       "custom_doom",
		Pattern:  `\bwe\s+are\s+all\s+doomed\b`,
		Weight:   0.6,
		Category: CategoryCatastrophizing,
	}))
	indicators := d.Detect("honestly we are all doomed at this point")
	require.NotEmpty(t, indicators)
	assert.Equal(t, CategoryCatastrophizing, indicators[0].Category)
}

func TestDetect_RepetitionBonusCapped(t *testing.T) {
	d := newDetector(t)

	// Eight repeats of the same phrase: bonus would be 0.7 uncapped, but it
	// tops out at +0.5.
	text := ""
	for i := 0; i < 8; i++ {
		text += "they are all watching me. "
	}
	indicators := d.Detect(text)
	require.NotEmpty(t, indicators)
	assert.InDelta(t, 1.0, indicators[0].Severity, 1e-9) // 0.8 + 0.5 clamped
}
