package patterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
)

func TestNewTable_SkipsMalformedRules(t *testing.T) {
	table, err := NewTable([]config.RuleConfig{
		{ID: "good", Pattern: `\bfoo\b`, Weight: 0.5, Category: "test"},
		{ID: "bad", Pattern: `(unclosed`, Weight: 0.5, Category: "test"},
		{ID: "also_good", Pattern: `\bbar\b`, Weight: 0.7, Category: "test"},
	})

	require.Error(t, err)
	assert.Equal(t, 2, table.Len())

	rules := table.Enabled()
	require.Len(t, rules, 2)
	assert.Equal(t, "good", rules[0].ID)
	assert.Equal(t, "also_good", rules[1].ID)
}

func TestTable_EnableDisable(t *testing.T) {
	table, err := NewTable([]config.RuleConfig{
		{ID: "a", Pattern: `a`, Weight: 0.5, Category: "test"},
		{ID: "b", Pattern: `b`, Weight: 0.5, Category: "test"},
	})
	require.NoError(t, err)

	require.True(t, table.DisableRule("a"))
	rules := table.Enabled()
	require.Len(t, rules, 1)
	assert.Equal(t, "b", rules[0].ID)

	require.True(t, table.EnableRule("a"))
	assert.Len(t, table.Enabled(), 2)

	assert.False(t, table.DisableRule("missing"))
}

func TestTable_AddRulePreservesOrder(t *testing.T) {
	table, err := NewTable([]config.RuleConfig{
		{ID: "first", Pattern: `x`, Weight: 0.5, Category: "test"},
	})
	require.NoError(t, err)

	require.NoError(t, table.AddRule(config.RuleConfig{
		ID: "second", Pattern: `y`, Weight: 0.6, Category: "test",
	}))

	views := table.Rules()
	require.Len(t, views, 2)
	assert.Equal(t, "first", views[0].ID)
	assert.Equal(t, "second", views[1].ID)
}

func TestTable_AddRuleRejectsDuplicatesAndBadWeights(t *testing.T) {
	table, err := NewTable([]config.RuleConfig{
		{ID: "a", Pattern: `a`, Weight: 0.5, Category: "test"},
	})
	require.NoError(t, err)

	assert.Error(t, table.AddRule(config.RuleConfig{ID: "a", Pattern: `b`, Weight: 0.5, Category: "test"}))
	assert.Error(t, table.AddRule(config.RuleConfig{ID: "w", Pattern: `b`, Weight: 0, Category: "test"}))
	assert.Error(t, table.AddRule(config.RuleConfig{ID: "w2", Pattern: `b`, Weight: 1.5, Category: "test"}))
	assert.Error(t, table.AddRule(config.RuleConfig{Pattern: `b`, Weight: 0.5, Category: "test"}))
}

func TestSnippet(t *testing.T) {
	text := strings.Repeat("left ", 30) + "MATCH" + strings.Repeat(" right", 30)
	start := strings.Index(text, "MATCH")

	snip := Snippet(text, start, start+len("MATCH"))
	assert.Contains(t, snip, "MATCH")
	assert.LessOrEqual(t, len(snip), 110)

	// Invalid indices fall back to a bounded copy of the text.
	fallback := Snippet("short text", -1, 3)
	assert.Equal(t, "short text", fallback)

	long := strings.Repeat("x", 300)
	assert.Len(t, Snippet(long, 5, 2), 110)
}
