// Package patterns implements the weighted rule tables shared by the text
// detectors. A table owns its compiled rules; detection code gets immutable
// snapshots, so rule management never races with in-flight scans.
package patterns

import (
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/multierr"

	"github.com/ExpiredOTM/RealityCheck/pkg/config"
	"github.com/ExpiredOTM/RealityCheck/pkg/observability/logging"
)

// Rule is one compiled, weighted pattern. Rules are value-copied out of the
// table so callers can hold them across lock boundaries.
type Rule struct {
	ID       string
	Category string
	Weight   float64
	Expr     *regexp.Regexp
}

// View is the management-facing description of a rule, including its enabled
// state and source pattern.
type View struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Pattern  string  `json:"pattern"`
	Weight   float64 `json:"weight"`
	Enabled  bool    `json:"enabled"`
}

type entry struct {
	rule    Rule
	enabled bool
}

// Table is an ordered collection of rules with runtime enable/disable.
// Adding a rule appends; existing rules are never removed or reordered.
type Table struct {
	mu      sync.RWMutex
	entries []entry
}

// NewTable compiles the given rule configs into a table. Rules that fail to
// compile are skipped and reported through the returned error; the table is
// still usable with the rules that did compile.
func NewTable(cfgs []config.RuleConfig) (*Table, error) {
	t := &Table{entries: make([]entry, 0, len(cfgs))}

	var errs error
	for _, cfg := range cfgs {
		if err := t.AddRule(cfg); err != nil {
			logging.Errorf("Skipping rule %q: %v", cfg.ID, err)
			errs = multierr.Append(errs, err)
		}
	}
	return t, errs
}

// AddRule compiles and appends a rule. The rule takes effect on the next
// detection call.
func (t *Table) AddRule(cfg config.RuleConfig) error {
	if cfg.ID == "" {
		return fmt.Errorf("rule has no id")
	}
	if cfg.Weight <= 0 || cfg.Weight > 1 {
		return fmt.Errorf("rule %q: weight %.3f outside (0, 1]", cfg.ID, cfg.Weight)
	}

	expr, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return fmt.Errorf("rule %q: failed to compile pattern: %w", cfg.ID, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		if e.rule.ID == cfg.ID {
			return fmt.Errorf("rule %q already exists", cfg.ID)
		}
	}
	t.entries = append(t.entries, entry{
		rule: Rule{
			ID:       cfg.ID,
			Category: cfg.Category,
			Weight:   cfg.Weight,
			Expr:     expr,
		},
		enabled: !cfg.Disabled,
	})
	return nil
}

// Enabled returns the enabled rules in table order. The slice and its rules
// are copies; mutating the table afterwards does not affect them.
func (t *Table) Enabled() []Rule {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rules := make([]Rule, 0, len(t.entries))
	for _, e := range t.entries {
		if e.enabled {
			rules = append(rules, e.rule)
		}
	}
	return rules
}

// Rules returns a management view of every rule in table order.
func (t *Table) Rules() []View {
	t.mu.RLock()
	defer t.mu.RUnlock()

	views := make([]View, 0, len(t.entries))
	for _, e := range t.entries {
		views = append(views, View{
			ID:       e.rule.ID,
			Category: e.rule.Category,
			Pattern:  e.rule.Expr.String(),
			Weight:   e.rule.Weight,
			Enabled:  e.enabled,
		})
	}
	return views
}

// EnableRule enables the rule with the given id. Returns false when the id is
// unknown.
func (t *Table) EnableRule(id string) bool { return t.setEnabled(id, true) }

// DisableRule disables the rule with the given id. Returns false when the id
// is unknown. Disabling affects subsequent detection calls only.
func (t *Table) DisableRule(id string) bool { return t.setEnabled(id, false) }

func (t *Table) setEnabled(id string, enabled bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.entries {
		if t.entries[i].rule.ID == id {
			t.entries[i].enabled = enabled
			return true
		}
	}
	return false
}

// Len returns the total number of rules, enabled or not.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
