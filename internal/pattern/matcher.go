package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/spent/internal/model"
)

type compiledRule struct {
	re       *regexp.Regexp
	rule     Rule
	merchant string
	category model.Category
	amount   compiledAmount
}

// Matcher evaluates expenses against a fixed set of rules.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher validates and compiles rules. Rules are tried by descending
// priority; equal priorities keep their configured order.
func NewMatcher(rules []Rule) (*Matcher, error) {
	m := &Matcher{rules: make([]compiledRule, 0, len(rules))}

	for _, rule := range rules {
		category, amount, err := validateRule(rule)
		if err != nil {
			return nil, err
		}

		cr := compiledRule{
			rule:     rule,
			merchant: strings.ToLower(rule.Merchant),
			category: category,
			amount:   amount,
		}
		if rule.Regex {
			re, err := regexp.Compile("(?i)" + rule.Merchant)
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidRule, rule.label(), err)
			}
			cr.re = re
		}
		m.rules = append(m.rules, cr)
	}

	sort.SliceStable(m.rules, func(i, j int) bool {
		return m.rules[i].rule.Priority > m.rules[j].rule.Priority
	})

	return m, nil
}

// Len returns the number of rules.
func (m *Matcher) Len() int {
	return len(m.rules)
}

// Match returns the first rule, by priority, that matches e.
func (m *Matcher) Match(e model.Expense) (Rule, model.Category, bool) {
	for _, cr := range m.rules {
		if cr.matchesMerchant(e.Description) && cr.amount.matches(e.Amount) {
			return cr.rule, cr.category, true
		}
	}
	return Rule{}, "", false
}

// Apply recategorizes every matching record in place and returns how many
// were changed.
func (m *Matcher) Apply(records []model.Expense) int {
	changed := 0
	for i := range records {
		if _, category, ok := m.Match(records[i]); ok {
			records[i].Category = category
			changed++
		}
	}
	return changed
}

// matchesMerchant compares case-insensitively. Plain patterns match any
// description containing them.
func (cr compiledRule) matchesMerchant(description string) bool {
	if cr.re != nil {
		return cr.re.MatchString(description)
	}
	return strings.Contains(strings.ToLower(description), cr.merchant)
}
