// Package pattern assigns categories to imported expenses using
// user-configured merchant rules.
package pattern

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidRule is returned for rules that cannot be compiled.
var ErrInvalidRule = errors.New("invalid import rule")

// AmountCondition compares an expense amount with a rule's values.
type AmountCondition string

// Amount conditions.
const (
	AmountAny          AmountCondition = "any"
	AmountLessThan     AmountCondition = "lt"
	AmountLessEqual    AmountCondition = "le"
	AmountEqual        AmountCondition = "eq"
	AmountGreaterEqual AmountCondition = "ge"
	AmountGreaterThan  AmountCondition = "gt"
	AmountRange        AmountCondition = "range"
)

// Rule maps expenses whose description matches Merchant onto Category.
// Amounts are kept as strings so they decode from YAML, JSON and env
// values alike.
type Rule struct {
	Name      string          `mapstructure:"name" name:"name"`
	Merchant  string          `mapstructure:"merchant" name:"merchant" validate:"required"`
	Category  string          `mapstructure:"category" name:"category" validate:"required"`
	Condition AmountCondition `mapstructure:"amount" name:"amount" validate:"omitempty,oneof=any lt le eq ge gt range"`
	Value     string          `mapstructure:"value" name:"value" validate:"omitempty,numeric"`
	Min       string          `mapstructure:"min" name:"min" validate:"omitempty,numeric"`
	Max       string          `mapstructure:"max" name:"max" validate:"omitempty,numeric"`
	Priority  int             `mapstructure:"priority" name:"priority"`
	Regex     bool            `mapstructure:"regex" name:"regex"`
}

// label names the rule in error messages.
func (r Rule) label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Merchant
}

var ruleValidator = newRuleValidator()

func newRuleValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("name")
	})
	return v
}

// compiledAmount is a parsed amount condition.
type compiledAmount struct {
	value *decimal.Decimal
	min   *decimal.Decimal
	max   *decimal.Decimal
	cond  AmountCondition
}

func validateRule(r Rule) (model.Category, compiledAmount, error) {
	if err := ruleValidator.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return "", compiledAmount{}, fmt.Errorf("%w %q: %w", ErrInvalidRule, r.label(), err)
		}
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return "", compiledAmount{}, fmt.Errorf("%w %q: %s", ErrInvalidRule, r.label(), strings.Join(problems, ", "))
	}

	var category model.Category
	for _, c := range model.Categories() {
		if strings.EqualFold(r.Category, string(c)) {
			category = c
		}
	}
	if category == "" {
		return "", compiledAmount{}, fmt.Errorf("%w %q: unknown category %q", ErrInvalidRule, r.label(), r.Category)
	}

	amount := compiledAmount{cond: r.Condition}
	if amount.cond == "" {
		amount.cond = AmountAny
	}

	var err error
	if amount.value, err = parseOptional(r.Value); err != nil {
		return "", compiledAmount{}, fmt.Errorf("%w %q: value: %w", ErrInvalidRule, r.label(), err)
	}
	if amount.min, err = parseOptional(r.Min); err != nil {
		return "", compiledAmount{}, fmt.Errorf("%w %q: min: %w", ErrInvalidRule, r.label(), err)
	}
	if amount.max, err = parseOptional(r.Max); err != nil {
		return "", compiledAmount{}, fmt.Errorf("%w %q: max: %w", ErrInvalidRule, r.label(), err)
	}

	switch amount.cond {
	case AmountLessThan, AmountLessEqual, AmountEqual, AmountGreaterEqual, AmountGreaterThan:
		if amount.value == nil {
			return "", compiledAmount{}, fmt.Errorf("%w %q: %s needs a value", ErrInvalidRule, r.label(), amount.cond)
		}
	case AmountRange:
		if amount.min == nil && amount.max == nil {
			return "", compiledAmount{}, fmt.Errorf("%w %q: range needs min or max", ErrInvalidRule, r.label())
		}
	}

	return category, amount, nil
}

func parseOptional(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// matches reports whether amount satisfies the condition.
func (c compiledAmount) matches(amount decimal.Decimal) bool {
	switch c.cond {
	case AmountAny:
		return true
	case AmountLessThan:
		return amount.LessThan(*c.value)
	case AmountLessEqual:
		return amount.LessThanOrEqual(*c.value)
	case AmountEqual:
		return amount.Equal(*c.value)
	case AmountGreaterEqual:
		return amount.GreaterThanOrEqual(*c.value)
	case AmountGreaterThan:
		return amount.GreaterThan(*c.value)
	case AmountRange:
		if c.min != nil && amount.LessThan(*c.min) {
			return false
		}
		if c.max != nil && amount.GreaterThan(*c.max) {
			return false
		}
		return true
	}
	return false
}
