package config

import (
	"fmt"

	"github.com/Veraticus/spent/internal/pattern"
	"github.com/spf13/viper"
)

// LoadImportRules decodes the import.rules list and compiles it.
func LoadImportRules(v *viper.Viper) (*pattern.Matcher, error) {
	var rules []pattern.Rule
	if err := v.UnmarshalKey("import.rules", &rules); err != nil {
		return nil, fmt.Errorf("failed to decode import.rules: %w", err)
	}
	return pattern.NewMatcher(rules)
}
