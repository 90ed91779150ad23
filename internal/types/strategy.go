//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// Strategy selects the scoring formula
type Strategy string

const (
	// StrategyWeighted combines coverage, experience, education and a must-have penalty into 0-1
	StrategyWeighted Strategy = "weighted"
	// StrategyCoverage is the stemmed keyword coverage percentage, 0-100
	StrategyCoverage Strategy = "coverage"
)

// ParseStrategy parses a strategy name. An empty name selects StrategyWeighted.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyWeighted:
		return StrategyWeighted, nil
	case StrategyCoverage:
		return StrategyCoverage, nil
	default:
		return "", fmt.Errorf("unknown scoring strategy %q (valid: weighted, coverage)", name)
	}
}
