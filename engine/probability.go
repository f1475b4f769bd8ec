package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/somwatee/HATS-v4/shared"
)

const (
	// probabilityTolerance is the allowed deviation of the probability sum from one.
	probabilityTolerance = 1e-3
)

// requiredClasses are the classes every classifier response must carry.
var requiredClasses = []string{shared.Buy.String(), shared.NoTrade.String(), shared.Sell.String()}

// validateProbabilities asserts the provided classifier output honours the
// configured class set.
func validateProbabilities(probs map[string]float64, classes []string) error {
	if len(probs) != len(classes) {
		return &shared.ClassifierContractError{
			Reason: fmt.Sprintf("expected %d class probabilities, got %d", len(classes), len(probs)),
		}
	}

	var sum float64
	for _, class := range classes {
		p, ok := probs[class]
		if !ok {
			return &shared.ClassifierContractError{
				Reason: fmt.Sprintf("missing probability for class %q", class),
			}
		}

		if math.IsNaN(p) || p < 0 || p > 1 {
			return &shared.ClassifierContractError{
				Reason: fmt.Sprintf("probability %v for class %q is outside [0, 1]", p, class),
			}
		}

		sum += p
	}

	if math.Abs(sum-1) > probabilityTolerance {
		return &shared.ClassifierContractError{
			Reason: fmt.Sprintf("probabilities sum to %v", sum),
		}
	}

	return nil
}

// hasRequiredClasses returns whether the provided class set covers every required class.
func hasRequiredClasses(classes []string) bool {
	for _, class := range requiredClasses {
		if !slices.Contains(classes, class) {
			return false
		}
	}

	return true
}
