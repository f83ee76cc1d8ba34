package validation

import (
	"fmt"
	"math"
	"strings"
)

// MaxLiftWeight is a sanity ceiling for any logged weight regardless of unit.
const MaxLiftWeight = 5000

// ValidateLiftEntry checks a logged set before it is persisted or fed into
// the one-rep-max estimator.
func ValidateLiftEntry(weight float64, reps int, rpe *int) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("weight must be a finite number")
	}
	if weight <= 0 {
		return fmt.Errorf("weight must be greater than zero")
	}
	if weight > MaxLiftWeight {
		return fmt.Errorf("weight must not exceed %d", MaxLiftWeight)
	}
	if reps < 1 {
		return fmt.Errorf("reps must be at least 1")
	}
	if reps > 100 {
		return fmt.Errorf("reps must not exceed 100")
	}
	if rpe != nil && (*rpe < 1 || *rpe > 10) {
		return fmt.Errorf("rpe must be between 1 and 10")
	}
	return nil
}

// ValidateUnit accepts the supported weight units.
func ValidateUnit(unit string) error {
	switch strings.ToLower(unit) {
	case "", "lbs", "kg":
		return nil
	default:
		return fmt.Errorf("unit must be lbs or kg")
	}
}

// ValidateCommentContent checks a comment body before persistence.
func ValidateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("comment content is required")
	}
	if len(content) > 2000 {
		return fmt.Errorf("comment must not exceed 2000 characters")
	}
	return nil
}
