package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration rejects zero and negative durations.
func ValidatePositiveDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, d)
	}
	return nil
}

// ValidateNonNegativeDuration rejects negative durations. Zero usually means "no limit".
func ValidateNonNegativeDuration(name string, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%s must be non-negative, got %v", name, d)
	}
	return nil
}

// ValidateIntRange checks min <= v <= max.
func ValidateIntRange(name string, v, min, max int) error {
	if v < min || v > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, v)
	}
	return nil
}
