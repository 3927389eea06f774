// Package metrics provides domain types for system-wide metrics collection.
package metrics

const (
	// percentMultiplier is used to convert fractions to percentages.
	percentMultiplier float64 = 100
)
