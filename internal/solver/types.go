package solver

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Problem is one solve request.
type Problem struct {
	Target   int64   `json:"target" yaml:"target"`
	MaxCoins int64   `json:"max_coins" yaml:"max_coins"`
	Coins    []int64 `json:"coins" yaml:"coins"`
}

// Strategy selects how the DP table is filled.
type Strategy string

const (
	// StrategyAuto picks parallel for large tables when workers > 1.
	StrategyAuto Strategy = "auto"
	// StrategySequential fills the table on the calling goroutine.
	StrategySequential Strategy = "sequential"
	// StrategyParallel splits each denomination pass into residue classes.
	StrategyParallel Strategy = "parallel"
)

// ValidStrategies lists the accepted strategy names.
var ValidStrategies = []Strategy{StrategyAuto, StrategySequential, StrategyParallel}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, v := range ValidStrategies {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid strategy %q: must be one of %v", s, ValidStrategies)
}

// Clock supplies wall time for elapsed measurements.
// Implemented by SystemClock (production) and testutil clocks.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator produces report IDs.
// Implemented by UUIDv7Generator (production) and testutil.FixedIDs (tests).
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 report IDs.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
