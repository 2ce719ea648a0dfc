// Package solver counts bounded coin combinations.
//
// Given a target, a maximum number of coin uses and a list of coin values,
// the solver returns the number of use-count vectors (u_0, ..., u_{n-1})
// with Σ u_i ≤ maxCoins and Σ u_i·coins[i] = target. Duplicate coin values
// are distinct slots; the count does not depend on the order of the list.
//
// # Pipeline
//
// Every call runs three stages and keeps no state between calls:
//
//  1. validate: bound, list length and sign checks, then a plan describing
//     the table (sum range, effective coin bound, zero-value slots)
//  2. count: DP over a flat [sum][k] table of saturating uint64 cells
//  3. report: package count, strategy, error code and elapsed time
//
// # Numeric contract
//
// Counts are exact int64 values. Cells saturate at 2^63 and a saturated
// result is reported as CountOverflow; a count is never wrapped, truncated
// or routed through floating point. A zero count always means that no
// combination exists.
//
// # Strategies
//
// The sequential strategy processes the table row by row. The parallel
// strategy splits each denomination pass into residue classes modulo the
// coin value; rows in different classes never read each other, so classes
// run on separate goroutines while denominations are still applied strictly
// in input order. Both strategies return identical counts.
//
// # Lifecycle
//
// A Solver returned by New is ready and safe for concurrent use; each call
// allocates its own table. A zero-value Solver reports NotInitialized.
package solver
