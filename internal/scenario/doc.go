// Package scenario runs conformance suites against the solver.
//
// A suite is a list of solve cases, each with an expected count or error
// code and an optional list of properties to check around it. Suites are
// written in YAML or CUE:
//
//	name: known-instances
//	description: literal instances with known counts
//	solver:
//	  allow_negative_coins: false
//	  strategy: auto
//	cases:
//	  - name: small
//	    target: 100
//	    max_coins: 10
//	    coins: [10, 50, 100]
//	    expect: { count: 4 }
//	    properties: [permutation_invariant, matches_enumeration]
//	  - name: negative-bound
//	    target: 1
//	    max_coins: -1
//	    coins: [1]
//	    expect: { error: InvalidBound }
//
// # Properties
//
//   - permutation_invariant: reversed and rotated coin lists give the same count
//   - monotone_budget: one more coin of budget never lowers the count
//   - matches_enumeration: the brute-force enumerator agrees
//   - strategies_agree: sequential and parallel fills agree
//
// # Golden Snapshots
//
// RunWithGolden renders a Result as canonical JSON and compares it against
// testdata/golden/<suite>.golden. Regenerate with:
//
//	go test ./internal/scenario -update
package scenario
