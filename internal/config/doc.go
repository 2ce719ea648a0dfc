// Package config loads limitbreak configuration from YAML.
//
// A config file tunes the solver limits and the benchmark loop. Every field
// is optional; absent fields keep their defaults. Unknown fields are
// rejected so typos surface instead of silently falling back to defaults.
//
//	solver:
//	  max_denominations: 4096
//	  max_table_cells: 134217728
//	  allow_negative_coins: false
//	  strategy: auto
//	  workers: 0            # 0 means GOMAXPROCS
//	  parallel_threshold: 1048576
//	bench:
//	  runs: 5
//	  warmup: 1
package config
