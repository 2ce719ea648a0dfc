// Package benchmark compares the sequential and parallel fill strategies on
// one problem.
//
// Each strategy is warmed up, then timed over several runs; the best run
// counts. The result records whether both strategies produced the same
// outcome and the speedup of parallel over sequential. WriteTextfile
// renders the result in Prometheus text exposition format so a
// node_exporter textfile collector can pick it up.
package benchmark
