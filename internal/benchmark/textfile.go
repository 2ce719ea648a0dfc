package benchmark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
)

// Metric names written by WriteTextfile.
const (
	MetricSeconds    = "limitbreak_bench_seconds"
	MetricConsistent = "limitbreak_bench_consistent"
	MetricSpeedup    = "limitbreak_bench_speedup"
	MetricRuns       = "limitbreak_bench_runs"
)

// MetricFamilies converts a Result into Prometheus metric families, sorted
// by name.
func MetricFamilies(r *Result) []*dto.MetricFamily {
	seconds := &dto.MetricFamily{
		Name: proto.String(MetricSeconds),
		Help: proto.String("Best wall time of one solve per fill strategy."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, t := range r.Timings {
		seconds.Metric = append(seconds.Metric, &dto.Metric{
			Label: []*dto.LabelPair{{Name: proto.String("strategy"), Value: proto.String(string(t.Strategy))}},
			Gauge: &dto.Gauge{Value: proto.Float64(t.Best.Seconds())},
		})
	}

	consistent := 0.0
	if r.Consistent {
		consistent = 1
	}

	return []*dto.MetricFamily{
		gauge(MetricConsistent, "Whether every strategy produced the same outcome (1) or not (0).", consistent),
		gauge(MetricRuns, "Timed runs per strategy.", float64(r.Runs)),
		seconds,
		gauge(MetricSpeedup, "Sequential best time over parallel best time.", r.Speedup),
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(v)}}},
	}
}

// WriteTextfile renders r in Prometheus text exposition format.
func WriteTextfile(w io.Writer, r *Result) error {
	for _, mf := range MetricFamilies(r) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfileAtomic writes r to path through a temporary file and a
// rename, so a collector never reads a partial file.
func WriteTextfileAtomic(path string, r *Result) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("textfile: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteTextfile(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("textfile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("textfile: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("textfile: rename: %w", err)
	}
	return nil
}

// ParseTextfile reads metric families back from text exposition format.
func ParseTextfile(rd io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(rd)
	if err != nil {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}
	return mfs, nil
}
