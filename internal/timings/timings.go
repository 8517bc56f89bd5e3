// Package timings measures how long each stage of an analysis run takes.
// Binaries wrap their load, query and render steps in Measure calls and
// log the summary; the engine itself stays unaware of timing.
package timings

import (
	"sync"
	"time"
)

// Stage labels one measured step of a run.
type Stage string

const (
	StageLoad      Stage = "LOAD"
	StageFilter    Stage = "FILTER"
	StageAggregate Stage = "AGGREGATE"
	StageRank      Stage = "RANK"
	StageRender    Stage = "RENDER"
	StageExport    Stage = "EXPORT"
)

// StageMetric records one measured call.
type StageMetric struct {
	Stage     Stage
	StartTime time.Time
	Duration  time.Duration
	Err       error
}

// StageSummary reduces the calls of one stage.
type StageSummary struct {
	Stage  Stage
	Calls  int
	Errors int
	Total  time.Duration
	Avg    time.Duration
}

// Collector accumulates stage metrics for one run. Safe for concurrent
// use, though runs are usually sequential.
type Collector struct {
	mu      sync.Mutex
	started time.Time
	metrics []StageMetric
}

// NewCollector creates an empty collector; the run clock starts now.
func NewCollector() *Collector {
	return &Collector{started: time.Now()}
}

// Measure runs fn and records its duration under stage. The error from fn
// passes through untouched.
func (c *Collector) Measure(stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	m := StageMetric{Stage: stage, StartTime: start, Duration: time.Since(start), Err: err}

	c.mu.Lock()
	c.metrics = append(c.metrics, m)
	c.mu.Unlock()
	return err
}

// Metrics returns a copy of every measurement so far, in call order.
func (c *Collector) Metrics() []StageMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StageMetric, len(c.metrics))
	copy(out, c.metrics)
	return out
}

// Summary reduces the measurements per stage, stages in first-seen order.
func (c *Collector) Summary() []StageSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	index := make(map[Stage]int)
	var out []StageSummary
	for _, m := range c.metrics {
		i, ok := index[m.Stage]
		if !ok {
			i = len(out)
			index[m.Stage] = i
			out = append(out, StageSummary{Stage: m.Stage})
		}
		out[i].Calls++
		out[i].Total += m.Duration
		if m.Err != nil {
			out[i].Errors++
		}
	}
	for i := range out {
		if out[i].Calls > 0 {
			out[i].Avg = out[i].Total / time.Duration(out[i].Calls)
		}
	}
	return out
}

// Elapsed is the wall time since the collector was created.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.started)
}
