// Package metric provides the counters sink used to instrument spell checks.
package metric

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace  = "schemaspell"
	metricName = "events_total"
)

// Counter names recorded by the checker and dictionary builder.
const (
	CounterIgnoredPVs         = "spell-check-ignored-pvs"
	CounterCheckedPVs         = "spell-check-pvs"
	CounterErrorPVs           = "spell-check-pvs-errors"
	CounterNodes              = "spell-check-nodes"
	CounterNodeErrors         = "spell-check-nodes-errors"
	CounterErrorWords         = "error-spell-words"
	CounterInputFiles         = "input-mcf-file"
	CounterTotal              = "total"
	CounterProcessed          = "processed"
	CounterFilesWithErrors    = "files-with-spell-errors"
	CounterAllowlistFiles     = "spell-allowlist-file"
	CounterAllowlistWords     = "spell-allowlist-words"
	CounterMissingAllowlist   = "spell-allowlist-missing"
	CounterBaseLexiconFiles   = "spell-base-lexicon-file"
	CounterReportWriteFailure = "spell-report-write-errors"
)

// Counters is an append-only sink of named counters with an optional
// sub-key. Totals per name are kept in memory and every increment is
// mirrored into a Prometheus counter vector on a private registry.
type Counters struct {
	mu       sync.Mutex
	totals   map[string]float64
	registry *prometheus.Registry
	events   *prometheus.CounterVec
}

// NewCounters creates an empty counters sink.
func NewCounters() *Counters {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      metricName,
		Help:      "Spell check events by counter name and optional sub-key.",
	}, []string{"counter", "key"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(events)

	return &Counters{
		totals:   make(map[string]float64),
		registry: registry,
		events:   events,
	}
}

// Add increments counter name by amount. subKey optionally attributes the
// increment to a file, node or word list. Negative amounts are ignored.
func (c *Counters) Add(name string, amount float64, subKey string) {
	if c == nil || amount < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.totals[name] += amount
	c.events.WithLabelValues(name, subKey).Add(amount)
}

// Inc increments counter name by one.
func (c *Counters) Inc(name string) {
	c.Add(name, 1, "")
}

// Get returns the total of counter name across all sub-keys.
func (c *Counters) Get(name string) float64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totals[name]
}

// Snapshot returns a copy of all totals.
func (c *Counters) Snapshot() map[string]float64 {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]float64, len(c.totals))
	for k, v := range c.totals {
		out[k] = v
	}
	return out
}

// WriteTextfile writes all counters to path in the Prometheus text format.
func (c *Counters) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write counters: %w", err)
	}
	return nil
}

// Log writes every counter total at info level, sorted by name.
func (c *Counters) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	snapshot := c.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Info("Counter", "name", name, "value", snapshot[name])
	}
}
