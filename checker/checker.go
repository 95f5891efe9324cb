// Package checker spell checks schema nodes and MCF corpora.
package checker

import (
	"log/slog"

	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/export"
	"github.com/c360studio/schemaspell/mcf"
	"github.com/c360studio/schemaspell/metric"
	"github.com/c360studio/schemaspell/paths"
	"github.com/c360studio/schemaspell/policy"
	"github.com/c360studio/schemaspell/vocabulary"
)

// NodeSource loads the nodes of one input file.
type NodeSource interface {
	LoadFile(path string) ([]*mcf.Node, error)
}

// RecordWriter persists a spell error report.
type RecordWriter interface {
	Write(records []export.Record, dest string) error
}

// FileMatcher expands an input pattern to file paths.
type FileMatcher func(pattern string) ([]string, error)

// Checker spell checks nodes against a vocabulary under one configuration.
// It runs sequentially and is not safe for concurrent use.
type Checker struct {
	cfg      *config.Config
	policy   *policy.Policy
	vocab    vocabulary.Vocabulary
	counters *metric.Counters
	logger   *slog.Logger
	source   NodeSource
	writer   RecordWriter
	match    FileMatcher
}

// Option configures a Checker.
type Option func(*Checker)

// WithVocabulary uses vocab instead of building one from the config.
func WithVocabulary(vocab vocabulary.Vocabulary) Option {
	return func(c *Checker) { c.vocab = vocab }
}

// WithCounters records counters into counters.
func WithCounters(counters *metric.Counters) Option {
	return func(c *Checker) { c.counters = counters }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// WithNodeSource replaces the MCF file loader.
func WithNodeSource(source NodeSource) Option {
	return func(c *Checker) { c.source = source }
}

// WithRecordWriter replaces the report file writer.
func WithRecordWriter(writer RecordWriter) Option {
	return func(c *Checker) { c.writer = writer }
}

// WithFileMatcher replaces the input glob resolution.
func WithFileMatcher(match FileMatcher) Option {
	return func(c *Checker) { c.match = match }
}

// New creates a Checker for cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *Checker {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &Checker{
		cfg:    cfg,
		policy: policy.New(cfg),
		source: mcf.NewFileLoader(),
		writer: export.NewFileWriter(),
		match:  paths.Match,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.counters == nil {
		c.counters = metric.NewCounters()
	}
	return c
}

// Counters returns the counters sink of the checker.
func (c *Checker) Counters() *metric.Counters {
	return c.counters
}

// Vocabulary returns the vocabulary, building it from the configuration on
// first use.
func (c *Checker) Vocabulary() vocabulary.Vocabulary {
	if c.vocab == nil {
		c.vocab = vocabulary.Build(c.cfg, c.counters, c.logger)
	}
	return c.vocab
}
