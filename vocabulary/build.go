package vocabulary

import (
	"log/slog"
	"os"

	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/metric"
	"github.com/c360studio/schemaspell/paths"
)

// systemDictionary is merged into the base lexicon when present and no
// lexicon files are configured.
var systemDictionary = "/usr/share/dict/words"

// Build assembles the lexicon for cfg: the embedded lexicons, extra
// lexicon files (or the system dictionary), allow-list files and inline
// allow words. Missing or unreadable files contribute nothing and are only
// logged.
func Build(cfg *config.Config, counters *metric.Counters, logger *slog.Logger) *Lexicon {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := NewBaseBuilder()
	lexiconFiles := cfg.BaseLexicon
	if lexiconFiles == "" && isRegularFile(systemDictionary) {
		lexiconFiles = systemDictionary
	}
	loadFiles(b, lexiconFiles, metric.CounterBaseLexiconFiles, counters, logger)
	base := b.Len()

	loadFiles(b, cfg.Allowlist, metric.CounterAllowlistFiles, counters, logger)
	if len(cfg.AllowWords) > 0 {
		b.LoadWords(cfg.AllowWords)
	}

	added := b.Len() - base
	logger.Info("Spell checker vocabulary loaded",
		"base_words", base,
		"allowed_words", added,
		"allowlist", cfg.Allowlist)
	counters.Add(metric.CounterAllowlistWords, float64(added), cfg.Allowlist)

	return b.Finish()
}

// loadFiles loads every word-list file matching patterns into b.
func loadFiles(b *Builder, patterns, counter string, counters *metric.Counters, logger *slog.Logger) {
	if patterns == "" {
		return
	}

	files, err := paths.Match(patterns)
	if err != nil {
		logger.Warn("Invalid word list pattern", "pattern", patterns, "error", err)
		return
	}
	if len(files) == 0 {
		logger.Info("No word list files matched", "pattern", patterns)
		counters.Add(metric.CounterMissingAllowlist, 1, patterns)
		return
	}

	for _, file := range files {
		added, err := b.LoadWordListFile(file)
		if err != nil {
			logger.Warn("Skipping unreadable word list", "file", file, "error", err)
			counters.Add(metric.CounterMissingAllowlist, 1, file)
			continue
		}
		logger.Debug("Loaded word list", "file", file, "new_words", added)
		counters.Add(counter, 1, file)
	}
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
