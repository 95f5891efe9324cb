package vocabulary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordList(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func withoutSystemDictionary(t *testing.T) {
	t.Helper()
	saved := systemDictionary
	systemDictionary = ""
	t.Cleanup(func() { systemDictionary = saved })
}

func TestBuilder_LoadWords(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, 2, b.LoadWords([]string{"Geo", "geo", "state", ""}))
	assert.Equal(t, 2, b.Len())

	lex := b.Finish()
	assert.True(t, lex.Contains("GEO"))
	assert.True(t, lex.Contains("State"))
	assert.False(t, lex.Contains("county"))
	assert.Equal(t, 2, lex.Len())
}

func TestBuilder_LoadWordList(t *testing.T) {
	b := NewBuilder()
	added, err := b.LoadWordList(strings.NewReader("# comment line\ngeoId\n\nsdg, unfccc\nwomen's\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	lex := b.Finish()
	for _, w := range []string{"geoId", "sdg", "unfccc", "women's"} {
		assert.True(t, lex.Contains(w), w)
	}
	assert.False(t, lex.Contains("comment"))
}

func TestBuilder_LoadWordListFile_Missing(t *testing.T) {
	_, err := NewBuilder().LoadWordListFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestBuilder_FinishEmpty(t *testing.T) {
	lex := NewBuilder().Finish()
	assert.Equal(t, 0, lex.Len())
	assert.False(t, lex.Contains("anything"))
	assert.Equal(t, []string{"anything"}, lex.Unknown([]string{"anything"}))
}

func TestLexicon_Unknown(t *testing.T) {
	b := NewBuilder()
	b.LoadWords([]string{"population", "count"})
	lex := b.Finish()

	got := lex.Unknown([]string{"Populaton", "Count", "zeta", "Populaton", "", "population"})
	assert.Equal(t, []string{"Populaton", "zeta"}, got)
	assert.Empty(t, lex.Unknown([]string{"count", "POPULATION"}))
	assert.Empty(t, lex.Unknown(nil))
}

func TestBaseLexicon(t *testing.T) {
	lex := NewBaseBuilder().Finish()
	assert.Greater(t, lex.Len(), 3000)
	assert.Empty(t, lex.Unknown([]string{"Statistical", "Variable", "type", "Of", "name", "Count", "population"}))
	assert.Empty(t, lex.Unknown([]string{"dcid", "geo", "naics", "stat", "Id"}), "schema terms")
	assert.Equal(t, []string{"Populaton"}, lex.Unknown([]string{"Populaton"}))
}

func TestBuild_AllowlistRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeWordList(t, dir, "allow.txt", "geoId\n")

	cfg := config.DefaultConfig()
	cfg.Allowlist = filepath.Join(dir, "*.txt")

	lex := Build(cfg, metric.NewCounters(), nil)
	assert.Empty(t, lex.Unknown([]string{"geoId"}))
}

func TestBuild_Counters(t *testing.T) {
	dir := t.TempDir()
	writeWordList(t, dir, "a.txt", "ghgrp\nunfccc\n")
	writeWordList(t, dir, "b.txt", "unfccc\nipeds\npopulation\n")

	cfg := config.DefaultConfig()
	cfg.Allowlist = filepath.Join(dir, "*.txt")
	cfg.AllowWords = config.WordList{"wikidataId", "GHGRP"}

	counters := metric.NewCounters()
	lex := Build(cfg, counters, nil)

	assert.Equal(t, 2.0, counters.Get(metric.CounterAllowlistFiles))
	// ghgrp, unfccc, ipeds, wikidataid; population is already in the base lexicon.
	assert.Equal(t, 4.0, counters.Get(metric.CounterAllowlistWords))
	assert.Empty(t, lex.Unknown([]string{"GHGRP", "unfccc", "ipeds", "wikidataId"}))
}

func TestBuild_MissingAllowlistIsNotFatal(t *testing.T) {
	withoutSystemDictionary(t)
	base := NewBaseBuilder().Len()

	cfg := config.DefaultConfig()
	cfg.Allowlist = filepath.Join(t.TempDir(), "missing.txt")
	cfg.AllowWords = nil

	counters := metric.NewCounters()
	lex := Build(cfg, counters, nil)
	assert.Equal(t, base, lex.Len())
	assert.Equal(t, 0.0, counters.Get(metric.CounterAllowlistFiles))
	assert.Equal(t, 1.0, counters.Get(metric.CounterMissingAllowlist))
	assert.Equal(t, 0.0, counters.Get(metric.CounterAllowlistWords))
}

func TestBuild_BadPatternIsNotFatal(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Allowlist = "[unclosed"
	lex := Build(cfg, nil, nil)
	assert.Greater(t, lex.Len(), 0)
}

func TestBuild_BaseLexiconFiles(t *testing.T) {
	dir := t.TempDir()
	writeWordList(t, dir, "words", "zymurgy\n")

	cfg := config.DefaultConfig()
	cfg.BaseLexicon = filepath.Join(dir, "words")

	counters := metric.NewCounters()
	lex := Build(cfg, counters, nil)
	assert.True(t, lex.Contains("zymurgy"))
	assert.Equal(t, 1.0, counters.Get(metric.CounterBaseLexiconFiles))
	// Lexicon files do not count as allowed words; dcs and dcid are
	// already schema terms.
	assert.Equal(t, 0.0, counters.Get(metric.CounterAllowlistWords))
}

func TestBuild_DefaultAllowWords(t *testing.T) {
	lex := Build(nil, nil, nil)
	assert.Empty(t, lex.Unknown([]string{"dcs", "dcid"}))
}

func TestBuild_SystemDictionary(t *testing.T) {
	dir := t.TempDir()
	saved := systemDictionary
	systemDictionary = writeWordList(t, dir, "words", "zymurgy\n")
	t.Cleanup(func() { systemDictionary = saved })

	counters := metric.NewCounters()
	lex := Build(config.DefaultConfig(), counters, nil)
	assert.True(t, lex.Contains("zymurgy"))
	assert.Equal(t, 1.0, counters.Get(metric.CounterBaseLexiconFiles))

	// Configured lexicon files replace the system dictionary.
	cfg := config.DefaultConfig()
	cfg.BaseLexicon = writeWordList(t, dir, "custom", "quokka\n")
	lex = Build(cfg, nil, nil)
	assert.True(t, lex.Contains("quokka"))
	assert.False(t, lex.Contains("zymurgy"))
}

func TestBuild_MissingSystemDictionary(t *testing.T) {
	saved := systemDictionary
	systemDictionary = filepath.Join(t.TempDir(), "absent")
	t.Cleanup(func() { systemDictionary = saved })

	counters := metric.NewCounters()
	lex := Build(config.DefaultConfig(), counters, nil)
	assert.Equal(t, NewBaseBuilder().Len(), lex.Len())
	assert.Equal(t, 0.0, counters.Get(metric.CounterMissingAllowlist))
}

func TestLexicon_Inflections(t *testing.T) {
	b := NewBuilder()
	b.LoadWords([]string{"household", "report", "annual", "response", "measure",
		"stop", "city", "study", "easy", "run", "basic", "make", "simple", "class", "fast"})
	lex := b.Finish()

	known := []string{
		"households", "reporting", "reported", "annually", "responses",
		"measured", "stopped", "cities", "studied", "easily", "running",
		"basically", "making", "simply", "classes", "faster", "fastest",
	}
	for _, w := range known {
		assert.True(t, lex.Contains(w), w)
	}

	unknown := []string{"houshold", "reportz", "ing", "runs2", "cla", "cityz"}
	for _, w := range unknown {
		assert.False(t, lex.Contains(w), w)
	}
}

func TestBaseForms(t *testing.T) {
	assert.Contains(t, baseForms("studies"), "study")
	assert.Contains(t, baseForms("making"), "make")
	assert.Contains(t, baseForms("stopped"), "stop")
	assert.Contains(t, baseForms("annually"), "annual")
	assert.NotContains(t, baseForms("class"), "clas", "double s is not a plural")
	assert.Empty(t, baseForms("is"))
}
