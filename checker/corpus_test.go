package checker

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/c360studio/schemaspell/config"
	"github.com/c360studio/schemaspell/export"
	"github.com/c360studio/schemaspell/mcf"
	"github.com/c360studio/schemaspell/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const populationMCF = `Node: dc/1
dcid: "dc/1"
typeOf: dcs:StatisticalVariable
name: "Populaton Count"
`

const cleanMCF = `Node: dcid:Count_Person
typeOf: dcs:StatisticalVariable
name: "Population Count"
`

func writeMCF(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newCorpusChecker(cfg *config.Config, opts ...Option) *Checker {
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(cfg, opts...)
}

func TestCheckCorpus_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	file := writeMCF(t, dir, "nodes.mcf", populationMCF)

	c := newCorpusChecker(config.DefaultConfig())
	records, err := c.CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, export.Record{
		File:     file,
		DCID:     "dc/1",
		Property: "name",
		Errors:   "Populaton",
	}, records[0])

	counters := c.Counters()
	assert.Equal(t, 1.0, counters.Get(metric.CounterTotal))
	assert.Equal(t, 1.0, counters.Get(metric.CounterProcessed))
	assert.Equal(t, 1.0, counters.Get(metric.CounterFilesWithErrors))
	assert.Equal(t, 1.0, counters.Get(metric.CounterInputFiles))
	assert.Equal(t, 2.0, counters.Get(metric.CounterIgnoredPVs), "Node and dcid")
	assert.Equal(t, 2.0, counters.Get(metric.CounterCheckedPVs), "typeOf and name")
}

func TestCheckCorpus_CleanNodesAbsent(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "a.mcf", cleanMCF)
	writeMCF(t, dir, "b.mcf", populationMCF)

	c := newCorpusChecker(config.DefaultConfig())
	records, err := c.CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "dc/1", records[0].DCID)
	assert.Equal(t, 2.0, c.Counters().Get(metric.CounterTotal))
	assert.Equal(t, 1.0, c.Counters().Get(metric.CounterFilesWithErrors))
}

func TestCheckCorpus_AllowlistSuppressesErrors(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "nodes.mcf", populationMCF)
	allowlist := filepath.Join(dir, "allow.txt")
	require.NoError(t, os.WriteFile(allowlist, []byte("populaton\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Allowlist = allowlist
	records, err := newCorpusChecker(cfg).CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCheckCorpus_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "nodes.mcf", populationMCF)

	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(dir, "out", "errors.json")
	records, err := newCorpusChecker(cfg).CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	var written []export.Record
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, records, written)
}

func TestCheckCorpus_NoOutputWithoutErrors(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "nodes.mcf", cleanMCF)

	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(dir, "errors.json")
	records, err := newCorpusChecker(cfg).CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoFileExists(t, cfg.Output)
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]export.Record, string) error {
	w.calls++
	return errors.New("disk full")
}

func TestCheckCorpus_WriteFailureReturnsRecords(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "nodes.mcf", populationMCF)

	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(dir, "errors.json")
	writer := &failingWriter{}
	c := newCorpusChecker(cfg, WithRecordWriter(writer))

	records, err := c.CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, records, 1)
	assert.Equal(t, 1, writer.calls)
	assert.Equal(t, 1.0, c.Counters().Get(metric.CounterReportWriteFailure))
}

func TestCheckCorpus_MalformedFilePropagates(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "bad.mcf", "Node: A\nno colon here\n")

	_, err := newCorpusChecker(nil).CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mcf.ErrSyntax))
}

func TestCheckCorpus_NoMatches(t *testing.T) {
	records, err := newCorpusChecker(nil).CheckCorpus(filepath.Join(t.TempDir(), "*.mcf"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

type staticSource map[string][]*mcf.Node

func (s staticSource) LoadFile(path string) ([]*mcf.Node, error) {
	return s[path], nil
}

func TestCheckCorpus_CustomCollaborators(t *testing.T) {
	source := staticSource{
		"one": {node("A", "name", `"Teh"`)},
		"two": {node("B", "name", `"fine"`), node("C", "description", `"wrod"`)},
	}
	c := newCorpusChecker(nil,
		WithNodeSource(source),
		WithFileMatcher(func(string) ([]string, error) { return []string{"one", "two"}, nil }),
		WithVocabulary(newFakeVocab("name", "description", "fine")))

	records, err := c.CheckCorpus("ignored")
	require.NoError(t, err)
	assert.Equal(t, []export.Record{
		{File: "one", DCID: "A", Property: "name", Errors: "Teh"},
		{File: "two", DCID: "C", Property: "description", Errors: "wrod"},
	}, records)
}

func TestCheckCorpus_MatcherError(t *testing.T) {
	c := newCorpusChecker(nil,
		WithFileMatcher(func(string) ([]string, error) { return nil, errors.New("bad pattern") }))
	_, err := c.CheckCorpus("[")
	assert.Error(t, err)
}

const statVarMCF = `Node: dcid:Median_Age_Person
typeOf: dcs:StatisticalVariable
populationType: dcs:Person
measuredProperty: dcs:age
statType: dcs:medianValue
name: "Median age of persons"
description: "Median age of the resident population, reported annually from census survey responses"

Node: dcid:Count_Household_Female
typeOf: dcs:StatisticalVariable
populationType: dcs:Household
measuredProperty: dcs:count
statType: dcs:measuredValue
gender: dcs:Female
name: "Number of households reporting a female householder"
`

func TestCheckCorpus_DefaultVocabularyOnStatVars(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "statvars.mcf", statVarMCF)

	c := newCorpusChecker(config.DefaultConfig())
	records, err := c.CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 2.0, c.Counters().Get(metric.CounterTotal))
	assert.Equal(t, 0.0, c.Counters().Get(metric.CounterErrorPVs))
}

func TestCheckCorpus_LogsReportFormat(t *testing.T) {
	dir := t.TempDir()
	writeMCF(t, dir, "nodes.mcf", populationMCF)

	var logs bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(dir, "errors.csv")
	c := New(cfg, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := c.CheckCorpus(filepath.Join(dir, "*.mcf"))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "format=csv")
	assert.Contains(t, logs.String(), "mime_type=text/csv")
	assert.FileExists(t, cfg.Output)
}
