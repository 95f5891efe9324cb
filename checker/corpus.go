package checker

import (
	"fmt"

	"github.com/c360studio/schemaspell/export"
	"github.com/c360studio/schemaspell/metric"
)

// CheckCorpus spell checks every node of every file matching pattern and
// returns one record per misspelled property, in file, node and property
// order. When an output path is configured and errors were found the
// records are written there; a write failure is returned together with the
// records.
func (c *Checker) CheckCorpus(pattern string) ([]export.Record, error) {
	c.logger.Info("Spell check", "input", pattern, "text_only", c.cfg.TextOnly)
	c.Vocabulary()

	files, err := c.match(pattern)
	if err != nil {
		return nil, fmt.Errorf("match input files: %w", err)
	}
	if len(files) == 0 {
		c.logger.Info("No input files matched", "pattern", pattern)
	}

	var records []export.Record
	for _, file := range files {
		fileRecords, err := c.CheckFile(file)
		if err != nil {
			return records, err
		}
		records = append(records, fileRecords...)
	}

	if len(records) > 0 && c.cfg.Output != "" {
		format, _ := export.GetFormatInfo(export.FormatForPath(c.cfg.Output))
		c.logger.Info("Writing spell errors",
			"records", len(records),
			"output", c.cfg.Output,
			"format", format.Name,
			"mime_type", format.MIMEType)
		if err := c.writer.Write(records, c.cfg.Output); err != nil {
			c.counters.Add(metric.CounterReportWriteFailure, 1, c.cfg.Output)
			return records, fmt.Errorf("write spell errors to %s: %w", c.cfg.Output, err)
		}
	}
	return records, nil
}

// CheckFile spell checks the nodes of a single input file.
func (c *Checker) CheckFile(file string) ([]export.Record, error) {
	c.logger.Info("Loading MCF file", "file", file)
	nodes, err := c.source.LoadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	c.counters.Add(metric.CounterInputFiles, 1, file)
	c.counters.Add(metric.CounterTotal, float64(len(nodes)), "")

	var records []export.Record
	for _, node := range c.CheckNodes(nodes) {
		for _, pe := range node.Properties {
			records = append(records, export.Record{
				File:     file,
				DCID:     node.DCID,
				Property: pe.Property,
				Errors:   pe.Errors,
			})
		}
	}
	if len(records) > 0 {
		c.counters.Add(metric.CounterFilesWithErrors, 1, file)
	}
	c.counters.Add(metric.CounterProcessed, float64(len(nodes)), "")
	return records, nil
}
