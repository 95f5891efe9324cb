package mcf

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

const (
	// NodeProperty starts a new node.
	NodeProperty = "Node"
	// DCIDProperty overrides the key given on the Node line.
	DCIDProperty = "dcid"
)

// FileLoader reads nodes from MCF files on disk.
type FileLoader struct{}

// NewFileLoader creates a new MCF file loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// LoadFile reads and parses the MCF file at path.
func (l *FileLoader) LoadFile(path string) ([]*Node, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mcf file: %w", err)
	}
	return Parse(path, content)
}

// Parse parses MCF content into nodes in order of first appearance.
// Nodes sharing a dcid are merged.
func Parse(filename string, content []byte) ([]*Node, error) {
	p := &parser{filename: filename, index: make(map[string]*Node)}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSpace(scanner.Text())); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", filename, err)
	}
	if err := p.finishNode(); err != nil {
		return nil, err
	}
	return p.nodes, nil
}

type parser struct {
	filename string
	line     int
	current  *Node
	comments int
	nodes    []*Node
	index    map[string]*Node
}

func (p *parser) parseLine(line string) error {
	switch {
	case line == "":
		return p.finishNode()
	case strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//"):
		if p.current != nil {
			p.comments++
			p.current.Add(fmt.Sprintf("# comment%d", p.comments), line)
		}
		return nil
	}

	prop, value, ok := strings.Cut(line, ":")
	if !ok {
		return p.errorf("expected 'property: value', got %q", line)
	}
	prop = strings.TrimSpace(prop)
	value = strings.TrimSpace(value)
	if prop == "" {
		return p.errorf("empty property name")
	}

	if prop == NodeProperty {
		if err := p.finishNode(); err != nil {
			return err
		}
		p.current = NewNode(nodeKey(value))
	}
	if p.current == nil {
		return p.errorf("property %q outside of a node", prop)
	}
	p.current.Add(prop, value)
	return nil
}

func (p *parser) finishNode() error {
	node := p.current
	if node == nil {
		return nil
	}
	p.current = nil
	p.comments = 0

	if dcid, ok := node.Get(DCIDProperty); ok {
		if key := nodeKey(dcid.String()); key != "" {
			node.DCID = key
		}
	}
	if node.DCID == "" {
		return p.errorf("node without dcid")
	}

	if existing, ok := p.index[node.DCID]; ok {
		existing.Merge(node)
		return nil
	}
	p.index[node.DCID] = node
	p.nodes = append(p.nodes, node)
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{File: p.filename, Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

// nodeKey normalizes a Node or dcid value into a node key.
func nodeKey(value string) string {
	return strings.Trim(StripNamespace(strings.Trim(value, `"`)), `"`)
}
