package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/datainsights/internal/analysis"
)

// Parser loads one tabular container format into a Table.
type Parser interface {
	CanParse(filename string) bool
	Parse(name string, r io.Reader) (*analysis.Table, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported file format")

// ErrEmpty indicates the input has no header row.
var ErrEmpty = errors.New("no columns to parse from file")

// ParseError wraps any failure to read an upload.
type ParseError struct {
	Name string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Supported reports whether some registered parser accepts filename.
func Supported(filename string) bool {
	return lookup(filename) != nil
}

func lookup(filename string) Parser {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Parse selects a parser based on filename and loads r. Every failure is a
// *ParseError.
func Parse(filename string, r io.Reader) (*analysis.Table, error) {
	name := filepath.Base(filename)
	p := lookup(filename)
	if p == nil {
		return nil, &ParseError{Name: name, Err: ErrUnsupported}
	}
	t, err := p.Parse(name, r)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, &ParseError{Name: name, Err: err}
	}
	return t, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*analysis.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Parse(path, f)
}

func init() {
	// Register default parsers
	Register(csvParser{})
	Register(xlsxParser{})
}
