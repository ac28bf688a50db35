package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// parseDocument turns the bytes of a config document into a tree of
// typed scalars, tables and arrays. The format is picked from the file
// extension; anything unrecognized is parsed as TOML, the primary
// format. Failures come back as *ParseError carrying the origin and,
// where the parser reports one, the fault location.
func parseDocument(origin string, data []byte) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(origin)) {
	case ".json", ".jsonc":
		return parseJSON(origin, data)
	case ".yaml", ".yml":
		return parseYAML(origin, data)
	default:
		return parseTOML(origin, data)
	}
}

func parseTOML(origin string, data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, &ParseError{Origin: origin, Line: row, Column: col, Err: errors.New(derr.Error())}
		}
		return nil, &ParseError{Origin: origin, Err: err}
	}
	return tree, nil
}

func parseJSON(origin string, data []byte) (map[string]any, error) {
	// Comments and trailing commas are tolerated, matching editor-style
	// jsonc documents.
	plain := jsonc.ToJSON(data)
	var tree map[string]any
	if err := json.Unmarshal(plain, &tree); err != nil {
		var serr *json.SyntaxError
		if errors.As(err, &serr) {
			line, col := offsetToPosition(plain, serr.Offset)
			return nil, &ParseError{Origin: origin, Line: line, Column: col, Err: errors.New(serr.Error())}
		}
		return nil, &ParseError{Origin: origin, Err: err}
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

func parseYAML(origin string, data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		// yaml.v3 embeds "line N" in its messages but exposes no
		// structured position.
		return nil, &ParseError{Origin: origin, Err: err}
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

// offsetToPosition converts a byte offset into a 1-based line/column
// pair for JSON syntax errors.
func offsetToPosition(data []byte, offset int64) (line, col int) {
	if offset < 0 || offset > int64(len(data)) {
		return 0, 0
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// documentError wraps a non-positional fault found while interpreting an
// already well-formed document, such as a malformed subconfigs list.
func documentError(origin, format string, args ...any) error {
	return &ParseError{Origin: origin, Err: fmt.Errorf(format, args...)}
}
