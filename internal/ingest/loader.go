// Package ingest decodes documents from disk into plain Go values ready for
// inspection.
package ingest

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/ohler55/ojg/oj"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatHCL    Format = "hcl"
	FormatSQLite Format = "sqlite"
)

var ErrUnknownFormat = errors.New("unknown document format")

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatHCL, FormatSQLite}

// ParseFormat validates a user supplied format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// DetectFormat infers the format from a file extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl", ".tfvars":
		return FormatHCL, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, name)
}

// Loader reads documents through a billy filesystem.
type Loader struct {
	fs billy.Filesystem
}

func NewLoader(fs billy.Filesystem) *Loader {
	return &Loader{fs: fs}
}

// Load decodes the named file. An empty format is inferred from the
// extension.
func (l *Loader) Load(name string, format Format) (any, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(name); err != nil {
			return nil, err
		}
	}

	if format == FormatSQLite {
		// The SQLite driver needs a real path.
		return LoadSQLite(filepath.Join(l.fs.Root(), name))
	}

	data, err := util.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	doc, err := Decode(data, format, name)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return doc, nil
}

// Decode parses an in-memory document. filename is only used in
// diagnostics.
func Decode(data []byte, format Format, filename string) (any, error) {
	switch format {
	case FormatJSON:
		return oj.Parse(data)
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	case FormatHCL:
		return decodeHCL(data, filename)
	case FormatSQLite:
		return nil, fmt.Errorf("%w: sqlite documents must be loaded from a file", ErrUnknownFormat)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// decodeHCL evaluates the top-level attributes of an HCL file without any
// variables or functions in scope. Blocks are not supported.
func decodeHCL(data []byte, filename string) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	doc := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		if doc[name], err = oj.Parse(raw); err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
	}
	return doc, nil
}
