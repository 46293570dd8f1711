package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/tierdeck/internal/core/domain"
	"github.com/custodia-labs/tierdeck/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CatalogSource = (*Source)(nil)

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Source reads a catalog file on every Fetch.
type Source struct {
	path   string
	format Format
}

// NewSource creates a source for path. The format comes from the extension.
func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: catalog path is empty", domain.ErrInvalidInput)
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, format: format}, nil
}

// Name describes the source.
func (s *Source) Name() string {
	return "file:" + s.path
}

// Path returns the catalog file path.
func (s *Source) Path() string {
	return s.path
}

// Fetch reads and decodes the catalog file.
func (s *Source) Fetch(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrCatalogUnavailable, s.path)
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return Decode(data, s.format)
}

// Decode parses catalog data in the given format.
func Decode(data []byte, format Format) (*domain.Catalog, error) {
	var catalog domain.Catalog
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&catalog)
	case FormatYAML:
		err = yaml.Unmarshal(data, &catalog)
	case FormatTOML:
		err = toml.Unmarshal(data, &catalog)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s catalog: %v", domain.ErrInvalidInput, format, err)
	}

	return &catalog, nil
}
