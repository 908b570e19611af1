package equipment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var extensions = []string{"", ".yaml", ".yml", ".json"}

// Loader reads equipment list documents from disk.
type Loader struct {
	validator   *Validator
	searchPaths []string
	logger      *zap.Logger
}

func NewLoader(searchPaths []string, logger *zap.Logger) (*Loader, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	return &Loader{
		validator:   validator,
		searchPaths: searchPaths,
		logger:      logger,
	}, nil
}

// Load resolves name as a path, then against each search path with the known
// extensions, and returns the validated document.
func (l *Loader) Load(name string) (*Document, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := l.Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.logger.Info("Equipment list loaded",
		zap.String("path", path),
		zap.String("station", doc.StationName),
		zap.Int("items", len(doc.Equipment)))

	return doc, nil
}

// Parse decodes and validates a document. ext selects YAML (.yaml, .yml) or JSON;
// anything else is tried as JSON first and YAML second.
func (l *Loader) Parse(data []byte, ext string) (*Document, error) {
	jsonData, err := toJSON(data, strings.ToLower(ext))
	if err != nil {
		return nil, err
	}

	if err := l.validator.Validate(jsonData); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal equipment list: %w", err)
	}

	return &doc, nil
}

func (l *Loader) resolve(name string) (string, error) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		for _, searchPath := range l.searchPaths {
			candidates = append(candidates, filepath.Join(searchPath, name))
		}
	}

	for _, base := range candidates {
		for _, ext := range extensions {
			p := base + ext
			info, err := os.Stat(p)
			if err == nil && !info.IsDir() {
				return p, nil
			}
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %s: %w", p, err)
			}
		}
	}

	return "", fmt.Errorf("equipment list not found: %s (searched in: %v)", name, l.searchPaths)
}

// toJSON normalises YAML input to JSON so that one schema covers both formats.
func toJSON(data []byte, ext string) ([]byte, error) {
	switch ext {
	case ".json":
		return data, nil
	case ".yaml", ".yml":
		return yamlToJSON(data)
	default:
		if json.Valid(data) {
			return data, nil
		}
		return yamlToJSON(data)
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML: %w", err)
	}
	return out, nil
}
