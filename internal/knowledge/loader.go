// Package knowledge loads the chatbot knowledge document and checks that it
// can drive the responder.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indiverse/heritagebot/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a knowledge document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the document format from its file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported knowledge document: %s", path)
	}
}

// Load reads and validates the knowledge document at path
func Load(path string) (*domain.KnowledgeBase, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge document: %w", err)
	}

	return Parse(data, format)
}

// Parse decodes and validates a knowledge document
func Parse(data []byte, format Format) (*domain.KnowledgeBase, error) {
	kb := &domain.KnowledgeBase{}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, kb)
	case FormatYAML:
		err = yaml.Unmarshal(data, kb)
	default:
		return nil, fmt.Errorf("unsupported knowledge format: %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKnowledgeBase, err)
	}

	if err := Validate(kb); err != nil {
		return nil, err
	}
	return kb, nil
}

// Validate rejects documents the responder cannot answer from. An empty
// needle would match every utterance, so empty names and keywords are errors.
func Validate(kb *domain.KnowledgeBase) error {
	greeting, ok := kb.FindIntent(domain.GreetingIntent)
	if !ok {
		return invalid("missing %q intent", domain.GreetingIntent)
	}
	if len(greeting.Responses) == 0 || greeting.Responses[0] == "" {
		return invalid("%q intent has no response", domain.GreetingIntent)
	}

	if len(kb.Moderation.BlockedWords) > 0 && kb.Moderation.Response == "" {
		return invalid("moderation response is empty")
	}
	if i := indexEmpty(kb.Moderation.BlockedWords); i >= 0 {
		return invalid("blocked word %d is empty", i)
	}

	for i, region := range kb.Regions() {
		if strings.TrimSpace(region.Name) == "" {
			return invalid("region %d has no name", i)
		}
		if j := indexEmpty(region.HeritageSites); j >= 0 {
			return invalid("region %q: heritage site %d is empty", region.Name, j)
		}
		if j := indexEmpty(region.FamousFor); j >= 0 {
			return invalid("region %q: famousFor topic %d is empty", region.Name, j)
		}
	}

	for i, intent := range kb.Intents {
		if len(intent.Responses) == 0 || intent.Responses[0] == "" {
			return invalid("intent %d (%s) has no response", i, intent.Intent)
		}
		if j := indexEmpty(intent.Keywords); j >= 0 {
			return invalid("intent %q: keyword %d is empty", intent.Intent, j)
		}
	}

	return nil
}

func indexEmpty(values []string) int {
	for i, v := range values {
		if v == "" {
			return i
		}
	}
	return -1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidKnowledgeBase, fmt.Sprintf(format, args...))
}
