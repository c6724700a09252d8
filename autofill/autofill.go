package autofill

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"omnihub/constants"
	"omnihub/types"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const promptTemplate = `Find metadata for the video game titled: "%s". Return the official genre and a short 1-sentence description.`

// metadataSchema is what a usable response must look like.
const metadataSchema = `{
  "type": "object",
  "properties": {
    "title":       {"type": "string"},
    "genre":       {"type": "string"},
    "description": {"type": "string"}
  },
  "required": ["title", "genre", "description"]
}`

// responseSchema is the same contract in the dialect the model accepts.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"title":       map[string]any{"type": "STRING"},
		"genre":       map[string]any{"type": "STRING"},
		"description": map[string]any{"type": "STRING"},
	},
	"required": []string{"title", "genre", "description"},
}

// Generator produces a JSON document for a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (string, error)
}

// UIProvider defines the logging needed by the autofill service.
type UIProvider interface {
	LogInfof(format string, args ...interface{})
	LogErrorf(format string, args ...interface{})
}

// Service turns a free-text title into game metadata.
type Service struct {
	mu     sync.RWMutex
	gen    Generator
	ui     UIProvider
	schema *gojsonschema.Schema
}

// New creates a new autofill Service. A nil generator makes every lookup come back empty.
func New(gen Generator, ui UIProvider) (*Service, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(metadataSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile metadata schema: %w", err)
	}
	return &Service{gen: gen, ui: ui, schema: schema}, nil
}

// SetGenerator swaps the generator, used when the API settings change.
func (s *Service) SetGenerator(gen Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen = gen
}

func (s *Service) generator() Generator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Fetch looks up metadata for title. Every failure is logged and reported as
// absence; the caller keeps whatever it had.
func (s *Service) Fetch(ctx context.Context, title string) (types.Metadata, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return types.Metadata{}, false
	}
	gen := s.generator()
	if gen == nil {
		s.ui.LogErrorf("Autofill: no metadata generator configured")
		return types.Metadata{}, false
	}

	text, err := gen.GenerateJSON(ctx, fmt.Sprintf(promptTemplate, title), responseSchema)
	if err != nil {
		s.ui.LogErrorf("Autofill: lookup for %q failed: %v", title, err)
		return types.Metadata{}, false
	}

	md, err := s.parse(text)
	if err != nil {
		s.ui.LogErrorf("Autofill: unusable response for %q: %v", title, err)
		return types.Metadata{}, false
	}

	s.ui.LogInfof("Autofill: found %q (%s)", md.Title, md.Genre)
	return md, true
}

func (s *Service) parse(text string) (types.Metadata, error) {
	res, err := s.schema.Validate(gojsonschema.NewStringLoader(text))
	if err != nil {
		return types.Metadata{}, fmt.Errorf("response is not JSON: %w", err)
	}
	if !res.Valid() {
		var msgs []string
		for i, e := range res.Errors() {
			if i >= 5 {
				break
			}
			msgs = append(msgs, e.String())
		}
		return types.Metadata{}, fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	var md types.Metadata
	if err := json.Unmarshal([]byte(text), &md); err != nil {
		return types.Metadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return md, nil
}

// CoverURL returns the placeholder cover seeded by title.
func CoverURL(title string) string {
	return fmt.Sprintf(constants.SeededCoverURL, escapeComponent(title))
}

// componentUnescaper restores the marks a browser leaves alone when encoding
// a URI component, so seeds match the ones the web client produced.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
