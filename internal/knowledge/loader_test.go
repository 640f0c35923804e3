package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/indiverse/heritagebot/internal/domain"
)

const sampleJSON = `{
  "moderation": {"blockedWords": ["stupid"], "response": "Let's keep it respectful."},
  "knowledgeBase": {"states": [
    {"name": "Rajasthan", "capital": "Jaipur", "language": "Hindi, Rajasthani",
     "food": ["Dal Baati Churma"], "festivals": ["Pushkar Fair"],
     "heritageSites": ["Amber Fort"], "famousFor": ["forts"]}
  ]},
  "intents": [
    {"intent": "greeting", "keywords": ["hello"], "responses": ["Namaste!"]}
  ]
}`

const sampleYAML = `
moderation:
  blockedWords: [stupid]
  response: Let's keep it respectful.
knowledgeBase:
  states:
    - name: Kerala
      capital: Thiruvananthapuram
      language: Malayalam
      food: [Appam, Puttu]
      festivals: [Onam]
      heritageSites: [Mattancherry Palace]
      famousFor: [backwaters]
intents:
  - intent: greeting
    keywords: [hello, hi]
    responses: ["Namaste!"]
`

func TestParseJSON(t *testing.T) {
	kb, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if len(kb.Regions()) != 1 || kb.Regions()[0].Capital != "Jaipur" {
		t.Fatalf("unexpected regions: %+v", kb.Regions())
	}
	if kb.Moderation.Response != "Let's keep it respectful." {
		t.Fatalf("moderation response = %q", kb.Moderation.Response)
	}
}

func TestParseYAML(t *testing.T) {
	kb, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	region := kb.Regions()[0]
	if region.Name != "Kerala" || len(region.Food) != 2 || region.HeritageSites[0] != "Mattancherry Palace" {
		t.Fatalf("unexpected region: %+v", region)
	}
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no greeting", `{"intents": [{"intent": "thanks", "keywords": ["thanks"], "responses": ["You're welcome!"]}]}`},
		{"greeting without responses", `{"intents": [{"intent": "greeting", "keywords": ["hi"], "responses": []}]}`},
		{"intent without responses", `{"intents": [
			{"intent": "greeting", "keywords": ["hi"], "responses": ["Hi"]},
			{"intent": "bye", "keywords": ["bye"]}]}`},
		{"empty keyword", `{"intents": [{"intent": "greeting", "keywords": [""], "responses": ["Hi"]}]}`},
		{"region without name", `{"knowledgeBase": {"states": [{"capital": "Jaipur"}]},
			"intents": [{"intent": "greeting", "keywords": ["hi"], "responses": ["Hi"]}]}`},
		{"blocked words without response", `{"moderation": {"blockedWords": ["x"]},
			"intents": [{"intent": "greeting", "keywords": ["hi"], "responses": ["Hi"]}]}`},
		{"not json", `{"intents": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			if !errors.Is(err, domain.ErrInvalidKnowledgeBase) {
				t.Fatalf("err = %v, want ErrInvalidKnowledgeBase", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chatbotData.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	kb, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if greeting, _ := kb.FindIntent(domain.GreetingIntent); greeting.Responses[0] != "Namaste!" {
		t.Fatalf("greeting = %+v", greeting)
	}

	if _, err := Load(filepath.Join(dir, "chatbotData.txt")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
