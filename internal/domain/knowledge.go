package domain

// GreetingIntent is the intent whose first response opens every conversation
const GreetingIntent = "greeting"

// KnowledgeBase is the static chatbot document: moderation policy, regional
// facts and canned intents.
type KnowledgeBase struct {
	Moderation    Moderation `json:"moderation" yaml:"moderation"`
	KnowledgeBase Regions    `json:"knowledgeBase" yaml:"knowledgeBase"`
	Intents       []Intent   `json:"intents" yaml:"intents"`
}

// Regions wraps the ordered region list as it appears in the document
type Regions struct {
	States []Region `json:"states" yaml:"states"`
}

// Region describes one Indian state or territory
type Region struct {
	Name          string   `json:"name" yaml:"name"`
	Capital       string   `json:"capital" yaml:"capital"`
	Language      string   `json:"language" yaml:"language"`
	Food          []string `json:"food" yaml:"food"`
	Festivals     []string `json:"festivals" yaml:"festivals"`
	HeritageSites []string `json:"heritageSites" yaml:"heritageSites"`
	FamousFor     []string `json:"famousFor" yaml:"famousFor"`
}

// Intent is a keyword-triggered canned response rule
type Intent struct {
	Intent    string   `json:"intent" yaml:"intent"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	Responses []string `json:"responses" yaml:"responses"`
}

// Moderation is the blocked-substring filter applied before any other rule
type Moderation struct {
	BlockedWords []string `json:"blockedWords" yaml:"blockedWords"`
	Response     string   `json:"response" yaml:"response"`
}

// Regions returns the regions in stored order
func (kb *KnowledgeBase) Regions() []Region {
	return kb.KnowledgeBase.States
}

// FindIntent returns the intent with the given name
func (kb *KnowledgeBase) FindIntent(name string) (Intent, bool) {
	for _, in := range kb.Intents {
		if in.Intent == name {
			return in, true
		}
	}
	return Intent{}, false
}
