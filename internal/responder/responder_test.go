package responder

import (
	"strings"
	"testing"

	"github.com/indiverse/heritagebot/internal/domain"
)

func testKnowledgeBase() *domain.KnowledgeBase {
	return &domain.KnowledgeBase{
		Moderation: domain.Moderation{
			BlockedWords: []string{"idiot", "Hate"},
			Response:     "Let's keep our conversation respectful and focused on India's heritage.",
		},
		KnowledgeBase: domain.Regions{States: []domain.Region{
			{
				Name:          "Rajasthan",
				Capital:       "Jaipur",
				Language:      "Hindi, Rajasthani",
				Food:          []string{"Dal Baati Churma", "Ghevar"},
				Festivals:     []string{"Pushkar Fair", "Desert Festival"},
				HeritageSites: []string{"Amber Fort", "Hawa Mahal"},
				FamousFor:     []string{"forts", "deserts"},
			},
			{
				Name:          "Kerala",
				Capital:       "Thiruvananthapuram",
				Language:      "Malayalam",
				Food:          []string{"Appam", "Puttu"},
				Festivals:     []string{"Onam"},
				HeritageSites: []string{"Mattancherry Palace"},
				FamousFor:     []string{"backwaters", "Ayurveda"},
			},
			{
				Name:          "Uttar Pradesh",
				Capital:       "Lucknow",
				Language:      "Hindi",
				Food:          []string{"Kebabs"},
				Festivals:     []string{"Kumbh Mela"},
				HeritageSites: []string{"Taj Mahal", "Fatehpur Sikri"},
				FamousFor:     []string{"Mughal architecture"},
			},
		}},
		Intents: []domain.Intent{
			{Intent: "greeting", Keywords: []string{"hello", "namaste"}, Responses: []string{"Namaste! Ask me anything about India's states.", "Hi!"}},
			{Intent: "thanks", Keywords: []string{"thank"}, Responses: []string{"You're welcome!"}},
		},
	}
}

func TestRespondRegionAttributes(t *testing.T) {
	r := New(testKnowledgeBase())

	tests := []struct {
		utterance string
		want      string
	}{
		{"What is the capital of Rajasthan?", "The capital of Rajasthan is Jaipur."},
		{"tell me about food in Kerala", "Some famous foods from Kerala include Appam, Puttu."},
		{"Which LANGUAGE do people speak in kerala", "The primary languages spoken in Kerala are Malayalam."},
		{"rajasthan festivals", "Rajasthan is known for festivals like Pushkar Fair, Desert Festival."},
		{"heritage of Rajasthan", "In Rajasthan, you can visit famous heritage sites like Amber Fort, Hawa Mahal."},
		{"best sites in kerala", "In Kerala, you can visit famous heritage sites like Mattancherry Palace."},
		{"Kerala", "Great choice! Kerala is famous for backwaters, Ayurveda. What would you like to know more about?"},
		// capital outranks food when both appear
		{"food and capital of Kerala", "The capital of Kerala is Thiruvananthapuram."},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			if got := r.Respond(tt.utterance); got != tt.want {
				t.Fatalf("Respond(%q) = %q, want %q", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestRespondModerationWins(t *testing.T) {
	r := New(testKnowledgeBase())
	kb := testKnowledgeBase()

	for _, u := range []string{
		"you idiot, what is the capital of Rajasthan",
		"I HATE this",
		"hello idiot",
		"whatever",
	} {
		got := r.Respond(u)
		blocked := strings.Contains(strings.ToLower(u), "idiot") || strings.Contains(strings.ToLower(u), "hate")
		if blocked && got != kb.Moderation.Response {
			t.Fatalf("Respond(%q) = %q, want moderation response", u, got)
		}
		if !blocked && got == kb.Moderation.Response {
			t.Fatalf("Respond(%q) unexpectedly moderated", u)
		}
	}
}

func TestRespondCrossRegion(t *testing.T) {
	r := New(testKnowledgeBase())

	got := r.Respond("Tell me about the Taj Mahal")
	want := "Taj Mahal is a famous heritage site located in Uttar Pradesh. Uttar Pradesh is also known for Mughal architecture."
	if got != want {
		t.Fatalf("site match = %q, want %q", got, want)
	}

	got = r.Respond("I love backwaters")
	want = "backwaters is a well-known attraction in Kerala. You can also explore other sites there like Mattancherry Palace."
	if got != want {
		t.Fatalf("topic match = %q, want %q", got, want)
	}

	// a site in a later region beats a topic in an earlier one
	got = r.Respond("forts near fatehpur sikri")
	if !strings.HasPrefix(got, "Fatehpur Sikri is a famous heritage site") {
		t.Fatalf("site should outrank topic, got %q", got)
	}
}

func TestRespondRegionOrderWins(t *testing.T) {
	r := New(testKnowledgeBase())

	got := r.Respond("capital of kerala or rajasthan?")
	if got != "The capital of Rajasthan is Jaipur." {
		t.Fatalf("first stored region should win, got %q", got)
	}
}

func TestRespondSubstringMatching(t *testing.T) {
	r := New(testKnowledgeBase())

	// "thanksgiving" contains the "thank" keyword
	if got := r.Respond("happy thanksgiving"); got != "You're welcome!" {
		t.Fatalf("substring keyword should match, got %q", got)
	}
}

func TestRespondIntentsAndFallback(t *testing.T) {
	r := New(testKnowledgeBase())

	if got := r.Respond("Hello there"); got != "Namaste! Ask me anything about India's states." {
		t.Fatalf("greeting intent = %q", got)
	}
	if got := r.Respond("what's the weather like on mars"); got != Fallback {
		t.Fatalf("fallback = %q", got)
	}
}

func TestRespondTotalAndIdempotent(t *testing.T) {
	r := New(testKnowledgeBase())

	for _, u := range []string{"", " ", "???", "rajasthan", "taj mahal", "thank you", "zzz", "IDIOT"} {
		first := r.Respond(u)
		if first == "" {
			t.Fatalf("Respond(%q) returned empty reply", u)
		}
		if second := r.Respond(u); second != first {
			t.Fatalf("Respond(%q) not idempotent: %q then %q", u, first, second)
		}
	}
}

func TestGreeting(t *testing.T) {
	r := New(testKnowledgeBase())
	if got := r.Greeting(); got != "Namaste! Ask me anything about India's states." {
		t.Fatalf("Greeting() = %q", got)
	}
}
