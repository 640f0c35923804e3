// Package responder answers chat utterances from the static knowledge base.
//
// Rules are evaluated in a fixed order and the first match wins: moderation,
// region attributes, heritage sites and topics across regions, intents, and
// finally a fixed fallback. Every comparison is a case-insensitive substring
// check, so a needle inside an unrelated word still matches.
package responder

import (
	"fmt"
	"strings"

	"github.com/indiverse/heritagebot/internal/domain"
)

// Fallback is returned when no rule matches
const Fallback = "I'm not sure how to answer that. You can ask me about the capital, language, food, or festivals of a specific state in India!"

// Responder is immutable after New and safe for concurrent use
type Responder struct {
	kb       *domain.KnowledgeBase
	blocked  []string
	regions  []region
	intents  []intent
	greeting string
}

type region struct {
	domain.Region
	name   string
	sites  []string
	topics []string
}

type intent struct {
	keywords []string
	response string
}

// New builds a responder over a validated knowledge base
func New(kb *domain.KnowledgeBase) *Responder {
	r := &Responder{
		kb:      kb,
		blocked: lowerAll(kb.Moderation.BlockedWords),
	}

	for _, reg := range kb.Regions() {
		r.regions = append(r.regions, region{
			Region: reg,
			name:   strings.ToLower(reg.Name),
			sites:  lowerAll(reg.HeritageSites),
			topics: lowerAll(reg.FamousFor),
		})
	}

	for _, in := range kb.Intents {
		var response string
		if len(in.Responses) > 0 {
			response = in.Responses[0]
		}
		r.intents = append(r.intents, intent{keywords: lowerAll(in.Keywords), response: response})
	}

	if greeting, ok := kb.FindIntent(domain.GreetingIntent); ok && len(greeting.Responses) > 0 {
		r.greeting = greeting.Responses[0]
	}

	return r
}

// KnowledgeBase returns the document the responder was built from
func (r *Responder) KnowledgeBase() *domain.KnowledgeBase {
	return r.kb
}

// Greeting is the first response of the greeting intent
func (r *Responder) Greeting() string {
	return r.greeting
}

// Respond returns exactly one reply for the utterance
func (r *Responder) Respond(utterance string) string {
	text := strings.ToLower(utterance)

	if containsAny(text, r.blocked) {
		return r.kb.Moderation.Response
	}

	if reply, ok := r.regionAttribute(text); ok {
		return reply
	}

	if reply, ok := r.crossRegion(text); ok {
		return reply
	}

	for _, in := range r.intents {
		if containsAny(text, in.keywords) && in.response != "" {
			return in.response
		}
	}

	return Fallback
}

// regionAttribute answers for the first region named in the text
func (r *Responder) regionAttribute(text string) (string, bool) {
	for _, reg := range r.regions {
		if !strings.Contains(text, reg.name) {
			continue
		}

		name := reg.Name
		switch {
		case strings.Contains(text, "capital"):
			return fmt.Sprintf("The capital of %s is %s.", name, reg.Capital), true
		case strings.Contains(text, "language"):
			return fmt.Sprintf("The primary languages spoken in %s are %s.", name, reg.Language), true
		case strings.Contains(text, "food"):
			return fmt.Sprintf("Some famous foods from %s include %s.", name, join(reg.Food)), true
		case strings.Contains(text, "festival"):
			return fmt.Sprintf("%s is known for festivals like %s.", name, join(reg.Festivals)), true
		case strings.Contains(text, "heritage"), strings.Contains(text, "sites"):
			return fmt.Sprintf("In %s, you can visit famous heritage sites like %s.", name, join(reg.HeritageSites)), true
		default:
			return fmt.Sprintf("Great choice! %s is famous for %s. What would you like to know more about?", name, join(reg.FamousFor)), true
		}
	}
	return "", false
}

// crossRegion looks for a heritage site, then a famous-for topic, in any region
func (r *Responder) crossRegion(text string) (string, bool) {
	for _, reg := range r.regions {
		for i, site := range reg.sites {
			if strings.Contains(text, site) {
				return fmt.Sprintf("%s is a famous heritage site located in %s. %s is also known for %s.",
					reg.HeritageSites[i], reg.Name, reg.Name, join(reg.FamousFor)), true
			}
		}
	}

	for _, reg := range r.regions {
		for i, topic := range reg.topics {
			if strings.Contains(text, topic) {
				return fmt.Sprintf("%s is a well-known attraction in %s. You can also explore other sites there like %s.",
					reg.FamousFor[i], reg.Name, join(reg.HeritageSites)), true
			}
		}
	}

	return "", false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func join(values []string) string {
	return strings.Join(values, ", ")
}
