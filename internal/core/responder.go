package core

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	CategoryLicenses       = "licenses"
	CategoryVoting         = "voting"
	CategoryTax            = "tax"
	CategorySocialServices = "social_services"
	CategoryLegal          = "legal"
	CategoryGeneral        = "general"
)

// Categories are checked in this order and the first match wins.
var categoryOrder = []string{
	CategoryLicenses,
	CategoryVoting,
	CategoryTax,
	CategorySocialServices,
	CategoryLegal,
}

//go:embed responses.yaml
var responsesYAML []byte

type Reply struct {
	Category string
	Text     string
}

type responseCategory struct {
	Name     string
	Keywords []string
	Text     string
}

// Responder maps a free-text question to a canned reply by keyword category.
// It is safe for concurrent use.
type Responder struct {
	categories []responseCategory
	fallback   Reply
}

func NewResponder() (*Responder, error) {
	return loadResponder(responsesYAML)
}

func loadResponder(data []byte) (*Responder, error) {
	raw := struct {
		Categories []struct {
			Name     string   `yaml:"name"`
			Keywords []string `yaml:"keywords"`
			Reply    string   `yaml:"reply"`
		} `yaml:"categories"`
		Default struct {
			Name  string `yaml:"name"`
			Reply string `yaml:"reply"`
		} `yaml:"default"`
	}{}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing response table: %w", err)
	}

	if len(raw.Categories) != len(categoryOrder) {
		return nil, fmt.Errorf("response table has %d categories, expected %d", len(raw.Categories), len(categoryOrder))
	}

	responder := &Responder{}
	for i, c := range raw.Categories {
		if c.Name != categoryOrder[i] {
			return nil, fmt.Errorf("response category %d is %q, expected %q", i, c.Name, categoryOrder[i])
		}
		if len(c.Keywords) == 0 {
			return nil, fmt.Errorf("response category %q has no keywords", c.Name)
		}
		if strings.TrimSpace(c.Reply) == "" {
			return nil, fmt.Errorf("response category %q has an empty reply", c.Name)
		}

		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("response category %q has an empty keyword", c.Name)
			}
			keywords = append(keywords, kw)
		}

		responder.categories = append(responder.categories, responseCategory{
			Name:     c.Name,
			Keywords: keywords,
			Text:     c.Reply,
		})
	}

	if raw.Default.Name != CategoryGeneral || strings.TrimSpace(raw.Default.Reply) == "" {
		return nil, fmt.Errorf("response table is missing the %q default reply", CategoryGeneral)
	}
	responder.fallback = Reply{Category: raw.Default.Name, Text: raw.Default.Reply}

	return responder, nil
}

// Respond never fails. Keywords match as substrings of the lowercased question,
// so "id" also matches inside longer words.
func (r *Responder) Respond(question string) Reply {
	lower := strings.ToLower(question)
	for _, c := range r.categories {
		if containsAny(lower, c.Keywords) {
			return Reply{Category: c.Name, Text: c.Text}
		}
	}
	return r.fallback
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
