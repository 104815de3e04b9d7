package lexeme

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"leximap/internal/config"
)

// MaxCategories caps how many category labels a sense carries.
const MaxCategories = 3

// Rule tags a gloss with Label when Pattern matches anywhere in it.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

// NewRule compiles a word-boundary, case-insensitive alternation of keywords.
func NewRule(label string, keywords ...string) (Rule, error) {
	if len(keywords) == 0 {
		return Rule{}, fmt.Errorf("category %q: no keywords", label)
	}
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	re, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return Rule{}, fmt.Errorf("category %q: %w", label, err)
	}
	return Rule{Label: label, Pattern: re}, nil
}

func mustRule(label string, keywords ...string) Rule {
	r, err := NewRule(label, keywords...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRules is the built-in category table, in match order.
var DefaultRules = []Rule{
	mustRule("Physical", "grab", "hold", "touch", "object", "hand", "surface", "edge", "weight", "move", "body", "material", "seize", "grip"),
	mustRule("Mental", "think", "understand", "idea", "concept", "intellect", "imagine", "know", "believe", "plan", "comprehend", "grasp"),
	mustRule("Finance", "money", "cost", "charge", "price", "debt", "credit", "bank", "pay", "fee"),
	mustRule("Place", "river", "bank", "shore", "coast", "location", "place", "site", "ground"),
	mustRule("Sound", "sound", "tone", "sharp", "flat", "loud", "pitch", "noise"),
	mustRule("Value", "good", "bad", "moral", "nice", "awful", "worthy", "just"),
	mustRule("Action", "run", "charge", "attack", "act", "do", "perform", "execute", "proceed", "go", "move"),
}

// RulesFromConfig builds a rule table from the YAML category section.
// An absent or empty section yields DefaultRules.
func RulesFromConfig(yc *config.YAMLConfig) ([]Rule, error) {
	if !yc.HasCategories() {
		return DefaultRules, nil
	}
	rules := make([]Rule, 0, len(yc.Categories))
	for _, c := range yc.Categories {
		r, err := NewRule(c.Label, c.Keywords...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Categorize returns the labels of all rules matching gloss, in rule order,
// without duplicates and truncated to MaxCategories. Never nil.
func Categorize(rules []Rule, gloss string) []string {
	labels := make([]string, 0, MaxCategories)
	for _, r := range rules {
		if len(labels) == MaxCategories {
			break
		}
		if !r.Pattern.MatchString(gloss) || slices.Contains(labels, r.Label) {
			continue
		}
		labels = append(labels, r.Label)
	}
	return labels
}
