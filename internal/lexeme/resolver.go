package lexeme

import (
	"context"
	"fmt"
	"strconv"

	"leximap/internal/models"
	"leximap/internal/validation"
)

// Lexicon is the lexical database the resolver reads dictionary entries from.
// A word with no entries yields an empty slice and a nil error.
type Lexicon interface {
	Lookup(ctx context.Context, word string) ([]models.GlossEntry, error)
}

// Resolver turns raw lexicon entries into deduplicated, categorized senses.
type Resolver struct {
	lexicon Lexicon
	rules   []Rule
}

// NewResolver creates a resolver. A nil rule table selects DefaultRules.
func NewResolver(lexicon Lexicon, rules []Rule) *Resolver {
	if rules == nil {
		rules = DefaultRules
	}
	return &Resolver{lexicon: lexicon, rules: rules}
}

// Resolve looks word up and returns its senses. The result is never empty:
// when no entry carries a usable gloss a single fallback sense is returned.
func (r *Resolver) Resolve(ctx context.Context, word string) ([]models.Sense, error) {
	entries, err := r.lexicon.Lookup(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("lexicon lookup %q: %w", word, err)
	}
	return BuildSenses(r.rules, word, entries), nil
}

// BuildSenses deduplicates entries by normalized gloss and numbers the
// survivors s0, s1, ... in order.
func BuildSenses(rules []Rule, word string, entries []models.GlossEntry) []models.Sense {
	seen := make(map[string]struct{}, len(entries))
	senses := make([]models.Sense, 0, len(entries))

	for _, e := range entries {
		gloss := validation.NormalizeGloss(e.Gloss)
		if gloss == "" {
			continue
		}
		if _, dup := seen[gloss]; dup {
			continue
		}
		seen[gloss] = struct{}{}

		senses = append(senses, models.Sense{
			ID:         SenseID(len(senses)),
			Gloss:      gloss,
			Categories: Categorize(rules, gloss),
			Conf:       models.ConfResolved,
		})
	}

	if len(senses) == 0 {
		senses = append(senses, FallbackSense(word))
	}
	return senses
}

// SenseID formats the identifier of the n-th emitted sense.
func SenseID(n int) string {
	return "s" + strconv.Itoa(n)
}

// FallbackSense is the placeholder returned for words the lexicon does not know.
func FallbackSense(word string) models.Sense {
	return models.Sense{
		ID:         SenseID(0),
		Gloss:      "No definition found for “" + word + "”",
		Categories: []string{},
		Conf:       models.ConfFallback,
	}
}
