// Package lexeme assembles per-word lexeme records from a lexical database
// and a word-relation service.
package lexeme

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"leximap/internal/models"
	"leximap/internal/validation"
)

// ErrMissingWord is returned when the requested word is empty.
var ErrMissingWord = errors.New("missing word")

// RelationFetcher fetches synonyms and antonyms for a word. Implementations
// absorb their own failures and return empty lists instead.
type RelationFetcher interface {
	Fetch(ctx context.Context, word string) models.Relations
}

// Assembler merges resolved senses and fetched relations into a Lexeme.
type Assembler struct {
	resolver  *Resolver
	relations RelationFetcher
}

// NewAssembler creates an assembler from its two collaborators.
func NewAssembler(resolver *Resolver, relations RelationFetcher) *Assembler {
	return &Assembler{resolver: resolver, relations: relations}
}

// Assemble builds the lexeme for a raw requested word. Sense resolution and
// relation fetching run concurrently; a resolver error fails the whole call.
func (a *Assembler) Assemble(ctx context.Context, raw string) (*models.Lexeme, error) {
	word := validation.NormalizeWord(raw)
	if word == "" {
		return nil, ErrMissingWord
	}

	var (
		senses    []models.Sense
		relations models.Relations
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		senses, err = a.resolver.Resolve(gctx, word)
		return err
	})
	g.Go(func() error {
		relations = a.relations.Fetch(gctx, word)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.Lexeme{
		ID:       word,
		Language: models.Language,
		Senses:   senses,
		Synonyms: nonNil(relations.Synonyms),
		Antonyms: nonNil(relations.Antonyms),
	}, nil
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
