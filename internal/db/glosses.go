package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leximap/internal/models"
	"leximap/internal/validation"
)

// GlossSource yields lexicon entries lemma by lemma, e.g. an open WordNet dictionary.
type GlossSource interface {
	Lemmas() []string
	Lookup(ctx context.Context, word string) ([]models.GlossEntry, error)
}

// Lookup returns the stored entries for word in import order.
// An unknown word yields an empty slice.
func (d *DB) Lookup(ctx context.Context, word string) ([]models.GlossEntry, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT synset_offset, pos, lemma, synonyms, gloss
		FROM glosses
		WHERE word = $1
		ORDER BY ordinal
	`, validation.LemmaKey(word))
	if err != nil {
		return nil, fmt.Errorf("query glosses: %w", err)
	}
	defer rows.Close()

	entries := []models.GlossEntry{}
	for rows.Next() {
		var e models.GlossEntry
		if err := rows.Scan(&e.Offset, &e.POS, &e.Lemma, &e.Synonyms, &e.Gloss); err != nil {
			return nil, fmt.Errorf("scan gloss: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ImportGlosses replaces the glosses table with every entry of src.
// The import runs in one transaction; readers see the old or the new set.
func (d *DB) ImportGlosses(ctx context.Context, src GlossSource) (int64, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM glosses`); err != nil {
		return 0, fmt.Errorf("clear glosses: %w", err)
	}

	lemmas := src.Lemmas()
	var (
		li      int
		pending []models.GlossEntry
		ordinal int
		word    string
	)

	// next yields one row per call, looking lemmas up as it goes.
	next := func() ([]any, error) {
		for len(pending) == 0 {
			if li >= len(lemmas) {
				return nil, nil
			}
			word = lemmas[li]
			li++
			entries, err := src.Lookup(ctx, word)
			if err != nil {
				return nil, fmt.Errorf("lookup %q: %w", word, err)
			}
			pending, ordinal = entries, 0
		}

		e := pending[0]
		pending = pending[1:]
		row := []any{word, ordinal, e.POS, e.Offset, e.Lemma, nonNilStrings(e.Synonyms), e.Gloss}
		ordinal++
		return row, nil
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"glosses"},
		[]string{"word", "ordinal", "pos", "synset_offset", "lemma", "synonyms", "gloss"},
		pgx.CopyFromFunc(next),
	)
	if err != nil {
		return 0, fmt.Errorf("copy glosses: %w", err)
	}
	if n == 0 {
		return 0, ErrEmptyImport
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
