package db

import (
	"context"

	"leximap/internal/models"
)

// IncrementWordLookup upserts a word lookup count by outcome.
func (d *DB) IncrementWordLookup(ctx context.Context, word, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO word_lookups (word, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (word, outcome) DO UPDATE
		SET count = word_lookups.count + 1, last_seen_at = NOW()
	`, word, outcome)
	return err
}

// GetAllWordLookups returns all word lookup rows for metrics export.
func (d *DB) GetAllWordLookups(ctx context.Context) ([]models.WordLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT word, outcome, count, last_seen_at FROM word_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.WordLookup
	for rows.Next() {
		var l models.WordLookup
		if err := rows.Scan(&l.Word, &l.Outcome, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
