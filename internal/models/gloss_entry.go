package models

// Part-of-speech codes as used by WordNet.
const (
	POSNoun         = "n"
	POSVerb         = "v"
	POSAdjective    = "a"
	POSAdjSatellite = "s"
	POSAdverb       = "r"
)

// GlossEntry is a raw dictionary entry returned by a lexicon backend.
// Gloss is stored as found in the source and is normalized by the resolver.
type GlossEntry struct {
	Offset   int64    `json:"offset"`
	POS      string   `json:"pos"`
	Lemma    string   `json:"lemma"`
	Synonyms []string `json:"synonyms"`
	Gloss    string   `json:"gloss"`
}
