package models

// Language is the only language tag a lexeme is produced for.
const Language = "en"

// Confidence values attached to senses.
const (
	ConfResolved = 0.9
	ConfFallback = 0
)

// Sense is one distinct dictionary meaning of a word.
type Sense struct {
	ID         string   `json:"id"`
	Gloss      string   `json:"gloss"`
	Categories []string `json:"categories"`
	Conf       float64  `json:"conf"`
}

// IsFallback reports whether the sense was synthesized because the lexicon had no entries.
func (s Sense) IsFallback() bool {
	return s.Conf == ConfFallback && len(s.Categories) == 0
}

// Lexeme is the assembled per-word record returned by GET /lexeme/{word}.
type Lexeme struct {
	ID       string   `json:"id"`
	Language string   `json:"language"`
	Senses   []Sense  `json:"senses"`
	Synonyms []string `json:"synonyms"`
	Antonyms []string `json:"antonyms"`
}

// Relations holds the word lists fetched from the relation service.
type Relations struct {
	Synonyms []string
	Antonyms []string
}
