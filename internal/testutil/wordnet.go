package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Synset is one fixture synset: its words (lemma form, optionally with an
// adjective marker such as "good(a)") and its gloss.
type Synset struct {
	Words []string
	Gloss string
}

const wordnetLicense = "  1 This software and database is being provided to you, the LICENSEE,\n  2 by Princeton University under the following license.\n"

// WriteWordNetPart writes data.<name> and index.<name> under dir with correct
// byte offsets.
func WriteWordNetPart(t *testing.T, dir, name, pos string, synsets []Synset) {
	t.Helper()

	var data strings.Builder
	data.WriteString(wordnetLicense)

	index := make(map[string][]int64)
	var order []string
	for _, s := range synsets {
		offset := int64(data.Len())
		var words []string
		for _, w := range s.Words {
			words = append(words, w+" 0")
			lemma := w
			if i := strings.IndexByte(w, '('); i > 0 {
				lemma = w[:i]
			}
			if _, ok := index[lemma]; !ok {
				order = append(order, lemma)
			}
			index[lemma] = append(index[lemma], offset)
		}
		fmt.Fprintf(&data, "%08d 03 %s %02x %s 000 | %s  \n", offset, pos, len(s.Words), strings.Join(words, " "), s.Gloss)
	}

	var idx strings.Builder
	idx.WriteString(wordnetLicense)
	for _, lemma := range order {
		offs := index[lemma]
		strs := make([]string, len(offs))
		for i, o := range offs {
			strs[i] = fmt.Sprintf("%08d", o)
		}
		fmt.Fprintf(&idx, "%s %s %d 1 @ %d 0 %s  \n", lemma, pos, len(offs), len(offs), strings.Join(strs, " "))
	}

	if err := os.WriteFile(filepath.Join(dir, "data."+name), []byte(data.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index."+name), []byte(idx.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

// WordNetDict writes a small four-part dictionary to a temp dir and returns it.
// "bank" has two noun senses and one verb sense.
func WordNetDict(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	WriteWordNetPart(t, dir, "noun", "n", []Synset{
		{[]string{"bank"}, `sloping land (especially the slope beside a body of water); "they pulled the canoe up on the bank"`},
		{[]string{"depository_financial_institution", "bank", "banking_concern"}, "a financial institution that accepts deposits and channels the money into lending activities"},
		{[]string{"ice_cream", "icecream"}, "frozen dessert containing cream and sugar and flavoring"},
	})
	WriteWordNetPart(t, dir, "verb", "v", []Synset{
		{[]string{"bank"}, "do business with a bank or keep an account at a bank"},
	})
	WriteWordNetPart(t, dir, "adj", "a", []Synset{
		{[]string{"good(a)"}, "having desirable or positive qualities"},
	})
	WriteWordNetPart(t, dir, "adv", "r", []Synset{
		{[]string{"well"}, "in a good or proper or satisfactory manner"},
	})
	return dir
}
