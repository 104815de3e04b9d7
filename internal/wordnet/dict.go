// Package wordnet reads Princeton WordNet database files (index.* and data.*)
// and serves gloss lookups straight from disk.
package wordnet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"leximap/internal/models"
	"leximap/internal/validation"
)

// ErrDictNotFound is returned when the dictionary directory lacks a required file.
var ErrDictNotFound = errors.New("wordnet dictionary not found")

// parts lists the files in lookup order: noun, verb, adjective, adverb.
var parts = []struct {
	name string
	pos  string
}{
	{"noun", models.POSNoun},
	{"verb", models.POSVerb},
	{"adj", models.POSAdjective},
	{"adv", models.POSAdverb},
}

type part struct {
	pos   string
	index map[string][]int64
	data  *os.File
}

// Dict is an open WordNet database. Safe for concurrent use.
type Dict struct {
	dir   string
	parts []*part
}

// Open loads the index files from dir and opens the data files for reading.
func Open(dir string) (*Dict, error) {
	d := &Dict{dir: dir}
	for _, p := range parts {
		pt, err := openPart(dir, p.name, p.pos)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.parts = append(d.parts, pt)
	}
	return d, nil
}

func openPart(dir, name, pos string) (*part, error) {
	indexPath := filepath.Join(dir, "index."+name)
	f, err := os.Open(indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDictNotFound, indexPath)
		}
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	index, err := readIndex(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", indexPath, err)
	}

	dataPath := filepath.Join(dir, "data."+name)
	data, err := os.Open(dataPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDictNotFound, dataPath)
		}
		return nil, fmt.Errorf("open data: %w", err)
	}

	return &part{pos: pos, index: index, data: data}, nil
}

// Close releases the data files.
func (d *Dict) Close() error {
	var errs []error
	for _, p := range d.parts {
		if err := p.data.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dir returns the directory the dictionary was opened from.
func (d *Dict) Dir() string {
	return d.dir
}

// Lookup returns every synset containing word, across all parts of speech.
// An unknown word yields an empty slice.
func (d *Dict) Lookup(ctx context.Context, word string) ([]models.GlossEntry, error) {
	key := validation.LemmaKey(word)
	if key == "" {
		return []models.GlossEntry{}, nil
	}

	entries := []models.GlossEntry{}
	for _, p := range d.parts {
		for _, off := range p.index[key] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			e, err := p.readSynset(off)
			if err != nil {
				return nil, fmt.Errorf("%s synset %08d: %w", p.pos, off, err)
			}
			e.Lemma = key
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// Lemmas returns every distinct lemma in the index files, sorted.
func (d *Dict) Lemmas() []string {
	seen := make(map[string]struct{})
	for _, p := range d.parts {
		for lemma := range p.index {
			seen[lemma] = struct{}{}
		}
	}
	lemmas := make([]string, 0, len(seen))
	for lemma := range seen {
		lemmas = append(lemmas, lemma)
	}
	sort.Strings(lemmas)
	return lemmas
}

func (p *part) readSynset(offset int64) (models.GlossEntry, error) {
	r := bufio.NewReaderSize(io.NewSectionReader(p.data, offset, 1<<20), 4096)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return models.GlossEntry{}, err
	}

	e, err := parseDataLine(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return models.GlossEntry{}, err
	}
	if e.Offset != offset {
		return models.GlossEntry{}, fmt.Errorf("offset mismatch: line starts with %08d", e.Offset)
	}
	return e, nil
}

// readIndex parses an index.<pos> file into lemma -> synset offsets.
// License lines (leading space) are skipped.
func readIndex(r io.Reader) (map[string][]int64, error) {
	index := make(map[string][]int64)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" || line[0] == ' ' {
			continue
		}
		lemma, offsets, err := parseIndexLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		index[lemma] = offsets
	}
	return index, sc.Err()
}

// parseIndexLine parses
// "lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt synset_offset...".
func parseIndexLine(line string) (string, []int64, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return "", nil, fmt.Errorf("too few fields: %q", line)
	}

	synsetCnt, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", nil, fmt.Errorf("synset_cnt: %w", err)
	}
	pCnt, err := strconv.Atoi(fields[3])
	if err != nil {
		return "", nil, fmt.Errorf("p_cnt: %w", err)
	}

	start := 4 + pCnt + 2
	if synsetCnt < 0 || pCnt < 0 || len(fields) < start+synsetCnt {
		return "", nil, fmt.Errorf("expected %d offsets: %q", synsetCnt, line)
	}

	offsets := make([]int64, synsetCnt)
	for i, f := range fields[start : start+synsetCnt] {
		if offsets[i], err = strconv.ParseInt(f, 10, 64); err != nil {
			return "", nil, fmt.Errorf("synset_offset: %w", err)
		}
	}
	return fields[0], offsets, nil
}

// parseDataLine parses
// "offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt ... | gloss".
func parseDataLine(line string) (models.GlossEntry, error) {
	head, gloss, _ := strings.Cut(line, "|")
	fields := strings.Fields(head)
	if len(fields) < 4 {
		return models.GlossEntry{}, fmt.Errorf("too few fields: %q", line)
	}

	offset, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return models.GlossEntry{}, fmt.Errorf("synset_offset: %w", err)
	}
	wCnt, err := strconv.ParseInt(fields[3], 16, 32)
	if err != nil {
		return models.GlossEntry{}, fmt.Errorf("w_cnt: %w", err)
	}
	if len(fields) < 4+2*int(wCnt) {
		return models.GlossEntry{}, fmt.Errorf("expected %d words: %q", wCnt, line)
	}

	words := make([]string, 0, wCnt)
	for i := 0; i < int(wCnt); i++ {
		words = append(words, stripMarker(fields[4+2*i]))
	}

	return models.GlossEntry{
		Offset:   offset,
		POS:      fields[2],
		Synonyms: words,
		Gloss:    strings.TrimSpace(gloss),
	}, nil
}

// stripMarker removes adjective syntactic markers such as "(a)" or "(ip)".
func stripMarker(word string) string {
	if i := strings.IndexByte(word, '('); i > 0 {
		return word[:i]
	}
	return word
}
