package wordnet

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"leximap/internal/models"
	"leximap/internal/testutil"
)

func TestOpen_MissingFiles(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrDictNotFound) {
		t.Errorf("Open(empty dir) error = %v, want ErrDictNotFound", err)
	}
}

func TestDict_Lookup(t *testing.T) {
	d, err := Open(testutil.WordNetDict(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer d.Close()

	entries, err := d.Lookup(context.Background(), "bank")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	wantPOS := []string{"n", "n", "v"}
	for i, e := range entries {
		if e.POS != wantPOS[i] {
			t.Errorf("entries[%d].POS = %q, want %q", i, e.POS, wantPOS[i])
		}
		if e.Lemma != "bank" {
			t.Errorf("entries[%d].Lemma = %q, want bank", i, e.Lemma)
		}
	}

	if want := `sloping land (especially the slope beside a body of water); "they pulled the canoe up on the bank"`; entries[0].Gloss != want {
		t.Errorf("entries[0].Gloss = %q, want %q", entries[0].Gloss, want)
	}
	if want := []string{"depository_financial_institution", "bank", "banking_concern"}; !reflect.DeepEqual(entries[1].Synonyms, want) {
		t.Errorf("entries[1].Synonyms = %v, want %v", entries[1].Synonyms, want)
	}
}

func TestDict_Lookup_Normalization(t *testing.T) {
	d, err := Open(testutil.WordNetDict(t))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	tests := []struct {
		name string
		word string
		want int
	}{
		{"multi word with space", "ice cream", 1},
		{"uppercase", "ICE CREAM", 1},
		{"adjective marker stripped", "good", 1},
		{"adverb", "well", 1},
		{"unknown", "xyzzyqq", 0},
		{"blank", "  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := d.Lookup(context.Background(), tt.word)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.word, err)
			}
			if entries == nil {
				t.Fatalf("Lookup(%q) returned nil slice", tt.word)
			}
			if len(entries) != tt.want {
				t.Errorf("Lookup(%q) returned %d entries, want %d", tt.word, len(entries), tt.want)
			}
		})
	}
}

func TestDict_Lookup_CanceledContext(t *testing.T) {
	d, err := Open(testutil.WordNetDict(t))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Lookup(ctx, "bank"); !errors.Is(err, context.Canceled) {
		t.Errorf("Lookup() error = %v, want context.Canceled", err)
	}
}

func TestDict_Lemmas(t *testing.T) {
	d, err := Open(testutil.WordNetDict(t))
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	want := []string{"bank", "banking_concern", "depository_financial_institution", "good", "ice_cream", "icecream", "well"}
	if got := d.Lemmas(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lemmas() = %v, want %v", got, want)
	}
}

func TestParseIndexLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		lemma   string
		offsets []int64
		wantErr bool
	}{
		{"with pointers", "bank n 2 3 @ ~ + 2 1 09213565 08420278  ", "bank", []int64{9213565, 8420278}, false},
		{"no pointers", "well r 1 0 1 0 00011093  ", "well", []int64{11093}, false},
		{"too few fields", "bank n 1", "", nil, true},
		{"missing offsets", "bank n 3 0 3 0 00000001", "", nil, true},
		{"bad count", "bank n x 0 1 0 00000001", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lemma, offsets, err := parseIndexLine(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIndexLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if lemma != tt.lemma || !reflect.DeepEqual(offsets, tt.offsets) {
				t.Errorf("parseIndexLine() = %q, %v, want %q, %v", lemma, offsets, tt.lemma, tt.offsets)
			}
		})
	}
}

func TestParseDataLine(t *testing.T) {
	line := "09213565 17 n 02 bank 0 shore 1 002 @ 09335240 n 0000 #p 09411430 n 0000 | sloping land; \"a bank\"  "

	e, err := parseDataLine(line)
	if err != nil {
		t.Fatalf("parseDataLine() error = %v", err)
	}
	want := models.GlossEntry{
		Offset:   9213565,
		POS:      "n",
		Synonyms: []string{"bank", "shore"},
		Gloss:    `sloping land; "a bank"`,
	}
	if !reflect.DeepEqual(e, want) {
		t.Errorf("parseDataLine() = %+v, want %+v", e, want)
	}

	if _, err := parseDataLine("09213565 17 n 0a bank 0 | gloss"); err == nil {
		t.Error("parseDataLine() expected error for truncated word list")
	}
}
