package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leximap/internal/models"
	"leximap/internal/testutil"
	"leximap/internal/wordnet"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "leximap ") {
		t.Errorf("version output = %q", out)
	}
}

func TestLookup_Offline(t *testing.T) {
	dir := testutil.WordNetDict(t)

	out, err := run(t, "lookup", "Bank", "--dict", dir, "--offline")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}

	var lex models.Lexeme
	if err := json.Unmarshal([]byte(out), &lex); err != nil {
		t.Fatalf("output is not a lexeme: %v: %s", err, out)
	}
	if lex.ID != "bank" || len(lex.Senses) != 3 {
		t.Errorf("lexeme = %+v", lex)
	}
	if len(lex.Synonyms) != 0 || len(lex.Antonyms) != 0 {
		t.Errorf("offline lookup should not have relations: %+v", lex)
	}
}

func TestLookup_WithRelations(t *testing.T) {
	dir := testutil.WordNetDict(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rel_syn") != "" {
			w.Write([]byte(`[{"word":"Depository"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	out, err := run(t, "lookup", "bank", "--dict", dir, "--relations-url", srv.URL)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}

	var lex models.Lexeme
	if err := json.Unmarshal([]byte(out), &lex); err != nil {
		t.Fatal(err)
	}
	if len(lex.Synonyms) != 1 || lex.Synonyms[0] != "depository" {
		t.Errorf("synonyms = %v, want [depository]", lex.Synonyms)
	}
}

func TestLookup_CategoryOverride(t *testing.T) {
	dir := testutil.WordNetDict(t)
	rules := filepath.Join(t.TempDir(), "categories.yaml")
	yaml := "categories:\n  - label: Dessert\n    keywords: [dessert, sugar]\n"
	if err := os.WriteFile(rules, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "lookup", "ice cream", "--dict", dir, "--offline", "--categories", rules)
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	if !strings.Contains(out, `"Dessert"`) {
		t.Errorf("expected Dessert category, got %s", out)
	}
}

func TestLookup_EnvBinding(t *testing.T) {
	t.Setenv("LEXIMAP_DICT", testutil.WordNetDict(t))
	t.Setenv("LEXIMAP_OFFLINE", "true")

	out, err := run(t, "lookup", "well")
	if err != nil {
		t.Fatalf("lookup error = %v", err)
	}
	if !strings.Contains(out, `"id": "well"`) {
		t.Errorf("output = %s", out)
	}
}

func TestLookup_MissingDict(t *testing.T) {
	_, err := run(t, "lookup", "bank", "--dict", t.TempDir(), "--offline")
	if !errors.Is(err, wordnet.ErrDictNotFound) {
		t.Errorf("error = %v, want ErrDictNotFound", err)
	}
}

func TestLookup_RequiresWord(t *testing.T) {
	if _, err := run(t, "lookup"); err == nil {
		t.Error("lookup without a word should fail")
	}
}

func TestImport_RequiresDatabaseURL(t *testing.T) {
	_, err := run(t, "import-wordnet", "--dict", testutil.WordNetDict(t))
	if err == nil || !strings.Contains(err.Error(), "database-url") {
		t.Errorf("error = %v, want missing database-url", err)
	}
}

func TestImport_Postgres(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	out, err := run(t, "import-wordnet", "--dict", testutil.WordNetDict(t), "--database-url", dbURL)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.HasPrefix(out, "imported 9 glosses") {
		t.Errorf("output = %q", out)
	}
}
