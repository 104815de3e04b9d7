package lexeme

import (
	"reflect"
	"testing"

	"leximap/internal/config"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		gloss string
		want  []string
	}{
		{"no match", "a small domesticated feline", []string{}},
		{"single rule", "a financial institution that accepts deposits and channels the money into lending activities", []string{"Finance"}},
		{"bank matches two rules", "the bank of a river", []string{"Finance", "Place"}},
		{"keyword in two rules", "to charge forward", []string{"Finance", "Action"}},
		{"case insensitive", "BANK", []string{"Finance", "Place"}},
		{"word boundary excludes prefix match", "banking and embankments", []string{}},
		{"word boundary excludes inner match", "a dog in the garden", []string{}},
		{"five matches capped at three", "grab the idea of money near the river with a loud noise", []string{"Physical", "Mental", "Finance"}},
		{"order follows rule table", "a loud noise on the shore", []string{"Place", "Sound"}},
		{"punctuation boundary", "(especially the slope beside a body of water)", []string{"Physical"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(DefaultRules, tt.gloss)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Categorize(%q) = %v, want %v", tt.gloss, got, tt.want)
			}
		})
	}
}

func TestCategorize_NeverNil(t *testing.T) {
	if got := Categorize(DefaultRules, ""); got == nil {
		t.Error("Categorize() returned nil, want empty slice")
	}
	if got := Categorize(nil, "bank"); got == nil || len(got) != 0 {
		t.Errorf("Categorize(nil rules) = %v, want empty slice", got)
	}
}

func TestCategorize_DuplicateLabels(t *testing.T) {
	rules := []Rule{
		mustRule("Place", "river"),
		mustRule("Place", "shore"),
		mustRule("Sound", "loud"),
	}

	got := Categorize(rules, "a loud river shore")
	want := []string{"Place", "Sound"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categorize() = %v, want %v", got, want)
	}
}

func TestNewRule(t *testing.T) {
	if _, err := NewRule("Empty"); err == nil {
		t.Error("NewRule() with no keywords expected error")
	}

	r, err := NewRule("Symbols", "c++", "a.b")
	if err != nil {
		t.Fatalf("NewRule() error = %v", err)
	}
	if r.Pattern.MatchString("axb") {
		t.Error("keywords must be matched literally")
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(nil)
	if err != nil {
		t.Fatalf("RulesFromConfig(nil) error = %v", err)
	}
	if len(rules) != len(DefaultRules) {
		t.Errorf("RulesFromConfig(nil) returned %d rules, want %d", len(rules), len(DefaultRules))
	}

	yc := &config.YAMLConfig{Categories: []config.CategoryConfig{
		{Label: "Weather", Keywords: []string{"rain", "snow"}},
	}}
	rules, err = RulesFromConfig(yc)
	if err != nil {
		t.Fatalf("RulesFromConfig() error = %v", err)
	}
	got := Categorize(rules, "heavy snow fell")
	if !reflect.DeepEqual(got, []string{"Weather"}) {
		t.Errorf("Categorize() with custom rules = %v, want [Weather]", got)
	}
}
