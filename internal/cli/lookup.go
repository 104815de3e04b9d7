package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"leximap/internal/config"
	"leximap/internal/lexeme"
	"leximap/internal/models"
	"leximap/internal/relations"
	"leximap/internal/wordnet"
)

// noRelations is the fetcher used with --offline.
type noRelations struct{}

func (noRelations) Fetch(context.Context, string) models.Relations {
	return models.Relations{Synonyms: []string{}, Antonyms: []string{}}
}

func newLookupCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Assemble one lexeme and print it as JSON",
		Long: `lookup builds the same lexeme record the HTTP service returns for a word,
reading senses from a local WordNet dict directory.

Example:
  leximap lookup bank
  leximap lookup "ice cream" --offline`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return o.v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, o, args[0])
		},
	}

	cmd.Flags().String("dict", "./dict", "WordNet dict directory")
	cmd.Flags().String("relations-url", relations.DefaultBaseURL, "relation service endpoint")
	cmd.Flags().Bool("offline", false, "skip the relation service")
	cmd.Flags().String("categories", "", "YAML file overriding the category rules")
	return cmd
}

func runLookup(cmd *cobra.Command, o *options, word string) error {
	log := o.logger()

	dict, err := wordnet.Open(o.v.GetString("dict"))
	if err != nil {
		return err
	}
	defer dict.Close()

	var rules []lexeme.Rule
	if path := o.v.GetString("categories"); path != "" {
		yc, err := config.LoadYAMLConfig(path)
		if err != nil {
			return err
		}
		if rules, err = lexeme.RulesFromConfig(yc); err != nil {
			return err
		}
	}

	var fetcher lexeme.RelationFetcher = noRelations{}
	if !o.v.GetBool("offline") {
		fetcher = relations.NewClient(relations.Options{BaseURL: o.v.GetString("relations-url")}, log)
	}

	lex, err := lexeme.NewAssembler(lexeme.NewResolver(dict, rules), fetcher).Assemble(cmd.Context(), word)
	if err != nil {
		return fmt.Errorf("lookup %q: %w", word, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(lex)
}
