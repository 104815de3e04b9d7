package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"leximap/internal/db"
	"leximap/internal/wordnet"
)

func newImportCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-wordnet",
		Short: "Load a WordNet dictionary into Postgres",
		Long: `import-wordnet runs the schema migrations and replaces the contents of the
glosses table with every sense of every lemma in a WordNet dict directory.

Example:
  leximap import-wordnet --dict /usr/share/wordnet --database-url postgres://localhost/leximap`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return o.v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, o)
		},
	}

	cmd.Flags().String("dict", "./dict", "WordNet dict directory")
	cmd.Flags().String("database-url", "", "Postgres connection string")
	cmd.Flags().Duration("timeout", 10*time.Minute, "overall import timeout")
	return cmd
}

func runImport(cmd *cobra.Command, o *options) error {
	dbURL := o.v.GetString("database-url")
	if dbURL == "" {
		return errors.New("--database-url (or LEXIMAP_DATABASE_URL) is required")
	}
	log := o.logger()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.v.GetDuration("timeout"))
	defer cancel()

	dict, err := wordnet.Open(o.v.GetString("dict"))
	if err != nil {
		return err
	}
	defer dict.Close()

	database, err := db.New(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.RunMigrations(dbURL); err != nil {
		return err
	}

	start := time.Now()
	n, err := database.ImportGlosses(ctx, dict)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	log.Info("wordnet import finished", "rows", n, "duration", time.Since(start))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d glosses from %s\n", n, dict.Dir())
	return nil
}
