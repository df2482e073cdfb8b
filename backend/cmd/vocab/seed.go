package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"lexigraph/backend/internal/vocabulary"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const seedQuery = `
	UNWIND $pairs AS pair
	MERGE (t:Term {name: pair.term, language: $language})
	MERGE (d:Definition {name: pair.definition})
	MERGE (t)-[:DEFINED_AS]->(d)
`

func newSeedCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed <language>",
		Short: "Merge term=definition lines into the graph for a language",
		Long: "Reads one \"term=definition\" pair per line from --file (or stdin when the\n" +
			"file is \"-\"). Blank lines and lines starting with # are ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			language, known := vocabulary.ParseLanguage(args[0])
			if !known {
				return fmt.Errorf("unknown language %q", args[0])
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open seed file: %w", err)
				}
				defer f.Close()
				in = f
			}

			entries, err := parseSeedEntries(in)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to seed.")
				return nil
			}

			opener, err := ctx.opener()
			if err != nil {
				return err
			}

			created, err := seedVocabulary(cmd.Context(), opener, language, entries, ctx.log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d %s terms (%d nodes created)\n", len(entries), language.Name(), created)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Seed file, or - for stdin")
	return cmd
}

func seedVocabulary(ctx context.Context, opener vocabulary.Opener, language vocabulary.Language, entries []vocabulary.Entry, log *zap.Logger) (int, error) {
	session, err := opener.Open(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := session.Close(context.Background()); closeErr != nil {
			log.Warn("Failed to close graph session",
				zap.String("language", language.String()),
				zap.Error(closeErr),
			)
		}
	}()

	pairs := make([]any, 0, len(entries))
	for _, entry := range entries {
		pairs = append(pairs, map[string]any{
			"term":       entry.Term,
			"definition": entry.Definition,
		})
	}

	summary, err := session.Write(ctx, seedQuery, map[string]any{
		"language": string(language),
		"pairs":    pairs,
	})
	if err != nil {
		return 0, err
	}

	log.Info("Vocabulary seeded",
		zap.String("language", language.String()),
		zap.Int("pairs", len(entries)),
		zap.Int("nodes_created", summary.NodesCreated),
		zap.Int("relationships_created", summary.RelationshipsCreated),
	)
	return summary.NodesCreated, nil
}

// parseSeedEntries reads term=definition lines. Only the first '=' splits,
// so definitions may contain '='.
func parseSeedEntries(r io.Reader) ([]vocabulary.Entry, error) {
	var entries []vocabulary.Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		term, definition, ok := strings.Cut(line, "=")
		term = strings.TrimSpace(term)
		definition = strings.TrimSpace(definition)
		if !ok || term == "" || definition == "" {
			return nil, fmt.Errorf("line %d: expected term=definition, got %q", lineNo, line)
		}
		entries = append(entries, vocabulary.Entry{Term: term, Definition: definition})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed input: %w", err)
	}
	return entries, nil
}
