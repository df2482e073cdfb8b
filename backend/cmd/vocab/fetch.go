package main

import (
	"fmt"
	"sort"

	"lexigraph/backend/internal/vocabulary"

	"github.com/spf13/cobra"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fetch <language> [language...]",
		Short: "Print the term/definition pairs of one or more languages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q (want table or json)", format)
			}

			languages := make([]vocabulary.Language, 0, len(args))
			for _, arg := range args {
				language, known := vocabulary.ParseLanguage(arg)
				if !known {
					ctx.log.Sugar().Debugf("language %s is not a recognized code, querying anyway", language)
				}
				languages = append(languages, language)
			}

			opener, err := ctx.opener()
			if err != nil {
				return err
			}
			fetcher := vocabulary.NewFetcher(opener, ctx.log)

			byLanguage, err := fetcher.FetchLanguages(cmd.Context(), languages...)
			if err != nil {
				return err
			}

			if format == "json" {
				out := make(map[string]vocabulary.Mapping, len(byLanguage))
				for language, mapping := range byLanguage {
					out[language.String()] = mapping
				}
				return writeJSON(cmd, out)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderVocabularyTable(byLanguage))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	return cmd
}

func renderVocabularyTable(byLanguage map[vocabulary.Language]vocabulary.Mapping) string {
	languages := make([]vocabulary.Language, 0, len(byLanguage))
	for language := range byLanguage {
		languages = append(languages, language)
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i] < languages[j] })

	var rows [][]string
	for _, language := range languages {
		for _, entry := range byLanguage[language].Entries() {
			rows = append(rows, []string{language.String(), entry.Term, entry.Definition})
		}
	}
	if len(rows) == 0 {
		return "No vocabulary found."
	}
	return renderTable([]string{"Language", "Term", "Definition"}, rows)
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List recognized language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, language := range vocabulary.Languages() {
				rows = append(rows, []string{language.String(), language.Name()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Name"}, rows))
			return nil
		},
	}
}
