// Package vocabulary reads term/definition pairs straight from the graph.
// It is a minimal read adapter for clients that have not moved to a
// dedicated vocabulary source yet; keep it small.
package vocabulary

import (
	"context"
	"fmt"

	"lexigraph/backend/internal/graph"
	"lexigraph/backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// vocabularyQuery matches any outgoing relationship from a Term to a
// Definition. Column 0 is the term, column 1 the definition.
const vocabularyQuery = `MATCH (t:Term WHERE t.language = $language)-[r]->(d:Definition) RETURN t.name, d.name`

// Opener opens a graph session. *graph.Connector satisfies it.
type Opener interface {
	Open(ctx context.Context) (graph.Session, error)
}

// Fetcher reads term/definition pairs for a language
type Fetcher struct {
	opener Opener
	logger *zap.Logger
}

// NewFetcher creates a fetcher backed by opener
func NewFetcher(opener Opener, log *zap.Logger) *Fetcher {
	if log == nil {
		log = logger.Get()
	}
	return &Fetcher{
		opener: opener,
		logger: log.Named("vocabulary"),
	}
}

// FetchByLanguage returns every term of language mapped to its definition.
// Each call opens its own session and closes it before returning. Rows are
// applied in server order, so a repeated term keeps the definition of the
// last row. Rows with a null or non-string term or definition are skipped.
// An unknown language yields an empty mapping, not an error.
func (f *Fetcher) FetchByLanguage(ctx context.Context, language Language) (Mapping, error) {
	session, err := f.opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := session.Close(context.Background()); closeErr != nil {
			f.logger.Warn("Failed to close graph session",
				zap.String("language", language.String()),
				zap.Error(closeErr),
			)
		}
	}()

	records, err := session.Read(ctx, vocabularyQuery, map[string]any{
		"language": string(language),
	})
	if err != nil {
		return nil, err
	}

	vocabulary := make(Mapping, len(records))
	skipped := 0
	for i, record := range records {
		term, termOK := graph.StringAt(record, 0)
		definition, definitionOK := graph.StringAt(record, 1)
		if !termOK || !definitionOK {
			skipped++
			f.logger.Debug("Skipping vocabulary row with missing field",
				zap.String("language", language.String()),
				zap.Int("row", i),
			)
			continue
		}
		vocabulary[term] = definition
	}

	f.logger.Debug("Vocabulary fetched",
		zap.String("language", language.String()),
		zap.Int("rows", len(records)),
		zap.Int("terms", len(vocabulary)),
		zap.Int("skipped", skipped),
	)

	return vocabulary, nil
}

// FetchLanguages fetches several languages concurrently, one session each.
// Repeated languages are fetched once. The first failure cancels the
// remaining fetches and is returned.
func (f *Fetcher) FetchLanguages(ctx context.Context, languages ...Language) (map[Language]Mapping, error) {
	unique := make([]Language, 0, len(languages))
	seen := make(map[Language]bool, len(languages))
	for _, language := range languages {
		if seen[language] {
			continue
		}
		seen[language] = true
		unique = append(unique, language)
	}

	results := make([]Mapping, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	for i, language := range unique {
		g.Go(func() error {
			vocabulary, err := f.FetchByLanguage(gctx, language)
			if err != nil {
				return fmt.Errorf("fetch %s vocabulary: %w", language, err)
			}
			results[i] = vocabulary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byLanguage := make(map[Language]Mapping, len(unique))
	for i, language := range unique {
		byLanguage[language] = results[i]
	}
	return byLanguage, nil
}
