package corpus

import (
	"context"
	"fmt"

	"docsearch/pkg/config"
	"docsearch/pkg/postgres"

	"github.com/lib/pq"
)

// LoadPostgres reads every document row from the configured table in
// primary-key order and assigns sequential corpus IDs in that order. The
// table's own keys are not reused as document IDs; position in the scan is
// what matters, same as line order in a corpus file.
func LoadPostgres(ctx context.Context, client *postgres.Client, cfg config.CorpusConfig) (*Corpus, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id",
		pq.QuoteIdentifier(cfg.Column),
		pq.QuoteIdentifier(cfg.Table),
	)
	rows, err := client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying corpus table %s: %w", cfg.Table, err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scanning corpus row %d: %w", len(docs), err)
		}
		docs = append(docs, NewDocument(len(docs), body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating corpus rows: %w", err)
	}
	return &Corpus{Docs: docs}, nil
}
