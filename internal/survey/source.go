package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantumfamily/archetype/internal/httputil"
)

// Source returns every response row known to an upstream table, oldest first.
type Source interface {
	Rows(ctx context.Context) ([]Row, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Row, error)

// Rows calls f.
func (f SourceFunc) Rows(ctx context.Context) ([]Row, error) {
	return f(ctx)
}

// SheetSource reads rows from a SheetDB-style REST endpoint that returns a
// JSON array of objects, one per spreadsheet row.
type SheetSource struct {
	url    string
	client httputil.HTTPClient
}

// NewSheetSource creates a SheetSource. A nil client uses a default
// *http.Client.
func NewSheetSource(url string, client httputil.HTTPClient) *SheetSource {
	if client == nil {
		client = httputil.NewStandardClient(0)
	}
	return &SheetSource{url: url, client: client}
}

// Rows fetches and normalises every row of the sheet.
func (s *SheetSource) Rows(ctx context.Context) ([]Row, error) {
	if s.url == "" {
		return nil, errors.New("sheet url is not configured")
	}
	var raw []map[string]interface{}
	if err := httputil.GetJSON(ctx, s.client, s.url, &raw); err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, NormalizeRow(r))
	}
	logf("fetched %d rows from sheet", len(rows))
	return rows, nil
}
