package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/quantumfamily/archetype/internal/survey"
)

// columnSubmittedAt optionally carries the original submission time.
const columnSubmittedAt = "submitted_at"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"2006-01-02",
}

// ResponseWriter stores parsed responses. *db.DB implements it.
type ResponseWriter interface {
	InsertResponse(ctx context.Context, resp survey.Response) (string, error)
	InsertResponseAt(ctx context.Context, resp survey.Response, at time.Time) (string, error)
}

// Skip records a data line that could not be imported.
type Skip struct {
	Line int
	Err  error
}

// Stats summarises an import run.
type Stats struct {
	Total    int
	Imported int
	Skips    []Skip
}

// RunImport reads a CSV export with a header row from r and inserts every
// valid response into w. Invalid lines are skipped and reported in Stats.
// With dry set nothing is written.
func RunImport(ctx context.Context, w ResponseWriter, r io.Reader, dry bool) (Stats, error) {
	var stats Stats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return stats, errors.New("csv is empty")
	}
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = survey.NormalizeColumn(strings.TrimPrefix(h, "\ufeff"))
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		stats.Total++

		row := make(survey.Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = strings.TrimSpace(rec[i])
			}
		}

		resp, err := survey.ParseResponse(row)
		if err != nil {
			stats.Skips = append(stats.Skips, Skip{Line: line, Err: err})
			continue
		}
		at, hasTime, err := submittedAt(row)
		if err != nil {
			stats.Skips = append(stats.Skips, Skip{Line: line, Err: err})
			continue
		}

		if !dry {
			if hasTime {
				_, err = w.InsertResponseAt(ctx, resp, at)
			} else {
				_, err = w.InsertResponse(ctx, resp)
			}
			if err != nil {
				return stats, fmt.Errorf("line %d: %w", line, err)
			}
		}
		stats.Imported++
	}
	return stats, nil
}

func submittedAt(row survey.Row) (time.Time, bool, error) {
	v := row[columnSubmittedAt]
	if v == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("submitted_at %q: unrecognised time format", v)
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
