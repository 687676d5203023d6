package survey

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantumfamily/archetype/internal/roles"
)

var (
	// ErrNoRows means the source holds no response for the identifier.
	ErrNoRows = errors.New("no results found")
	// ErrMissingColumn means a required column is absent from the row.
	ErrMissingColumn = errors.New("missing column")
)

// FetchError wraps a failure of the upstream source itself.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch survey rows: " + e.Err.Error() }

func (e *FetchError) Unwrap() error { return e.Err }

// Response is a parsed survey row.
type Response struct {
	UserID string
	Scores roles.Scores
	Band   roles.Band
}

// Latest returns the last row whose user_id equals userID.
func Latest(rows []Row, userID string) (Row, bool) {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i][ColumnUserID] == userID {
			return rows[i], true
		}
	}
	return nil, false
}

// ParseResponse reads the scores and band out of a row.
func ParseResponse(row Row) (Response, error) {
	get := func(col string) (string, error) {
		v, ok := row[col]
		if !ok {
			return "", fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
		return v, nil
	}

	var resp Response
	var err error
	if resp.UserID, err = get(ColumnUserID); err != nil {
		return Response{}, err
	}

	scores := []struct {
		col string
		dst *int
	}{
		{ColumnFreedom, &resp.Scores.Freedom},
		{ColumnSecurity, &resp.Scores.Security},
		{ColumnResponsibility, &resp.Scores.Responsibility},
	}
	for _, s := range scores {
		v, err := get(s.col)
		if err != nil {
			return Response{}, err
		}
		if *s.dst, err = roles.ParseScore(s.col, v); err != nil {
			return Response{}, err
		}
	}

	v, err := get(ColumnBand)
	if err != nil {
		return Response{}, err
	}
	if resp.Band, err = roles.ParseBand(v); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Lookup fetches the rows from src and parses the latest one for userID.
func Lookup(ctx context.Context, src Source, userID string) (Response, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return Response{}, &FetchError{Err: err}
	}
	row, ok := Latest(rows, userID)
	if !ok {
		return Response{}, fmt.Errorf("user %q: %w", userID, ErrNoRows)
	}
	return ParseResponse(row)
}
