package survey

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumfamily/archetype/internal/httputil"
	"github.com/quantumfamily/archetype/internal/roles"
	"github.com/quantumfamily/archetype/internal/testutil"
	"github.com/quantumfamily/archetype/internal/timeutil"
)

const sheetFixture = `[
	{"User ID": "alice", "Freedom": "1", "Security": "4", "Responsibility": "2", "K Band": "1"},
	{"User ID": "bob", "Freedom": 3, "Security": 2, "Responsibility": 4, "K Band": 3},
	{"User ID": "alice", "Freedom": "3.0", "Security": "2", "Responsibility": "4", "K Band": "3"}
]`

func TestNormalizeColumn(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"user_id":          "user_id",
		" User ID ":        "user_id",
		"K Band":           "k_band",
		"RESPONSIBILITY":   "responsibility",
		"Submitted At Utc": "submitted_at_utc",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeColumn(in), "input %q", in)
	}
}

func TestNormalizeRow(t *testing.T) {
	t.Parallel()

	got := NormalizeRow(map[string]interface{}{
		"User ID": "bob",
		"Freedom": float64(3),
		"Note":    nil,
		"Done":    true,
	})
	want := Row{"user_id": "bob", "freedom": "3", "note": "", "done": "true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeRow mismatch (-want +got):\n%s", diff)
	}
}

func TestSheetSource_Rows(t *testing.T) {
	testutil.SilenceLogs(t)

	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, sheetFixture)

	src := NewSheetSource("https://sheetdb.test/api/v1/abc", mock)
	rows, err := src.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "bob", rows[1][ColumnUserID])
	assert.Equal(t, "3", rows[1][ColumnBand])
	assert.Equal(t, "https://sheetdb.test/api/v1/abc", mock.GetRequest(0).URL.String())
}

func TestSheetSource_Errors(t *testing.T) {
	testutil.SilenceLogs(t)

	_, err := NewSheetSource("", httputil.NewMockHTTPClient()).Rows(context.Background())
	assert.Error(t, err)

	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusInternalServerError, "boom")
	_, err = NewSheetSource("https://sheetdb.test", mock).Rows(context.Background())
	var se *httputil.StatusError
	assert.True(t, errors.As(err, &se))
}

func TestLatest(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{"user_id": "alice", "k_band": "1"},
		{"user_id": "bob", "k_band": "2"},
		{"user_id": "alice", "k_band": "4"},
	}

	row, ok := Latest(rows, "alice")
	require.True(t, ok)
	assert.Equal(t, "4", row["k_band"])

	_, ok = Latest(rows, "carol")
	assert.False(t, ok)

	_, ok = Latest(nil, "alice")
	assert.False(t, ok)
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	resp, err := ParseResponse(Row{
		"user_id": "bob", "freedom": "3", "security": "2", "responsibility": "4", "k_band": "3",
	})
	require.NoError(t, err)
	want := Response{UserID: "bob", Scores: roles.Scores{Freedom: 3, Security: 2, Responsibility: 4}, Band: 3}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("ParseResponse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResponse_Errors(t *testing.T) {
	t.Parallel()

	base := func() Row {
		return Row{"user_id": "bob", "freedom": "3", "security": "2", "responsibility": "4", "k_band": "3"}
	}

	missing := base()
	delete(missing, "k_band")
	_, err := ParseResponse(missing)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "k_band")

	malformed := base()
	malformed["security"] = "lots"
	_, err = ParseResponse(malformed)
	assert.ErrorIs(t, err, roles.ErrMalformedField)

	outOfRange := base()
	outOfRange["k_band"] = "9"
	_, err = ParseResponse(outOfRange)
	assert.ErrorIs(t, err, roles.ErrBandOutOfRange)
}

func TestLookup(t *testing.T) {
	testutil.SilenceLogs(t)

	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, sheetFixture)
	src := NewSheetSource("https://sheetdb.test", mock)

	resp, err := Lookup(context.Background(), src, "alice")
	require.NoError(t, err)
	assert.Equal(t, roles.Band(3), resp.Band)
	assert.Equal(t, roles.Scores{Freedom: 3, Security: 2, Responsibility: 4}, resp.Scores)
}

func TestLookup_NoRowsAndFetchError(t *testing.T) {
	t.Parallel()

	empty := SourceFunc(func(context.Context) ([]Row, error) { return []Row{{"user_id": "x"}}, nil })
	_, err := Lookup(context.Background(), empty, "nobody")
	assert.ErrorIs(t, err, ErrNoRows)

	upstream := errors.New("dial tcp: timeout")
	failing := SourceFunc(func(context.Context) ([]Row, error) { return nil, upstream })
	_, err = Lookup(context.Background(), failing, "nobody")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, upstream)
}

func TestCachedSource(t *testing.T) {
	t.Parallel()

	calls := 0
	upstream := SourceFunc(func(context.Context) ([]Row, error) {
		calls++
		return []Row{{"user_id": "u"}}, nil
	})
	clock := timeutil.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	c := NewCachedSource(upstream, time.Minute, clock)
	ctx := context.Background()

	_, err := c.Rows(ctx)
	require.NoError(t, err)
	_, err = c.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call within ttl should be cached")

	clock.Advance(2 * time.Minute)
	_, err = c.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "expired snapshot should refetch")

	c.Invalidate()
	_, err = c.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestCachedSource_ErrorsNotCached(t *testing.T) {
	t.Parallel()

	fail := true
	calls := 0
	upstream := SourceFunc(func(context.Context) ([]Row, error) {
		calls++
		if fail {
			return nil, errors.New("upstream down")
		}
		return []Row{}, nil
	})
	c := NewCachedSource(upstream, time.Hour, timeutil.NewMockClock(time.Unix(0, 0)))

	_, err := c.Rows(context.Background())
	assert.Error(t, err)

	fail = false
	_, err = c.Rows(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCachedSource_ZeroTTLPassesThrough(t *testing.T) {
	t.Parallel()

	calls := 0
	upstream := SourceFunc(func(context.Context) ([]Row, error) {
		calls++
		return nil, nil
	})
	c := NewCachedSource(upstream, 0, nil)
	for i := 0; i < 3; i++ {
		_, _ = c.Rows(context.Background())
	}
	assert.Equal(t, 3, calls)
}
