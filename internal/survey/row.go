// Package survey reads survey responses from an external tabular source and
// selects the latest response for a user.
package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column names after normalisation.
const (
	ColumnUserID         = "user_id"
	ColumnFreedom        = "freedom"
	ColumnSecurity       = "security"
	ColumnResponsibility = "responsibility"
	ColumnBand           = "k_band"
)

// Row is one survey response keyed by normalised column name.
type Row map[string]string

// NormalizeColumn maps a sheet header such as " K Band" to "k_band".
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeRow converts a decoded JSON object into a Row. Numbers are
// formatted without a trailing ".0" and null becomes the empty string.
func NormalizeRow(raw map[string]interface{}) Row {
	row := make(Row, len(raw))
	for k, v := range raw {
		row[NormalizeColumn(k)] = stringify(v)
	}
	return row
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
