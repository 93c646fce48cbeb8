package source

import (
	"fmt"
	"strings"

	"github.com/hurou927/spam-graph/internal/table"
)

// parseLabel converts a stored spam label to a bool. CSV files carry
// "1"/"0"; database columns may be bool, integer or text.
func parseLabel(v any) (bool, error) {
	switch l := v.(type) {
	case bool:
		return l, nil
	case int16:
		return intLabel(int64(l))
	case int32:
		return intLabel(int64(l))
	case int64:
		return intLabel(l)
	case int:
		return intLabel(int64(l))
	case string:
		switch strings.ToLower(strings.TrimSpace(l)) {
		case "1", "true", "t":
			return true, nil
		case "0", "false", "f":
			return false, nil
		}
		return false, fmt.Errorf("unknown label %q", l)
	case nil:
		return false, fmt.Errorf("missing label")
	default:
		return false, fmt.Errorf("unsupported label type %T", v)
	}
}

func intLabel(n int64) (bool, error) {
	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	}
	return false, fmt.Errorf("unknown label %d", n)
}

// SpamOnly returns a table holding only the rows labeled spam.
func SpamOnly(t *table.Table) (*table.Table, error) {
	return t.Filter(func(i int) (bool, error) {
		return t.FlagAt(i, table.ColLabel)
	})
}
