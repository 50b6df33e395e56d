package services

import (
	"sort"
	"strings"
	"time"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(s, string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// reportRow is implemented by every report row type so the three dashboards
// share one sort helper.
type reportRow interface {
	sortValue(field string) any
	sortID() uint
}

// SortRows returns a new slice sorted by the named field. The input is never
// mutated. Rows whose value for the field is nil sort last regardless of
// direction; array-valued fields compare by length, with the row ID as a
// stable tiebreak. An empty field returns a copy in the original order.
func SortRows[T reportRow](rows []T, field string, direction SortDirection) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	if field == "" {
		return out
	}

	desc := direction == SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		a := out[i].sortValue(field)
		b := out[j].sortValue(field)

		// Nil values lose to present values in both directions.
		if a == nil || b == nil {
			if a == nil && b == nil {
				return out[i].sortID() < out[j].sortID()
			}
			return b == nil
		}

		cmp := compareSortValues(a, b)
		if cmp == 0 {
			return out[i].sortID() < out[j].sortID()
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

func compareSortValues(a, b any) int {
	if fa, ok := numericValue(a); ok {
		fb, _ := numericValue(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case time.Time:
		bv, _ := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
	return 0
}

// numericValue coerces numbers to float64 and array values to their length,
// which is the comparison key for array-valued fields.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float64:
		return n, true
	case []string:
		return float64(len(n)), true
	}
	return 0, false
}
