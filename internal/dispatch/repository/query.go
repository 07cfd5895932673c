// Package repository implements the append-only outcome store for dispatch records.
// PostgreSQL, MySQL and SQLite are supported; all three share the same filter semantics.
package repository

import (
	"strconv"
	"strings"
	"time"

	"github.com/allisson/dispatcher/internal/dispatch/domain"
)

const recordColumns = "id, recipient, body, event_time, status"

// placeholderFunc renders the n-th (1-based) bind parameter for a dialect.
type placeholderFunc func(n int) string

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func questionPlaceholder(int) string {
	return "?"
}

// buildRecordQuery renders the SELECT for a filter. Predicates are conjunctive,
// time bounds are inclusive and rows are returned in insertion order.
// timeArg converts a bound into the driver's column representation.
func buildRecordQuery(
	filter domain.RecordFilter,
	ph placeholderFunc,
	timeArg func(time.Time) any,
) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(expr string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, expr+ph(len(args)))
	}

	if filter.Recipient != nil {
		add("recipient = ", *filter.Recipient)
	}
	if filter.Status != nil {
		add("status = ", string(*filter.Status))
	}
	if filter.Start != nil {
		add("event_time >= ", timeArg(filter.Start.UTC()))
	}
	if filter.End != nil {
		add("event_time <= ", timeArg(filter.End.UTC()))
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(recordColumns)
	sb.WriteString(" FROM dispatch_records")
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY id ASC")

	return sb.String(), args
}
