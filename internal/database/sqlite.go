package database

import "time"

// SQLiteTimeLayout is the fixed-width UTC layout used for SQLite TEXT time columns.
// Fixed width keeps lexical order equal to chronological order.
const SQLiteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatSQLiteTime renders t in SQLiteTimeLayout.
func FormatSQLiteTime(t time.Time) string {
	return t.UTC().Format(SQLiteTimeLayout)
}

// ParseSQLiteTime parses a value written by FormatSQLiteTime.
func ParseSQLiteTime(raw string) (time.Time, error) {
	return time.ParseInLocation(SQLiteTimeLayout, raw, time.UTC)
}
