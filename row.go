package rowmap

// Row is a read-only view of one result row: an ordered list of named,
// dynamically typed values. Column names are unique within a row.
type Row interface {
	ColumnCount() int
	ColumnName(i int) string
	Value(i int) (any, error)
}

// RowSource is a Row that can move to the next row of a result.
// Advance reports false once the source has no further rows.
type RowSource interface {
	Row
	Advance() (bool, error)
}

// Rows is the forward-only result cursor consumed by NewCursor and LoadTable.
// *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Columns() ([]string, error)
	Scan(dest ...any) error
	Err() error
}
